package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShorten(t *testing.T) {
	assert.Equal(t, "/dev/sr0", shorten("/dev/sr0", 0))
	assert.Equal(t, "/dev/sr0", shorten("/dev/sr0", 8))
	assert.Equal(t, ".../sr0", shorten("/dev/disk/sr0", 7))
}
