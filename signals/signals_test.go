package signals

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitClosed(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("done was not closed")
	}
}

func TestHandleSignal(t *testing.T) {
	sigC := make(chan os.Signal, 1)
	done := HandleSignals(sigC, make(chan error))
	sigC <- syscall.SIGTERM
	waitClosed(t, done)
}

func TestHandleError(t *testing.T) {
	first, second := make(chan error, 1), make(chan error, 1)
	done := HandleSignals(make(chan os.Signal), first, second)
	select {
	case <-done:
		t.Fatal("closed before any event")
	default:
	}
	second <- errors.New("listener closed")
	waitClosed(t, done)
	assert.Len(t, first, 0)
}
