package dosdevices

import (
	"path/filepath"
	"testing"

	"github.com/YLonely/dosdev-manager/dosdevices/dosdevtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostIdentityCharDevice(t *testing.T) {
	id := HostIdentity()
	d, err := id.Resolve("/dev/null")
	require.NoError(t, err)
	assert.Equal(t, "c", d.Type)
	assert.False(t, id.IsDevice(d))
	assert.False(t, IsBlockDevice("/dev/null"))
}

func TestHostIdentityRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	touch(t, path)

	d, err := HostIdentity().Resolve(path)
	require.NoError(t, err)
	assert.Empty(t, d.Type)
	assert.Zero(t, d.Major)
}

func TestSameDevice(t *testing.T) {
	f := newFixture(t)
	disk := f.device(t, "sda")
	other := f.device(t, "sdb")
	f.link(t, disk, "c::")

	id := dosdevtest.FileIdentity{}
	assert.True(t, SameDevice(id, disk, SlotPath(f.root, 2)))
	assert.False(t, SameDevice(id, disk, other))
	assert.False(t, SameDevice(id, disk, filepath.Join(f.devs, "missing")))
	assert.False(t, SameDevice(id, f.devs, f.devs))
	assert.False(t, SameDevice(HostIdentity(), "/dev/null", "/dev/null"))
}
