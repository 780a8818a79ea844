package dosdevices

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingRoundTrip(t *testing.T) {
	root := t.TempDir()
	target := "/dev/ttyS0"

	require.NoError(t, WriteMapping(root, "X", target))
	got, err := ReadMapping(root, "X", len(target)+1)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	_, err = ReadMapping(root, "X", len(target))
	require.Error(t, err)
	assert.True(t, IsBufferTooSmall(err))
	required, ok := RequiredLen(err)
	require.True(t, ok)
	assert.Equal(t, len(target)+1, required)
}

func TestMappingOverwriteAndRemove(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteMapping(root, "com1", "/dev/ttyS0"))
	require.NoError(t, WriteMapping(root, "com1", "/dev/ttyUSB0"))
	got, err := Mapping(root, "com1")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", got)

	require.NoError(t, WriteMapping(root, "com1", ""))
	_, err = Mapping(root, "com1")
	assert.True(t, IsNotFound(err))

	// removing again is fine
	require.NoError(t, WriteMapping(root, "com1", ""))
}

func TestMappingUnchangedIsNotRewritten(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, WriteMapping(root, "lpt1", "/dev/lp0"))
	before, err := os.Lstat(NamedPath(root, "lpt1"))
	require.NoError(t, err)

	require.NoError(t, WriteMapping(root, "lpt1", "/dev/lp0"))
	after, err := os.Lstat(NamedPath(root, "lpt1"))
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after))
}

func TestReadMappingNotFound(t *testing.T) {
	root := t.TempDir()
	_, err := ReadMapping(root, "aux", 256)
	assert.True(t, IsNotFound(err))

	// a plain file is not a mapping
	require.NoError(t, os.WriteFile(filepath.Join(root, "prn"), nil, 0644))
	_, err = ReadMapping(root, "prn", 256)
	assert.True(t, IsNotFound(err))
}

func TestWriteMappingAccessDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0555))
	defer os.Chmod(root, 0755)

	err := WriteMapping(root, "com1", "/dev/ttyS0")
	require.Error(t, err)
	assert.True(t, IsAccessDenied(err))
}

func TestDevicesPointingAt(t *testing.T) {
	f := newFixture(t)
	disk := f.device(t, "sdb")
	other := f.device(t, "sdc")
	f.link(t, disk, "p::")
	f.link(t, disk, "q::")
	f.link(t, other, "r::")
	f.link(t, "/nowhere", "s::")

	mask := f.ns.DevicesPointingAt(disk)
	assert.Equal(t, Mask(1<<15|1<<16), mask)
	assert.Equal(t, "PQ", mask.String())
	assert.True(t, mask.Has(15))
	assert.False(t, mask.Has(17))

	assert.Equal(t, Mask(0), f.ns.DevicesPointingAt(filepath.Join(f.devs, "missing")))
}

func TestCDROMEndToEnd(t *testing.T) {
	f := newFixture(t)
	cdrom := f.device(t, "sr0")

	s, err := f.ns.Allocate(cdrom, CDROM)
	require.NoError(t, err)
	assert.Equal(t, "D", s.String())
	before := f.snapshot(t)

	again, err := f.ns.Allocate(cdrom, CDROM)
	require.NoError(t, err)
	assert.Equal(t, s, again)
	assert.Equal(t, before, f.snapshot(t))

	assert.Equal(t, Mask(1<<3), f.ns.DevicesPointingAt(cdrom))
}
