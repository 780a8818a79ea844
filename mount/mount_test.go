package mount

import (
	"testing"

	mnt "github.com/containerd/containerd/mount"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookup(t *testing.T, info mnt.Info, err error) *string {
	t.Helper()
	var asked string
	orig := lookup
	lookup = func(dir string) (mnt.Info, error) {
		asked = dir
		return info, err
	}
	t.Cleanup(func() { lookup = orig })
	return &asked
}

func TestDeviceFor(t *testing.T) {
	asked := fakeLookup(t, mnt.Info{
		Source:     "/dev/sr0",
		Mountpoint: "/media/cdrom",
		FSType:     "iso9660",
		Major:      11,
	}, nil)

	info, err := DeviceFor("/media/cdrom/setup")
	require.NoError(t, err)
	assert.Equal(t, "/media/cdrom/setup", *asked)
	assert.Equal(t, Info{Source: "/dev/sr0", Mountpoint: "/media/cdrom", FSType: "iso9660", Major: 11}, info)
}

func TestDeviceForPseudoFilesystem(t *testing.T) {
	fakeLookup(t, mnt.Info{Source: "tmpfs", Mountpoint: "/tmp", FSType: "tmpfs"}, nil)

	_, err := DeviceFor("/tmp")
	assert.True(t, errors.Is(err, ErrNoDevice))
}

func TestLookupError(t *testing.T) {
	fakeLookup(t, mnt.Info{}, errors.New("no mountinfo"))

	_, err := Lookup("/nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mountinfo")
}
