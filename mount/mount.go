package mount

import (
	"path/filepath"
	"strings"

	mnt "github.com/containerd/containerd/mount"
	"github.com/pkg/errors"
)

var ErrNoDevice = errors.New("mount: not backed by a device node")

// Info is the part of a mount table entry the drive allocator needs
type Info struct {
	Source     string
	Mountpoint string
	FSType     string
	Major      int
	Minor      int
}

var lookup = mnt.Lookup

// Lookup returns the mount that holds path
func Lookup(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, errors.Wrapf(err, "failed to resolve %s", path)
	}
	m, err := lookup(abs)
	if err != nil {
		return Info{}, errors.Wrapf(err, "failed to look up mount of %s", path)
	}
	return Info{
		Source:     m.Source,
		Mountpoint: m.Mountpoint,
		FSType:     m.FSType,
		Major:      m.Major,
		Minor:      m.Minor,
	}, nil
}

// DeviceFor returns the device node backing the mount that holds path.
// Pseudo and network filesystems have none.
func DeviceFor(path string) (Info, error) {
	info, err := Lookup(path)
	if err != nil {
		return Info{}, err
	}
	if !strings.HasPrefix(info.Source, "/dev/") {
		return Info{}, errors.Wrapf(ErrNoDevice, "%s is mounted from %q", info.Mountpoint, info.Source)
	}
	return info, nil
}
