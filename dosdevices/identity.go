package dosdevices

import (
	"github.com/opencontainers/runtime-spec/specs-go"
	"github.com/pkg/errors"
)

// DeviceIdentity resolves host paths to the device nodes they name. Which node
// type stands for a disk differs between host families, so each family has its
// own implementation; HostIdentity returns the one for the running host.
type DeviceIdentity interface {
	// Resolve stats path, following symlinks. The returned device has an empty
	// Type when path is not a device node.
	Resolve(path string) (*specs.LinuxDevice, error)
	// IsDevice reports whether d is a node type that represents a disk.
	IsDevice(d *specs.LinuxDevice) bool
}

// SameDevice reports whether a and b resolve to the same disk device. A path
// that cannot be resolved, or is not a disk, never matches.
func SameDevice(id DeviceIdentity, a, b string) bool {
	da, err := id.Resolve(a)
	if err != nil || !id.IsDevice(da) {
		return false
	}
	db, err := id.Resolve(b)
	if err != nil || !id.IsDevice(db) {
		return false
	}
	return sameNumbers(da, db)
}

// IsBlockDevice reports whether path names a disk device on this host.
func IsBlockDevice(path string) bool {
	id := HostIdentity()
	d, err := id.Resolve(path)
	return err == nil && id.IsDevice(d)
}

func sameNumbers(a, b *specs.LinuxDevice) bool {
	return a.Major == b.Major && a.Minor == b.Minor
}

// lookupDevice resolves path and fails with ErrNoSuchDevice unless it is a disk.
func lookupDevice(id DeviceIdentity, path string) (*specs.LinuxDevice, error) {
	d, err := id.Resolve(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNoSuchDevice, "%s: %v", path, err)
	}
	if !id.IsDevice(d) {
		return nil, errors.Wrapf(ErrNoSuchDevice, "%s is not a disk device", path)
	}
	return d, nil
}
