// Package dosdevtest provides helpers for testing code built on dosdevices
// without real device nodes.
package dosdevtest

import (
	"os"
	"syscall"

	"github.com/opencontainers/runtime-spec/specs-go"
)

// FileIdentity treats regular files as disks, keyed by inode.
type FileIdentity struct{}

func (FileIdentity) Resolve(path string) (*specs.LinuxDevice, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	d := &specs.LinuxDevice{Path: path}
	if fi.Mode().IsRegular() {
		d.Type = "b"
		d.Major = 7
		d.Minor = int64(fi.Sys().(*syscall.Stat_t).Ino)
	}
	return d, nil
}

func (FileIdentity) IsDevice(d *specs.LinuxDevice) bool {
	return d != nil && d.Type == "b"
}
