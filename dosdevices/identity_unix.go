//go:build linux || darwin || freebsd || dragonfly || netbsd || openbsd
// +build linux darwin freebsd dragonfly netbsd openbsd

package dosdevices

import (
	"os"

	"github.com/opencontainers/runtime-spec/specs-go"
	"golang.org/x/sys/unix"
)

type hostIdentity struct {
	// diskType is the specs.LinuxDevice type code of disk nodes
	diskType string
}

func (h hostIdentity) Resolve(path string) (*specs.LinuxDevice, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return deviceFromStat(path, &st), nil
}

func (h hostIdentity) IsDevice(d *specs.LinuxDevice) bool {
	return d != nil && d.Type == h.diskType
}

func deviceFromStat(path string, st *unix.Stat_t) *specs.LinuxDevice {
	mode := os.FileMode(uint32(st.Mode) & 0777)
	uid, gid := st.Uid, st.Gid
	d := &specs.LinuxDevice{
		Path:     path,
		Type:     nodeType(uint32(st.Mode)),
		FileMode: &mode,
		UID:      &uid,
		GID:      &gid,
	}
	if d.Type != "" {
		rdev := uint64(st.Rdev)
		d.Major = int64(unix.Major(rdev))
		d.Minor = int64(unix.Minor(rdev))
	}
	return d
}

func nodeType(mode uint32) string {
	switch mode & unix.S_IFMT {
	case unix.S_IFBLK:
		return "b"
	case unix.S_IFCHR:
		return "c"
	case unix.S_IFIFO:
		return "p"
	}
	return ""
}

// nodeExists is an access(F_OK) check; it follows symlinks.
var nodeExists = func(path string) bool {
	return unix.Access(path, unix.F_OK) == nil
}
