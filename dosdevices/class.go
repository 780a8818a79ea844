package dosdevices

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Class restricts the range of drive letters a device may be given.
type Class int

const (
	Unknown Class = iota
	HardDisk
	HardDiskVolume
	Floppy
	CDROM
	DVD
	Network
	RamDisk
)

var classNames = map[Class]string{
	Unknown:        "unknown",
	HardDisk:       "harddisk",
	HardDiskVolume: "hd",
	Floppy:         "floppy",
	CDROM:          "cdrom",
	DVD:            "dvd",
	Network:        "network",
	RamDisk:        "ramdisk",
}

func (c Class) String() string {
	if name, exists := classNames[c]; exists {
		return name
	}
	return fmt.Sprintf("unknown %d", int(c))
}

// ParseClass maps a class name, as printed by String, back to a Class.
func ParseClass(name string) (Class, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}
	switch name {
	case "generic", "fixed":
		return HardDiskVolume, nil
	case "cd", "optical":
		return CDROM, nil
	}
	return Unknown, errors.Wrapf(ErrInvalidClass, "%q", name)
}

// Range returns the half-open slot range [first, last) searched for the class.
// Floppies get A and B, optical drives D to Z, everything else C to Z.
func (c Class) Range() (first, last Slot) {
	switch c {
	case Floppy:
		return 0, 2
	case CDROM, DVD:
		return 3, NumSlots
	default:
		return 2, NumSlots
	}
}

// Contains reports whether s lies inside the class range.
func (c Class) Contains(s Slot) bool {
	first, last := c.Range()
	return s >= first && s < last
}

// defaultClass is the class assumed for an existing drive with no other hint.
func defaultClass(s Slot) Class {
	if s < 2 {
		return Floppy
	}
	return HardDiskVolume
}
