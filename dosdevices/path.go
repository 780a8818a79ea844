package dosdevices

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// NumSlots is the number of drive letters, A to Z.
const NumSlots = 26

// Slot is a drive letter index, 0 for A through 25 for Z.
type Slot int

func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return string(rune('A' + s))
}

// entryName is the lower-case letter used for names inside the namespace root.
func (s Slot) entryName() string {
	return string(rune('a' + s))
}

// ParseSlot accepts a letter optionally followed by one or two colons.
func ParseSlot(name string) (Slot, error) {
	trimmed := strings.TrimRight(name, ":")
	if len(trimmed) != 1 || len(name)-len(trimmed) > 2 {
		return 0, errors.Wrapf(ErrInvalidSlot, "%q", name)
	}
	c := trimmed[0]
	switch {
	case c >= 'a' && c <= 'z':
		return Slot(c - 'a'), nil
	case c >= 'A' && c <= 'Z':
		return Slot(c - 'A'), nil
	}
	return 0, errors.Wrapf(ErrInvalidSlot, "%q", name)
}

// SlotPath returns the device entry of a slot, <root>/<letter>::.
func SlotPath(root string, s Slot) string {
	return filepath.Join(root, s.entryName()+"::")
}

// DriveRootPath returns the drive root entry of a slot, <root>/<letter>:.
func DriveRootPath(root string, s Slot) string {
	return filepath.Join(root, s.entryName()+":")
}

// NamedPath returns the entry for an arbitrary device name. The name is not
// checked, callers taking names from outside run CheckName first.
func NamedPath(root, name string) string {
	return filepath.Join(root, name)
}

// CheckName rejects device names that would not name an entry directly
// inside the root.
func CheckName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsRune(name, '/') ||
		strings.ContainsRune(name, filepath.Separator) ||
		strings.ContainsRune(name, 0) {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}
