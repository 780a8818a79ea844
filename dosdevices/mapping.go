package dosdevices

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ReadMapping returns the target of the named mapping. The target must fit in
// capacity bytes including a terminator; otherwise a *BufferTooSmallError
// reports the capacity needed.
func ReadMapping(root, name string, capacity int) (string, error) {
	target, err := readEntry(NamedPath(root, name))
	if err != nil {
		return "", err
	}
	if required := len(target) + 1; required > capacity {
		return "", &BufferTooSmallError{Required: required}
	}
	return target, nil
}

// Mapping returns the target of the named mapping whatever its length.
func Mapping(root, name string) (string, error) {
	return readEntry(NamedPath(root, name))
}

// WriteMapping points the named mapping at target, replacing what was there.
// An empty target removes the mapping; removing a missing mapping succeeds.
// Concurrent writers are not serialized, the last one wins.
func WriteMapping(root, name, target string) error {
	return updateSymlink(NamedPath(root, name), target)
}

// Mask has bit i set for drive letter i.
type Mask uint32

func (m Mask) Has(s Slot) bool {
	return s.Valid() && m&(1<<uint(s)) != 0
}

func (m Mask) Slots() []Slot {
	var slots []Slot
	for s := Slot(0); s < NumSlots; s++ {
		if m.Has(s) {
			slots = append(slots, s)
		}
	}
	return slots
}

// String lists the letters of the mask, "DE" for D and E.
func (m Mask) String() string {
	var b strings.Builder
	for _, s := range m.Slots() {
		b.WriteString(s.String())
	}
	return b.String()
}

func readEntry(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, unix.EINVAL) {
			return "", errors.Wrap(ErrNotFound, path)
		}
		return "", fsError(err, "failed to read %s", path)
	}
	return target, nil
}

// updateSymlink replaces the symlink at path unless it already points at
// target. An empty target removes it.
func updateSymlink(path, target string) error {
	if target == "" {
		return removeEntry(path)
	}
	if current, err := os.Readlink(path); err == nil && current == target {
		return nil
	}
	if err := removeEntry(path); err != nil {
		return err
	}
	if err := os.Symlink(target, path); err != nil {
		return fsError(err, "failed to create %s", path)
	}
	return nil
}

func removeEntry(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fsError(err, "failed to remove %s", path)
	}
	return nil
}

// fsError wraps a filesystem error, folding permission failures into
// ErrAccessDenied.
func fsError(err error, format string, args ...interface{}) error {
	if os.IsPermission(err) {
		return errors.Wrapf(ErrAccessDenied, "%s: %v", fmt.Sprintf(format, args...), err)
	}
	return errors.Wrapf(err, format, args...)
}
