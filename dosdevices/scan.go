package dosdevices

import (
	"os"

	"github.com/opencontainers/runtime-spec/specs-go"
)

// SlotState is the state of a slot's device entry.
type SlotState int

const (
	// Unmapped means there is no directory entry at all.
	Unmapped SlotState = iota
	// MappedValid means the entry is a symlink whose target resolves.
	MappedValid
	// MappedDangling means the entry exists but its target does not resolve.
	// The slot stays reserved, typically for removable media not inserted.
	MappedDangling
)

func (s SlotState) String() string {
	switch s {
	case Unmapped:
		return "unmapped"
	case MappedValid:
		return "mapped"
	case MappedDangling:
		return "dangling"
	}
	return "invalid"
}

// ClassifySlot returns the state of the device entry of slot s under root.
func ClassifySlot(root string, s Slot) SlotState {
	path := SlotPath(root, s)
	if _, err := os.Stat(path); err == nil {
		return MappedValid
	}
	if entryAbsent(path) {
		return Unmapped
	}
	return MappedDangling
}

// entryAbsent reports whether no directory entry, not even a dangling
// symlink, exists at path.
func entryAbsent(path string) bool {
	_, err := os.Lstat(path)
	return os.IsNotExist(err)
}

const noSlot Slot = -1

type scanResult struct {
	found     Slot
	candidate Slot
}

// scan walks [first, last) low to high looking for a slot that already maps
// dev. Occupied slots are recorded in tried and skipped on later passes. The
// first slot with neither a device entry nor a drive root entry becomes the
// candidate, but a later match still wins.
func (ns *Namespace) scan(dev *specs.LinuxDevice, first, last Slot, tried *[NumSlots]bool) scanResult {
	id := ns.identity()
	res := scanResult{found: noSlot, candidate: noSlot}
	for s := first; s < last; s++ {
		if tried[s] {
			continue
		}
		path := SlotPath(ns.Root, s)
		if d, err := id.Resolve(path); err == nil {
			tried[s] = true
			if id.IsDevice(d) && sameNumbers(d, dev) {
				res.found = s
				return res
			}
			continue
		}
		if !entryAbsent(path) {
			// dangling, the letter is reserved
			tried[s] = true
			continue
		}
		if res.candidate == noSlot && entryAbsent(DriveRootPath(ns.Root, s)) {
			res.candidate = s
		}
	}
	return res
}
