package dosdevices

import (
	"os"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Namespace is a directory of drive and device symlinks. It holds no state
// besides its configuration; the directory listing is the only persisted
// state, and it may be shared with other processes at any time.
type Namespace struct {
	Root string
	// Identity defaults to HostIdentity.
	Identity DeviceIdentity
	// MaxAttempts bounds the scan and create loop of Allocate. Zero means
	// twice the length of the class range.
	MaxAttempts int

	// beforeClaim runs between the scan and the symlink creation
	beforeClaim func(Slot)
}

func New(root string) *Namespace {
	return &Namespace{
		Root: root,
	}
}

func (ns *Namespace) identity() DeviceIdentity {
	if ns.Identity == nil {
		return HostIdentity()
	}
	return ns.Identity
}

// Allocate returns the drive letter mapping device, creating the mapping in
// the first free slot of the class range when none exists. Losing a race for
// a slot to another allocator restarts the scan without that slot.
func (ns *Namespace) Allocate(device string, class Class) (Slot, error) {
	logger := log.Logger(dosdevmgr.DriveService, "Allocate").WithFields(logrus.Fields{
		"device": device,
		"class":  class.String(),
	})
	dev, err := lookupDevice(ns.identity(), device)
	if err != nil {
		return noSlot, err
	}
	first, last := class.Range()
	bound := ns.MaxAttempts
	if bound <= 0 {
		bound = 2 * int(last-first)
	}
	var tried [NumSlots]bool
	for attempt := 0; attempt < bound; attempt++ {
		res := ns.scan(dev, first, last, &tried)
		if res.found != noSlot {
			logger.WithField("letter", res.found.String()).Debug("device already mapped")
			return res.found, nil
		}
		if res.candidate == noSlot {
			return noSlot, errors.Wrapf(ErrNoFreeSlot, "class %s", class)
		}
		err := ns.claim(device, res.candidate)
		if err == nil {
			logger.WithField("letter", res.candidate.String()).Debug("drive letter assigned")
			return res.candidate, nil
		}
		if !errors.Is(err, errRaceLost) {
			return noSlot, err
		}
		logger.WithField("letter", res.candidate.String()).Debug("lost race for drive letter, rescanning")
		tried[res.candidate] = true
	}
	return noSlot, errors.Wrapf(ErrRetriesExhausted, "class %s after %d attempts", class, bound)
}

// claim creates the device entry of s. It fails with errRaceLost when the
// entry appeared since the scan.
func (ns *Namespace) claim(device string, s Slot) error {
	if ns.beforeClaim != nil {
		ns.beforeClaim(s)
	}
	path := SlotPath(ns.Root, s)
	if err := os.Symlink(device, path); err != nil {
		if os.IsExist(err) {
			return errRaceLost
		}
		return fsError(err, "failed to create %s", path)
	}
	return nil
}

// AllocateAt allocates a letter for device and points its drive root at
// mountPoint. An empty mountPoint leaves the drive root untouched.
func (ns *Namespace) AllocateAt(device string, class Class, mountPoint string) (Slot, error) {
	s, err := ns.Allocate(device, class)
	if err != nil {
		return s, err
	}
	if mountPoint == "" {
		return s, nil
	}
	if err := updateSymlink(DriveRootPath(ns.Root, s), mountPoint); err != nil {
		return s, err
	}
	return s, nil
}

// Assign sets both entries of a fixed slot, bypassing the allocator. Empty
// values remove the matching entry.
func (ns *Namespace) Assign(s Slot, device, mountPoint string) error {
	if !s.Valid() {
		return errors.Wrapf(ErrInvalidSlot, "%d", int(s))
	}
	if err := updateSymlink(SlotPath(ns.Root, s), device); err != nil {
		return err
	}
	return updateSymlink(DriveRootPath(ns.Root, s), mountPoint)
}

// Release removes the drive root of s. The device entry is kept so the letter
// stays reserved for the device.
func (ns *Namespace) Release(s Slot) error {
	if !s.Valid() {
		return errors.Wrapf(ErrInvalidSlot, "%d", int(s))
	}
	return removeEntry(DriveRootPath(ns.Root, s))
}

// Purge removes both entries of s.
func (ns *Namespace) Purge(s Slot) error {
	if err := ns.Release(s); err != nil {
		return err
	}
	return removeEntry(SlotPath(ns.Root, s))
}

// Drive describes one letter that has a drive root or a device entry.
type Drive struct {
	Slot       Slot
	MountPoint string
	Device     string
	State      SlotState
	Class      Class
}

// ListDrives returns every slot with at least one entry, in letter order.
func (ns *Namespace) ListDrives() ([]Drive, error) {
	var drives []Drive
	for s := Slot(0); s < NumSlots; s++ {
		mountPoint, rootErr := readEntry(DriveRootPath(ns.Root, s))
		device, devErr := readEntry(SlotPath(ns.Root, s))
		if rootErr != nil && !IsNotFound(rootErr) {
			return nil, rootErr
		}
		if devErr != nil && !IsNotFound(devErr) {
			return nil, devErr
		}
		if rootErr != nil && devErr != nil {
			continue
		}
		drives = append(drives, Drive{
			Slot:       s,
			MountPoint: mountPoint,
			Device:     device,
			State:      ClassifySlot(ns.Root, s),
			Class:      defaultClass(s),
		})
	}
	return drives, nil
}

// DevicesPointingAt returns the letters whose device entry resolves to the
// same device as path. All 26 letters are checked whatever the class.
func (ns *Namespace) DevicesPointingAt(path string) Mask {
	id := ns.identity()
	target, err := id.Resolve(path)
	if err != nil || !id.IsDevice(target) {
		return 0
	}
	var mask Mask
	for s := Slot(0); s < NumSlots; s++ {
		d, err := id.Resolve(SlotPath(ns.Root, s))
		if err != nil || !id.IsDevice(d) {
			continue
		}
		if sameNumbers(d, target) {
			mask |= 1 << uint(s)
		}
	}
	return mask
}

func (ns *Namespace) ReadMapping(name string, capacity int) (string, error) {
	return ReadMapping(ns.Root, name, capacity)
}

func (ns *Namespace) Mapping(name string) (string, error) {
	return Mapping(ns.Root, name)
}

func (ns *Namespace) WriteMapping(name, target string) error {
	return WriteMapping(ns.Root, name, target)
}
