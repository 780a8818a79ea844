package dosdevices

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateEmptyRoot(t *testing.T) {
	f := newFixture(t)
	cdrom := f.device(t, "sr0")

	s, err := f.ns.Allocate(cdrom, CDROM)
	require.NoError(t, err)
	assert.Equal(t, "D", s.String())

	target, err := os.Readlink(SlotPath(f.root, s))
	require.NoError(t, err)
	assert.Equal(t, cdrom, target)
}

func TestAllocateIdempotent(t *testing.T) {
	f := newFixture(t)
	disk := f.device(t, "sdb")

	first, err := f.ns.Allocate(disk, HardDiskVolume)
	require.NoError(t, err)
	before := f.snapshot(t)

	second, err := f.ns.Allocate(disk, HardDiskVolume)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, f.snapshot(t))
}

func TestAllocateMatchesIdentityNotPath(t *testing.T) {
	f := newFixture(t)
	disk := f.device(t, "sdb")
	alias := filepath.Join(f.devs, "by-id-disk")
	require.NoError(t, os.Symlink(disk, alias))
	f.link(t, alias, "f::")

	s, err := f.ns.Allocate(disk, HardDiskVolume)
	require.NoError(t, err)
	// C was free, but F already reaches the same device
	assert.Equal(t, "F", s.String())
	_, err = os.Lstat(SlotPath(f.root, 2))
	assert.True(t, os.IsNotExist(err))
}

func TestAllocateClassRestriction(t *testing.T) {
	f := newFixture(t)
	fd0 := f.device(t, "fd0")
	fd1 := f.device(t, "fd1")
	fd2 := f.device(t, "fd2")

	s, err := f.ns.Allocate(fd0, Floppy)
	require.NoError(t, err)
	assert.Equal(t, "A", s.String())
	s, err = f.ns.Allocate(fd1, Floppy)
	require.NoError(t, err)
	assert.Equal(t, "B", s.String())

	_, err = f.ns.Allocate(fd2, Floppy)
	require.Error(t, err)
	assert.True(t, IsNoFreeSlot(err))
	assert.False(t, IsRetriesExhausted(err))
	assert.Equal(t, Unmapped, ClassifySlot(f.root, 2))
}

func TestAllocateNoFalseAliasing(t *testing.T) {
	f := newFixture(t)
	seen := map[Slot]string{}
	for _, name := range []string{"sda", "sdb", "sdc", "sdd"} {
		dev := f.device(t, name)
		s, err := f.ns.Allocate(dev, HardDiskVolume)
		require.NoError(t, err)
		assert.True(t, HardDiskVolume.Contains(s))
		_, dup := seen[s]
		require.False(t, dup, "letter %s handed out twice", s)
		seen[s] = name
	}
}

func TestAllocateSkipsDanglingSlot(t *testing.T) {
	f := newFixture(t)
	f.link(t, filepath.Join(f.devs, "missing-cdrom"), "d::")
	assert.Equal(t, MappedDangling, ClassifySlot(f.root, 3))

	s, err := f.ns.Allocate(f.device(t, "sr1"), CDROM)
	require.NoError(t, err)
	assert.Equal(t, "E", s.String())
}

func TestAllocateSkipsSlotWithDriveRoot(t *testing.T) {
	f := newFixture(t)
	f.link(t, "/mnt/cdrom", "d:")

	s, err := f.ns.Allocate(f.device(t, "sr0"), CDROM)
	require.NoError(t, err)
	assert.Equal(t, "E", s.String())
}

func TestAllocateNoSuchDevice(t *testing.T) {
	f := newFixture(t)

	_, err := f.ns.Allocate(filepath.Join(f.devs, "nothing"), HardDiskVolume)
	assert.True(t, IsNoSuchDevice(err))

	_, err = f.ns.Allocate(f.devs, HardDiskVolume)
	assert.True(t, IsNoSuchDevice(err))
	assert.Empty(t, f.snapshot(t))
}

func TestAllocateRetriesAfterLostRace(t *testing.T) {
	f := newFixture(t)
	mine := f.device(t, "sr0")
	theirs := f.device(t, "sr1")

	raced := false
	f.ns.beforeClaim = func(s Slot) {
		if !raced {
			raced = true
			require.NoError(t, os.Symlink(theirs, SlotPath(f.root, s)))
		}
	}
	s, err := f.ns.Allocate(mine, CDROM)
	require.NoError(t, err)
	assert.True(t, raced)
	assert.Equal(t, "E", s.String())

	target, err := os.Readlink(SlotPath(f.root, 3))
	require.NoError(t, err)
	assert.Equal(t, theirs, target)
}

func TestAllocateLostRaceForLastSlot(t *testing.T) {
	f := newFixture(t)
	f.link(t, f.device(t, "fd0"), "a::")
	mine := f.device(t, "fd1")
	theirs := f.device(t, "fd2")

	f.ns.beforeClaim = func(s Slot) {
		os.Symlink(theirs, SlotPath(f.root, s))
	}
	_, err := f.ns.Allocate(mine, Floppy)
	require.Error(t, err)
	assert.True(t, IsNoFreeSlot(err))
	assert.Equal(t, "B", f.ns.DevicesPointingAt(theirs).String())
	assert.Equal(t, Mask(0), f.ns.DevicesPointingAt(mine))
}

func TestAllocateFilesystemErrorSurfaces(t *testing.T) {
	f := newFixture(t)
	claims := 0
	f.ns.beforeClaim = func(s Slot) {
		claims++
		require.NoError(t, os.RemoveAll(f.root))
	}
	_, err := f.ns.Allocate(f.device(t, "sdb"), HardDiskVolume)
	require.Error(t, err)
	assert.Equal(t, 1, claims)
	assert.False(t, IsNoFreeSlot(err))
	assert.True(t, os.IsNotExist(errors.Cause(err)), "%v", err)
}

func TestAllocateAttemptBound(t *testing.T) {
	f := newFixture(t)
	f.ns.MaxAttempts = 1
	other := f.device(t, "sdz")
	f.ns.beforeClaim = func(s Slot) {
		os.Symlink(other, SlotPath(f.root, s))
	}
	_, err := f.ns.Allocate(f.device(t, "sdy"), HardDiskVolume)
	require.Error(t, err)
	assert.True(t, IsRetriesExhausted(err))
	assert.True(t, IsNoFreeSlot(err))
}

func TestAllocateConcurrentSingleFreeSlot(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newFixture(t)
		f.link(t, f.device(t, "fd0"), "a::")
		devs := []string{f.device(t, "fd1"), f.device(t, "fd2")}

		var (
			wg   sync.WaitGroup
			errs = make([]error, len(devs))
		)
		for j, dev := range devs {
			wg.Add(1)
			go func(j int, dev string) {
				defer wg.Done()
				_, errs[j] = f.ns.Allocate(dev, Floppy)
			}(j, dev)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			assert.True(t, IsNoFreeSlot(err), "unexpected error %v", err)
		}
		require.Equal(t, 1, successes)

		target, err := os.Readlink(SlotPath(f.root, 1))
		require.NoError(t, err)
		assert.Contains(t, devs, target)
	}
}

func TestAllocateAtSetsDriveRoot(t *testing.T) {
	f := newFixture(t)
	s, err := f.ns.AllocateAt(f.device(t, "sr0"), CDROM, "/media/cdrom")
	require.NoError(t, err)

	target, err := os.Readlink(DriveRootPath(f.root, s))
	require.NoError(t, err)
	assert.Equal(t, "/media/cdrom", target)
}

func TestAssignReleasePurge(t *testing.T) {
	f := newFixture(t)
	dev := f.device(t, "sdb")

	require.NoError(t, f.ns.Assign(7, dev, "/mnt/data"))
	drives, err := f.ns.ListDrives()
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, Drive{Slot: 7, MountPoint: "/mnt/data", Device: dev, State: MappedValid, Class: HardDiskVolume}, drives[0])

	require.NoError(t, f.ns.Release(7))
	drives, err = f.ns.ListDrives()
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Empty(t, drives[0].MountPoint)
	assert.Equal(t, dev, drives[0].Device)

	require.NoError(t, f.ns.Purge(7))
	require.NoError(t, f.ns.Purge(7))
	drives, err = f.ns.ListDrives()
	require.NoError(t, err)
	assert.Empty(t, drives)

	assert.ErrorIs(t, f.ns.Assign(26, dev, ""), ErrInvalidSlot)
}

func TestListDrivesDangling(t *testing.T) {
	f := newFixture(t)
	f.link(t, "/dev/does-not-exist", "a::")
	f.link(t, "/", "c:")

	drives, err := f.ns.ListDrives()
	require.NoError(t, err)
	require.Len(t, drives, 2)
	assert.Equal(t, Drive{Slot: 0, Device: "/dev/does-not-exist", State: MappedDangling, Class: Floppy}, drives[0])
	assert.Equal(t, Drive{Slot: 2, MountPoint: "/", State: Unmapped, Class: HardDiskVolume}, drives[1])
}
