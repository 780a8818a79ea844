package dosdevices

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoSuchDevice     = errors.New("dosdevices: no such device")
	ErrNoFreeSlot       = errors.New("dosdevices: no free drive letter")
	ErrRetriesExhausted = errors.WithMessage(ErrNoFreeSlot, "allocation retries exhausted")
	ErrNotFound         = errors.New("dosdevices: no such mapping")
	ErrBufferTooSmall   = errors.New("dosdevices: buffer too small")
	ErrAccessDenied     = errors.New("dosdevices: access denied")
	ErrBadTemplate      = errors.New("dosdevices: template must contain exactly one %d")
	ErrInvalidSlot      = errors.New("dosdevices: invalid drive letter")
	ErrInvalidClass     = errors.New("dosdevices: invalid device class")
	ErrInvalidName      = errors.New("dosdevices: invalid device name")

	// errRaceLost never leaves the allocator
	errRaceLost = errors.New("dosdevices: slot claimed concurrently")
)

// BufferTooSmallError reports the capacity a read needs, terminator included.
type BufferTooSmallError struct {
	Required int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("%s: %d bytes required", ErrBufferTooSmall, e.Required)
}

func (e *BufferTooSmallError) Is(target error) bool {
	return target == ErrBufferTooSmall
}

// RequiredLen extracts the required capacity from a BufferTooSmallError chain.
func RequiredLen(err error) (int, bool) {
	var e *BufferTooSmallError
	if errors.As(err, &e) {
		return e.Required, true
	}
	return 0, false
}

func IsNoSuchDevice(err error) bool     { return errors.Is(err, ErrNoSuchDevice) }
func IsNoFreeSlot(err error) bool       { return errors.Is(err, ErrNoFreeSlot) }
func IsRetriesExhausted(err error) bool { return errors.Is(err, ErrRetriesExhausted) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsBufferTooSmall(err error) bool   { return errors.Is(err, ErrBufferTooSmall) }
func IsAccessDenied(err error) bool     { return errors.Is(err, ErrAccessDenied) }
