package types

import (
	"github.com/YLonely/dosdev-manager/dosdevices"
	"github.com/pkg/errors"
)

type ErrorCode string

// ErrInvalidArgument is rebuilt for requests the daemon rejected as malformed
var ErrInvalidArgument = errors.New("invalid argument")

const (
	CodeNone            ErrorCode = ""
	CodeNoSuchDevice    ErrorCode = "NoSuchDevice"
	CodeNoFreeSlot      ErrorCode = "NoFreeSlot"
	CodeRetryExhausted  ErrorCode = "Exhausted"
	CodeNotFound        ErrorCode = "NotFound"
	CodeBufferTooSmall  ErrorCode = "BufferTooSmall"
	CodeAccessDenied    ErrorCode = "AccessDenied"
	CodeInvalidArgument ErrorCode = "InvalidArgument"
	CodeUnknown         ErrorCode = "Unknown"
)

// Error carries an error across the socket so that the client can rebuild
// the matching sentinel
type Error struct {
	Code     ErrorCode `json:",omitempty"`
	Message  string    `json:",omitempty"`
	Required int       `json:",omitempty"`
}

// ToError encodes err, the zero Error means success
func ToError(err error) Error {
	if err == nil {
		return Error{}
	}
	e := Error{Code: CodeUnknown, Message: err.Error()}
	switch {
	case dosdevices.IsNoSuchDevice(err):
		e.Code = CodeNoSuchDevice
	case dosdevices.IsRetriesExhausted(err):
		e.Code = CodeRetryExhausted
	case dosdevices.IsNoFreeSlot(err):
		e.Code = CodeNoFreeSlot
	case dosdevices.IsNotFound(err):
		e.Code = CodeNotFound
	case dosdevices.IsBufferTooSmall(err):
		e.Code = CodeBufferTooSmall
		e.Required, _ = dosdevices.RequiredLen(err)
	case dosdevices.IsAccessDenied(err):
		e.Code = CodeAccessDenied
	case errors.Is(err, dosdevices.ErrInvalidSlot), errors.Is(err, dosdevices.ErrInvalidClass),
		errors.Is(err, dosdevices.ErrInvalidName), errors.Is(err, dosdevices.ErrBadTemplate):
		e.Code = CodeInvalidArgument
	}
	return e
}

// Err rebuilds the error, wrapping the sentinel of its code
func (e Error) Err() error {
	var base error
	switch e.Code {
	case CodeNone:
		return nil
	case CodeNoSuchDevice:
		base = dosdevices.ErrNoSuchDevice
	case CodeNoFreeSlot:
		base = dosdevices.ErrNoFreeSlot
	case CodeRetryExhausted:
		base = dosdevices.ErrRetriesExhausted
	case CodeNotFound:
		base = dosdevices.ErrNotFound
	case CodeBufferTooSmall:
		return &dosdevices.BufferTooSmallError{Required: e.Required}
	case CodeAccessDenied:
		base = dosdevices.ErrAccessDenied
	case CodeInvalidArgument:
		base = ErrInvalidArgument
	default:
		return errors.New(e.Message)
	}
	return &remoteError{msg: e.Message, base: base}
}

type remoteError struct {
	msg  string
	base error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.base }
