package encio

import (
	"errors"
	"runtime"
)

// Error handling in gpenc separates io errors from bad data.
// A small set of error kinds is reused for as many errors as possible, with extra information wrapped as applicable.
// Panics are only used when there is a clear misuse of the library; programmer error, such as an impossible field width.
//
// IOError errors indicate a bad io.Reader/io.Writer, and the caller should stop using it.
// Error errors indicate the data itself could not be decoded or encoded under the requested policy.
//
// Errors can be checked with
//
//	if errors.Is(err, encio.ErrLengthMismatch) {
//		// the frame is malformed
//	}
//
// or, to tell the two kinds apart,
//
//	var encErr encio.Error
//	var ioErr encio.IOError
//	if errors.As(err, &encErr) {
//		// handle encoding error
//	} else if errors.As(err, &ioErr) {
//		// handle io error
//	}
var (
	// ErrMalformedHeader is returned when a VarUInt64 header announces more bytes than are available,
	// or when a strict decoder is given no bytes at all.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrLengthMismatch is returned when the length decoded from a frame header
	// does not agree with the number of payload bytes present.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrOverflow is returned by strict fixed-width encoders when the value does not fit in the requested width.
	ErrOverflow = errors.New("value overflows width")

	// ErrTooLarge is returned when a decoded length exceeds a configured limit.
	ErrTooLarge = errors.New("too large")

	// ErrBadConfig is returned when a configuration cannot be used.
	ErrBadConfig = errors.New("bad config")
)

// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from the io.Reader/io.Writer, or another error describing why the reader isn't operating correctly.
// message has extra information about the error; if empty, it is filled with the calling function's name.
func NewIOError(err error, message string) error {
	if err == nil {
		return NewError(errors.New("unknown error"), "trying to create new IOError", "encio.NewIOError")
	}
	if message == "" {
		message = "in " + GetCaller(1)
	}

	return IOError{
		Err:     err,
		Message: message,
	}
}

// IOError is returned when io errors occur.
type IOError struct {
	Err     error
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// NewError returns an Error wrapping err with message and caller.
// If caller is empty, it is automatically filled with the calling function's name.
func NewError(err error, message string, caller string) error {
	if caller == "" {
		caller = GetCaller(1)
	}

	return Error{
		Err:     err,
		Message: message,
		Caller:  caller,
	}
}

// Error is returned when data cannot be encoded or decoded.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// Error implements error
func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	return str
}

// Unwrap implements errors's Unwrap()
func (e Error) Unwrap() error {
	return e.Err
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 returns the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
