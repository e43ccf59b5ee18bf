// Package encio provides io helpers relevant to encoding, as well as the error types shared by the gpenc codecs.
package encio

import (
	"errors"
	"fmt"
	"io"
)

var (
	// TooBig is a byte count used for simple sanity checking before allocating buffers for lengths decoded from readers.
	// ErrTooLarge is returned if a length exceeds this.
	//
	// By default it is 32MB on 32bit machines, and 128MB on 64bit machines.
	// Feel free to change it.
	TooBig = uintptr(1 << (25 + ((^uint(0) >> 32) & 2)))
)

// Read reads from r, completely filling the buffer. It provides error handling with as little overhead as possible.
// In an ideal read, only a single int equality check is performed. If the read reports the whole buffer is read, returned errors are ignored.
func Read(buff []byte, r io.Reader) error {
	n, err := r.Read(buff)
	if n == len(buff) {
		return nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		n, err = r.Read(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Reader implementation"),
				fmt.Sprintf("%T reported %v bytes read, but buffer is only %v bytes", r, end, len(buff)),
			)
		case errors.Is(err, io.EOF) && end == 0:
			return io.EOF
		case errors.Is(err, io.EOF):
			return NewIOError(
				io.ErrUnexpectedEOF,
				fmt.Sprintf("want %v bytes but only got %v", len(buff), end),
			)
		case err != nil:
			return NewIOError(err, fmt.Sprintf("want %v bytes but only got %v", len(buff), end))
		default: // err == nil
			return NewIOError(
				io.ErrNoProgress,
				fmt.Sprintf("want %v bytes but only got %v", len(buff), end),
			)
		}
	}
	return nil
}

// Write writes to w from buff, handling errors of io.Writer with as little overhead as possible.
// In an ideal write, only a single int equality check is performed. It returns any error from Write().
func Write(buff []byte, w io.Writer) error {
	n, err := w.Write(buff)
	if n == len(buff) {
		return err
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		Warnings.Warn().
			Str("writer", fmt.Sprintf("%T", w)).
			Int("given", len(buff)-(end-n)).
			Int("written", n).
			Msg("bad io.Writer implementation: short write without error, calling it again")
		n, err = w.Write(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Writer implementation"),
				fmt.Sprintf("%T reported %v bytes written, but was only given %v bytes", w, end, len(buff)),
			)
		case err == nil:
			return NewIOError(
				io.ErrShortWrite,
				fmt.Sprintf("want %v bytes but only wrote %v bytes", len(buff), end),
			)
		default:
			return NewIOError(
				err,
				fmt.Sprintf("want %v bytes but wrote %v bytes", len(buff), end),
			)
		}
	}
	return nil
}
