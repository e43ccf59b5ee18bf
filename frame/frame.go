// Package frame implements length-prefixed octet sequences.
// A frame is the varuint encoding of the payload length followed by the payload itself.
package frame

import (
	"fmt"
	"io"

	"github.com/stewi1014/gpenc/encio"
	"github.com/stewi1014/gpenc/varuint"
)

// Size returns the length of the frame holding payload p.
func Size(p []byte) int {
	return varuint.Size(uint64(len(p))) + len(p)
}

// Append appends the frame holding p to dst and returns the extended buffer.
func Append(dst []byte, p []byte) []byte {
	dst = varuint.Append(dst, uint64(len(p)))
	return append(dst, p...)
}

// Encode returns the frame holding p in a newly allocated slice.
func Encode(p []byte) []byte {
	return Append(make([]byte, 0, Size(p)), p)
}

// Decode returns a copy of the payload held in the frame s.
// The header is consumed from the front of s, and the rest of s must be exactly the payload.
// It returns an error wrapping encio.ErrMalformedHeader if the header is truncated,
// or encio.ErrLengthMismatch if the payload length disagrees with the header.
func Decode(s []byte) ([]byte, error) {
	l, n, err := varuint.DecodePrefix(s)
	if err != nil {
		return nil, err
	}

	rest := s[n:]
	if uint64(len(rest)) != l {
		return nil, encio.NewError(
			encio.ErrLengthMismatch,
			fmt.Sprintf("header says %v bytes, but %v follow it", l, len(rest)),
			"",
		)
	}

	return append([]byte{}, rest...), nil
}

// DecodePrefix decodes the frame at the front of s, which may be followed by more data.
// It returns a copy of the payload and the number of bytes of s the frame occupies.
func DecodePrefix(s []byte) ([]byte, int, error) {
	l, n, err := varuint.DecodePrefix(s)
	if err != nil {
		return nil, 0, err
	}

	rest := s[n:]
	if uint64(len(rest)) < l {
		return nil, 0, encio.NewError(
			encio.ErrLengthMismatch,
			fmt.Sprintf("header says %v bytes, but only %v follow it", l, len(rest)),
			"",
		)
	}

	return append([]byte{}, rest[:l]...), n + int(l), nil
}

// DecodeTrailing returns a copy of the last l bytes of s, where l is the length decoded from the front of s.
// It does not check where the header ends, so it is only correct for self-contained frames
// written by Encode. Prefer Decode.
// It returns an error wrapping encio.ErrLengthMismatch if l is longer than s.
func DecodeTrailing(s []byte) ([]byte, error) {
	l := varuint.Decode(s)
	if l > uint64(len(s)) {
		return nil, encio.NewError(
			encio.ErrLengthMismatch,
			fmt.Sprintf("header says %v bytes, but the frame is only %v bytes", l, len(s)),
			"",
		)
	}

	return append([]byte{}, s[uint64(len(s))-l:]...), nil
}

// Limits constrains the payload sizes a Reader or Writer accepts.
type Limits struct {
	// MaxPayloadBytes is the largest payload allowed. 0 means no limit.
	MaxPayloadBytes uint64
}

// DefaultLimits returns Limits suitable for reading frames from untrusted sources.
func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
	}
}

func (l Limits) check(n uint64) error {
	if l.MaxPayloadBytes != 0 && n > l.MaxPayloadBytes {
		return encio.NewError(
			encio.ErrTooLarge,
			fmt.Sprintf("payload of %v bytes exceeds limit of %v", n, l.MaxPayloadBytes),
			encio.GetCaller(1),
		)
	}
	return nil
}

// NewWriter returns a new Writer writing frames to w.
func NewWriter(w io.Writer, limits Limits) *Writer {
	return &Writer{
		w:      w,
		limits: limits,
	}
}

// Writer writes frames to an io.Writer.
// Each frame is passed to the wrapped writer in a single call to Write.
// A Writer must not be used concurrently.
type Writer struct {
	w      io.Writer
	limits Limits
	buff   []byte
}

// WriteFrame writes the frame holding p.
func (w *Writer) WriteFrame(p []byte) error {
	if err := w.limits.check(uint64(len(p))); err != nil {
		return err
	}

	w.buff = Append(w.buff[:0], p)
	return encio.Write(w.buff, w.w)
}

// NewReader returns a new Reader reading frames from r.
func NewReader(r io.Reader, limits Limits) *Reader {
	return &Reader{
		r:      r,
		limits: limits,
	}
}

// Reader reads frames from an io.Reader.
// It reads exactly as many bytes as each frame occupies, so other data may follow a frame on the same stream.
// A Reader must not be used concurrently.
type Reader struct {
	r      io.Reader
	limits Limits
	header varuint.Uvarint
}

// ReadFrame reads the next frame and returns its payload in a newly allocated slice.
// It returns io.EOF if the stream ends cleanly before a frame starts.
func (r *Reader) ReadFrame() ([]byte, error) {
	l, err := r.header.Decode(r.r)
	if err != nil {
		return nil, err
	}

	if err := r.limits.check(l); err != nil {
		return nil, err
	}
	if l > uint64(encio.TooBig) {
		return nil, encio.NewError(
			encio.ErrTooLarge,
			fmt.Sprintf("payload of %v bytes exceeds sanity limit of %v", l, encio.TooBig),
			"",
		)
	}

	p := make([]byte, l)
	if err := encio.Read(p, r.r); err != nil {
		if err == io.EOF {
			err = encio.NewIOError(io.ErrUnexpectedEOF, fmt.Sprintf("frame of %v bytes ended early", l))
		}
		return nil, err
	}
	return p, nil
}
