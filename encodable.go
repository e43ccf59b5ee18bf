package gpenc

import (
	"fmt"

	"github.com/stewi1014/gpenc/encio"
	"github.com/stewi1014/gpenc/fixed"
	"github.com/stewi1014/gpenc/frame"
	"github.com/stewi1014/gpenc/varuint"
)

// Encodable is a value with a gpenc encoding.
type Encodable interface {
	// AppendGP appends the encoding of the value to dst and returns the extended buffer.
	AppendGP(dst []byte) []byte
}

// Decodable is a value that can be set from its gpenc encoding.
type Decodable interface {
	// DecodeGP sets the value from the encoding at the front of s,
	// returning the number of bytes consumed.
	DecodeGP(s []byte) (int, error)
}

// Encode returns the encoding of v in a newly allocated slice.
func Encode(v Encodable) []byte {
	return v.AppendGP(nil)
}

// Decode sets v from s, returning an error wrapping encio.ErrLengthMismatch if v does not consume all of s.
func Decode(s []byte, v Decodable) error {
	n, err := v.DecodeGP(s)
	if err != nil {
		return err
	}
	if n != len(s) {
		return encio.NewError(encio.ErrLengthMismatch, fmt.Sprintf("%v trailing bytes after %T", len(s)-n, v), "")
	}
	return nil
}

// Uint64 is a uint64 with variable-length encoding.
type Uint64 uint64

// AppendGP implements Encodable.
func (u Uint64) AppendGP(dst []byte) []byte {
	return varuint.Append(dst, uint64(u))
}

// DecodeGP implements Decodable.
func (u *Uint64) DecodeGP(s []byte) (int, error) {
	n, l, err := varuint.DecodePrefix(s)
	if err != nil {
		return 0, err
	}
	*u = Uint64(n)
	return l, nil
}

// Uint32 is a uint32 with fixed-width encoding.
// Width must be set before decoding.
type Uint32 struct {
	Value uint32
	Width int
}

// AppendGP implements Encodable.
// Bits of Value above 8*Width are dropped.
func (u Uint32) AppendGP(dst []byte) []byte {
	return fixed.Append(dst, u.Value, u.Width)
}

// DecodeGP implements Decodable.
func (u *Uint32) DecodeGP(s []byte) (int, error) {
	if len(s) < u.Width {
		return 0, encio.NewError(encio.ErrLengthMismatch, fmt.Sprintf("want %v bytes, got %v", u.Width, len(s)), "")
	}
	u.Value = fixed.Decode(s, u.Width)
	return u.Width, nil
}

// Octets is a length-prefixed octet sequence.
type Octets []byte

// AppendGP implements Encodable.
func (o Octets) AppendGP(dst []byte) []byte {
	return frame.Append(dst, o)
}

// DecodeGP implements Decodable.
func (o *Octets) DecodeGP(s []byte) (int, error) {
	p, n, err := frame.DecodePrefix(s)
	if err != nil {
		return 0, err
	}
	*o = p
	return n, nil
}

// Raw is an octet sequence encoded as itself, with no length.
// Decoding consumes all remaining input, so it can only be the last value in a buffer.
type Raw []byte

// AppendGP implements Encodable.
func (r Raw) AppendGP(dst []byte) []byte {
	return append(dst, r...)
}

// DecodeGP implements Decodable.
func (r *Raw) DecodeGP(s []byte) (int, error) {
	*r = append(Raw{}, s...)
	return len(s), nil
}
