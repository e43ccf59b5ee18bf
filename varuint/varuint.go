// Package varuint implements a self-delimiting variable-length encoding for uint64s.
//
// The count of leading one-bits in the first byte says how many bytes follow it.
// A value below 2^(7(k+1)) is written as k+1 bytes; the first byte carries k one-bits, a zero bit,
// and the top 7-k bits of the value, and the following k bytes carry the low 8k bits in little-endian order.
// Values of 2^56 and above are written as 0xFF followed by all 8 bytes of the value, little-endian.
//
//	0xxxxxxx                               0 <= x < 2^7
//	10xxxxxx xxxxxxxx                      2^7 <= x < 2^14
//	110xxxxx xxxxxxxx xxxxxxxx             2^14 <= x < 2^21
//	...
//	11111110 xxxxxxxx * 7                  2^49 <= x < 2^56
//	11111111 xxxxxxxx * 8                  2^56 <= x
package varuint

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/stewi1014/gpenc/encio"
)

const (
	// MaxLen is the longest possible encoding.
	MaxLen = 9

	// sentinel introduces the 9 byte form.
	sentinel = 0xFF
)

// Size returns the number of bytes Encode writes for x.
func Size(x uint64) int {
	k := 0
	if x != 0 {
		k = (bits.Len64(x) - 1) / 7
	}
	if k >= MaxLen-1 {
		return MaxLen
	}
	return k + 1
}

// HeaderSize returns the length of the encoding that starts with b, including b itself.
func HeaderSize(b byte) int {
	return bits.LeadingZeros8(^b) + 1
}

// Encode returns the encoding of x in a newly allocated slice.
func Encode(x uint64) []byte {
	return Append(make([]byte, 0, Size(x)), x)
}

// Append appends the encoding of x to dst and returns the extended buffer.
func Append(dst []byte, x uint64) []byte {
	k := Size(x) - 1
	if k == MaxLen-1 {
		dst = append(dst, sentinel)
	} else {
		dst = append(dst, byte(sentinel)<<(8-k)|byte(x>>(8*k)))
	}

	for i := 0; i < k; i++ {
		dst = append(dst, byte(x>>(8*i)))
	}
	return dst
}

// Decode decodes a uint64 from the front of s.
//
// Decode never fails. An empty s decodes to 0, bytes past the length given by the header are ignored,
// and bytes the header asks for that are missing from s read as zero.
// Use DecodePrefix when a short buffer should be reported.
func Decode(s []byte) uint64 {
	if len(s) == 0 {
		return 0
	}

	k := HeaderSize(s[0]) - 1
	var x uint64
	for i := 0; i < k && i+1 < len(s); i++ {
		x |= uint64(s[i+1]) << (8 * i)
	}

	// k == 8 clears the whole prefix.
	return x | uint64(s[0]&(sentinel>>k))<<(8*k)
}

// DecodePrefix decodes a uint64 from the front of s, returning it along with the number of bytes consumed.
// It returns an error wrapping encio.ErrMalformedHeader if s is empty or shorter than its header says.
func DecodePrefix(s []byte) (uint64, int, error) {
	if len(s) == 0 {
		return 0, 0, encio.NewError(encio.ErrMalformedHeader, "empty input", "")
	}

	n := HeaderSize(s[0])
	if len(s) < n {
		return 0, 0, encio.NewError(
			encio.ErrMalformedHeader,
			fmt.Sprintf("header 0x%02x wants %v bytes, but only %v are present", s[0], n, len(s)),
			"",
		)
	}

	return Decode(s[:n]), n, nil
}

// IsCanonical reports whether s is exactly the encoding Encode produces for the value it holds.
// Decode accepts non-canonical encodings, such as a small number padded to 2 bytes;
// security-sensitive framings can reject them with IsCanonical.
func IsCanonical(s []byte) bool {
	if len(s) == 0 || len(s) != HeaderSize(s[0]) {
		return false
	}
	return Size(Decode(s)) == len(s)
}

// Uvarint provides methods for reading and writing uint64s in variable-length format on streams.
// The zero value is ready to use. A Uvarint must not be used concurrently.
type Uvarint [MaxLen]byte

// Encode writes x to w.
func (buff *Uvarint) Encode(w io.Writer, x uint64) error {
	return encio.Write(Append(buff[:0], x), w)
}

// Decode reads a uint64 from r, reading exactly as many bytes as the header asks for.
func (buff *Uvarint) Decode(r io.Reader) (uint64, error) {
	if err := encio.Read(buff[:1], r); err != nil {
		return 0, err
	}

	n := HeaderSize(buff[0])
	if n > 1 {
		if err := encio.Read(buff[1:n], r); err != nil {
			return 0, err
		}
	}

	return Decode(buff[:n]), nil
}
