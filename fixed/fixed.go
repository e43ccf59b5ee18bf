// Package fixed implements the trivial fixed-width little-endian encoding of uint32s,
// for fields whose width is known out-of-band.
package fixed

import (
	"fmt"
	"io"

	"github.com/stewi1014/gpenc/encio"
)

// MaxWidth is the widest encoding of a uint32.
const MaxWidth = 4

func checkWidth(l int) {
	if l < 1 || l > MaxWidth {
		panic(fmt.Sprintf("fixed: width %v out of range [1, %v]", l, MaxWidth))
	}
}

// Fits reports whether x can be encoded in l bytes without truncation.
// It panics if l is not in [1, 4].
func Fits(x uint32, l int) bool {
	checkWidth(l)
	return l == MaxWidth || x < 1<<(8*l)
}

// Append appends the low 8*l bits of x to dst in little-endian order.
// It panics if l is not in [1, 4].
func Append(dst []byte, x uint32, l int) []byte {
	checkWidth(l)
	for i := 0; i < l; i++ {
		dst = append(dst, byte(x>>(8*i)))
	}
	return dst
}

// Encode returns the low 8*l bits of x in exactly l newly allocated bytes, little-endian.
// Bits of x above 8*l are silently dropped; use EncodeStrict to have them reported.
// It panics if l is not in [1, 4].
func Encode(x uint32, l int) []byte {
	return Append(make([]byte, 0, l), x, l)
}

// EncodeStrict is like Encode, but returns an error wrapping encio.ErrOverflow if x does not fit in l bytes.
func EncodeStrict(x uint32, l int) ([]byte, error) {
	if !Fits(x, l) {
		return nil, encio.NewError(encio.ErrOverflow, fmt.Sprintf("%v does not fit in %v bytes", x, l), "")
	}
	return Encode(x, l), nil
}

// Decode reads an l byte little-endian uint32 from s.
// Bytes past l are ignored, and missing bytes read as zero.
// It panics if l is not in [1, 4].
func Decode(s []byte, l int) uint32 {
	checkWidth(l)
	if len(s) > l {
		s = s[:l]
	}

	var x uint32
	for i, b := range s {
		x |= uint32(b) << (8 * i)
	}
	return x
}

// NewUint32 returns a Uint32 encoding with width l.
// It panics if l is not in [1, 4].
func NewUint32(l int) Uint32 {
	checkWidth(l)
	return Uint32{
		buff: make([]byte, 0, l),
		l:    l,
	}
}

// Uint32 provides methods for encoding and decoding fixed-width uint32s on streams.
type Uint32 struct {
	buff []byte
	l    int
}

// Width returns the number of bytes each value occupies.
func (e *Uint32) Width() int {
	return e.l
}

// Encode writes the low 8*Width() bits of n to w.
func (e *Uint32) Encode(w io.Writer, n uint32) error {
	return encio.Write(Append(e.buff[:0], n, e.l), w)
}

// Decode reads a uint32 from r.
func (e *Uint32) Decode(r io.Reader) (uint32, error) {
	buff := e.buff[:e.l]
	if err := encio.Read(buff, r); err != nil {
		return 0, err
	}
	return Decode(buff, e.l), nil
}
