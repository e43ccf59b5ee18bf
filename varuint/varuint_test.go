package varuint_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"math/bits"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/gpenc/encio"
	"github.com/stewi1014/gpenc/varuint"
	"pgregory.net/rapid"
)

// boundaries returns 0, 1, 2^64-1, 2^63 and every 2^7k and 2^7k-1 up to 2^56.
func boundaries() []uint64 {
	testCases := []uint64{0, 1, 1 << 63, 1<<64 - 1}
	for k := 1; k <= 8; k++ {
		testCases = append(testCases, 1<<(7*k)-1, 1<<(7*k))
	}
	return testCases
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x80}},
		{255, []byte{0x80, 0xFF}},
		{256, []byte{0x81, 0x00}},
		{1023, []byte{0x83, 0xFF}},
		{1024, []byte{0x84, 0x00}},
		{1<<14 - 1, []byte{0xBF, 0xFF}},
		{1 << 14, []byte{0xC0, 0x00, 0x40}},
		{65535, []byte{0xC0, 0xFF, 0xFF}},
		{65536, []byte{0xC1, 0x00, 0x00}},
		{1<<56 - 1, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{1 << 56, []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0x01}},
		{1 << 63, []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0x80}},
		{1<<64 - 1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC.n), func(t *testing.T) {
			td.Cmp(t, varuint.Encode(tC.n), tC.want)
			td.Cmp(t, varuint.Decode(tC.want), tC.n)
		})
	}
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		desc string
		s    []byte
		want uint64
	}{
		{"empty", nil, 0},
		{"zero", []byte{0}, 0},
		{"one", []byte{1}, 1},
		{"255", []byte{0x80, 0xFF}, 255},
		{"256", []byte{0x81, 0x00}, 256},
		{"non-canonical 5 in 2 bytes", []byte{0x80, 0x05}, 5},
		{"non-canonical 5 in 9 bytes", []byte{0xFF, 5, 0, 0, 0, 0, 0, 0, 0}, 5},
		{"trailing bytes ignored", []byte{0x81, 0x00, 0xAA, 0xBB}, 256},
		{"truncated header reads zeros", []byte{0xC1, 0x02}, 0x010002},
		{"sentinel in short buffer", []byte{0xFF, 0x01, 0x02}, 0x0201},
		{"sentinel alone", []byte{0xFF}, 0},
		{"long buffer without sentinel", []byte{0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 2},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, varuint.Decode(tC.s), tC.want)
		})
	}
}

func TestDecodePrefix(t *testing.T) {
	testCases := []struct {
		desc    string
		s       []byte
		want    uint64
		wantLen int
		err     error
	}{
		{"empty", []byte{}, 0, 0, encio.ErrMalformedHeader},
		{"single", []byte{0x7F}, 127, 1, nil},
		{"two", []byte{0x80, 0xFF, 0x01}, 255, 2, nil},
		{"short two", []byte{0x80}, 0, 0, encio.ErrMalformedHeader},
		{"short three", []byte{0xC0, 0x01}, 0, 0, encio.ErrMalformedHeader},
		{"sentinel", []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0x80, 0x01}, 1 << 63, 9, nil},
		{"short sentinel", []byte{0xFF, 0, 0, 0, 0, 0, 0, 0}, 0, 0, encio.ErrMalformedHeader},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			n, l, err := varuint.DecodePrefix(tC.s)
			if tC.err != nil {
				td.CmpTrue(t, errors.Is(err, tC.err), "got error %v", err)
				return
			}
			td.CmpNoError(t, err)
			td.Cmp(t, n, tC.want)
			td.Cmp(t, l, tC.wantLen)
		})
	}
}

func TestSize(t *testing.T) {
	for _, n := range boundaries() {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			want := varuint.MaxLen
			for k := 0; k < 8; k++ {
				if n < 1<<(7*(k+1)) {
					want = k + 1
					break
				}
			}

			td.Cmp(t, varuint.Size(n), want)
			td.CmpLen(t, varuint.Encode(n), want)
		})
	}
}

func TestIsCanonical(t *testing.T) {
	td.CmpTrue(t, varuint.IsCanonical([]byte{0x00}))
	td.CmpTrue(t, varuint.IsCanonical([]byte{0x80, 0x80}))
	td.CmpTrue(t, varuint.IsCanonical(varuint.Encode(1<<64-1)))
	td.CmpFalse(t, varuint.IsCanonical(nil))
	td.CmpFalse(t, varuint.IsCanonical([]byte{0x80, 0x05}))
	td.CmpFalse(t, varuint.IsCanonical([]byte{0x80, 0x80, 0x00}))
	td.CmpFalse(t, varuint.IsCanonical([]byte{0xFF, 1, 0, 0, 0, 0, 0, 0, 0}))
}

func TestAppend(t *testing.T) {
	dst := []byte{0xAA}
	dst = varuint.Append(dst, 256)
	dst = varuint.Append(dst, 1)
	td.Cmp(t, dst, []byte{0xAA, 0x81, 0x00, 0x01})
}

func TestUvarint(t *testing.T) {
	enc := varuint.Uvarint{}
	buff := new(bytes.Buffer)

	testCases := boundaries()
	for _, tC := range testCases {
		if err := enc.Encode(buff, tC); err != nil {
			t.Fatal(err)
		}
	}

	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			n, err := enc.Decode(buff)
			if err != nil {
				t.Fatal(err)
			}

			if n != tC {
				t.Fatalf("Wrong number, wanted: %v, got %v", tC, n)
			}
		})
	}

	if buff.Len() != 0 {
		t.Fatalf("data remaining in buffer %v", buff.Bytes())
	}

	_, err := enc.Decode(buff)
	td.CmpTrue(t, errors.Is(err, io.EOF), "got error %v", err)

	_, err = enc.Decode(bytes.NewReader([]byte{0xC0, 0x01}))
	td.CmpTrue(t, errors.Is(err, io.ErrUnexpectedEOF), "got error %v", err)
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.OneOf(rapid.Uint64(), rapid.SampledFrom(boundaries())).Draw(t, "n")

		e := varuint.Encode(n)
		if got := varuint.Decode(e); got != n {
			t.Fatalf("decoded %v from %x, want %v", got, e, n)
		}

		got, l, err := varuint.DecodePrefix(e)
		if err != nil || got != n || l != len(e) {
			t.Fatalf("DecodePrefix(%x) = %v, %v, %v", e, got, l, err)
		}

		if !varuint.IsCanonical(e) {
			t.Fatalf("%x is not canonical", e)
		}
	})
}

func TestPrefixProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64().Draw(t, "n")
		e := varuint.Encode(n)

		if len(e) < 1 || len(e) > varuint.MaxLen {
			t.Fatalf("encoding %x of %v has length %v", e, n, len(e))
		}

		ones := bits.LeadingZeros8(^e[0])
		if len(e) == varuint.MaxLen {
			if e[0] != 0xFF {
				t.Fatalf("9 byte encoding %x does not start with 0xFF", e)
			}
		} else if ones != len(e)-1 {
			t.Fatalf("encoding %x has %v leading ones, want %v", e, ones, len(e)-1)
		}

		if varuint.HeaderSize(e[0]) != len(e) {
			t.Fatalf("HeaderSize(0x%02x) = %v, want %v", e[0], varuint.HeaderSize(e[0]), len(e))
		}
	})
}

var uint64Sink uint64

func BenchmarkEncode(b *testing.B) {
	enc := varuint.Uvarint{}
	for _, n := range []uint64{1, 1 << 20, 1<<64 - 1} {
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if err := enc.Encode(ioutil.Discard, n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	for _, n := range []uint64{1, 1 << 20, 1<<64 - 1} {
		e := varuint.Encode(n)
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				uint64Sink = varuint.Decode(e)
			}
		})
	}
}
