package gpenc

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stewi1014/gpenc/encio"
	"github.com/stewi1014/gpenc/fixed"
	"github.com/stewi1014/gpenc/frame"
	"github.com/stewi1014/gpenc/varuint"
)

// NewCodec returns a Codec using config. A nil config is the zero Config.
func NewCodec(config *Config) *Codec {
	config = config.copyAndFill()
	return &Codec{
		config: config,
		log:    config.Logger.With().Str("component", "codec").Logger(),
	}
}

// Codec applies the encodings with the policy from its Config.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	config *Config
	log    zerolog.Logger
}

// EncodeVarUint64 returns the 1 to 9 byte variable-length encoding of x.
func (c *Codec) EncodeVarUint64(x uint64) []byte {
	return varuint.Encode(x)
}

// DecodeVarUint64 decodes a uint64 from the front of s.
// A strict Codec returns an error wrapping encio.ErrMalformedHeader when s is empty or shorter than its header says.
// A lenient Codec returns 0 for empty input, and reads missing bytes as zero.
func (c *Codec) DecodeVarUint64(s []byte) (uint64, error) {
	if !c.config.Lenient {
		n, _, err := varuint.DecodePrefix(s)
		return n, err
	}

	if len(s) > 0 && len(s) < varuint.HeaderSize(s[0]) {
		c.log.Debug().
			Hex("input", s).
			Int("want", varuint.HeaderSize(s[0])).
			Msg("varuint header longer than input, reading missing bytes as zero")
	}
	return varuint.Decode(s), nil
}

// EncodeUint32Fixed returns x in exactly l bytes, little-endian.
// A strict Codec returns an error wrapping encio.ErrOverflow if x does not fit; a lenient Codec truncates.
// It panics if l is not in [1, 4].
func (c *Codec) EncodeUint32Fixed(x uint32, l int) ([]byte, error) {
	if !c.config.Lenient {
		return fixed.EncodeStrict(x, l)
	}

	if !fixed.Fits(x, l) {
		c.log.Debug().
			Uint32("value", x).
			Int("width", l).
			Msg("truncating value to width")
	}
	return fixed.Encode(x, l), nil
}

// DecodeUint32Fixed decodes an l byte little-endian uint32 from s.
// A strict Codec requires len(s) == l, returning an error wrapping encio.ErrLengthMismatch otherwise.
// A lenient Codec ignores extra bytes and reads missing ones as zero.
// It panics if l is not in [1, 4].
func (c *Codec) DecodeUint32Fixed(s []byte, l int) (uint32, error) {
	if len(s) != l {
		if !c.config.Lenient {
			return 0, encio.NewError(encio.ErrLengthMismatch, fmt.Sprintf("want %v bytes, got %v", l, len(s)), "")
		}
		c.log.Debug().
			Hex("input", s).
			Int("width", l).
			Msg("fixed-width input has the wrong length")
	}
	return fixed.Decode(s, l), nil
}

// EncodeWithLength returns the frame holding p.
// It returns an error wrapping encio.ErrTooLarge if p is longer than the configured MaxFrameLen.
func (c *Codec) EncodeWithLength(p []byte) ([]byte, error) {
	if err := c.checkFrameLen(uint64(len(p))); err != nil {
		return nil, err
	}
	return frame.Encode(p), nil
}

// DecodeWithLength returns a copy of the payload held in the frame s.
// A strict Codec consumes the header from the front of s and requires the rest to be exactly the payload.
// A lenient Codec takes the payload from the end of s, which is only correct for self-contained frames.
func (c *Codec) DecodeWithLength(s []byte) ([]byte, error) {
	var (
		p   []byte
		err error
	)
	if c.config.Lenient {
		p, err = frame.DecodeTrailing(s)
		if err == nil && (len(s) == 0 || varuint.HeaderSize(s[0])+len(p) != len(s)) {
			c.log.Debug().
				Int("frame", len(s)).
				Int("payload", len(p)).
				Msg("frame header and payload do not add up, using trailing bytes")
		}
	} else {
		p, err = frame.Decode(s)
	}
	if err != nil {
		return nil, err
	}

	if err := c.checkFrameLen(uint64(len(p))); err != nil {
		return nil, err
	}
	return p, nil
}

// Limits returns frame.Limits matching the Codec's configuration, for use with frame.Reader and frame.Writer.
func (c *Codec) Limits() frame.Limits {
	return frame.Limits{MaxPayloadBytes: c.config.MaxFrameLen}
}

func (c *Codec) checkFrameLen(n uint64) error {
	if c.config.MaxFrameLen != 0 && n > c.config.MaxFrameLen {
		return encio.NewError(
			encio.ErrTooLarge,
			fmt.Sprintf("payload of %v bytes exceeds limit of %v", n, c.config.MaxFrameLen),
			encio.GetCaller(1),
		)
	}
	return nil
}
