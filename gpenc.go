// Package gpenc provides a compact, self-delimiting binary encoding for uint64s, fixed-width uint32s and octet sequences.
//
// The encodings are pure functions of their input, and all decoders return freshly allocated data,
// so everything here is safe for concurrent use.
//
// Low-level methods are exposed in sub-packages, allowing them to be used without the policy handling of a Codec:
//
// gpenc/varuint provides the variable-length uint64 encoding, whose length is recoverable from its first byte.
//
// gpenc/fixed provides the trivial fixed-width little-endian uint32 encoding.
//
// gpenc/frame provides length-prefixed octet sequences built on varuint.
//
// gpenc/encio provides io and error types shared by the above.
//
// A Codec applies a Config to the six basic operations, choosing between the lenient reference behaviour,
// which never rejects input, and strict behaviour, which reports malformed headers, length mismatches and overflow.
package gpenc
