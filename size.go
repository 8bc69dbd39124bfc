// Package binreader implements a data-driven binary file parser: a
// textual type definition plus a byte source produce a lazily
// materialized tree of named values.
package binreader

import "strconv"

// Size is a non-negative count of bits within a binary file. It is
// used everywhere a file offset or field length is needed so that
// sub-byte precision is never lost or confused with a byte count.
type Size struct {
	bits uint64
}

// SizeFromBytes builds a Size representing the given number of whole
// bytes.
func SizeFromBytes(bytes uint64) Size {
	return Size{bits: bytes * 8}
}

// SizeFromBits builds a Size from a raw bit count.
func SizeFromBits(bits uint64) Size {
	return Size{bits: bits}
}

// SizeFromBytesAndOffset builds a Size from a byte count plus a
// sub-byte bit offset (0-7).
func SizeFromBytesAndOffset(bytes uint64, bitOffset uint8) Size {
	return Size{bits: bytes*8 + uint64(bitOffset)}
}

// Add returns the sum of two sizes.
func (s Size) Add(other Size) Size {
	return Size{bits: s.bits + other.bits}
}

// Sub returns the difference of two sizes. The caller must ensure the
// result does not underflow; this is a programmer error, not a
// reportable one.
func (s Size) Sub(other Size) Size {
	return Size{bits: s.bits - other.bits}
}

// BitCount returns the size in bits.
func (s Size) BitCount() uint64 {
	return s.bits
}

// ByteCount returns the whole-byte portion of the size.
func (s Size) ByteCount() uint64 {
	return s.bits / 8
}

// BitOffset returns the sub-byte remainder of the size, in [0, 8).
func (s Size) BitOffset() uint8 {
	return uint8(s.bits % 8)
}

// ClipToByte drops any sub-byte remainder, rounding down to the
// nearest whole byte.
func (s Size) ClipToByte() Size {
	return Size{bits: s.bits - s.bits%8}
}

// Equal reports whether the two sizes represent the same bit count.
func (s Size) Equal(other Size) bool {
	return s.bits == other.bits
}

// Less reports whether s is strictly smaller than other.
func (s Size) Less(other Size) bool {
	return s.bits < other.bits
}

// LessEqual reports whether s is smaller than or equal to other.
func (s Size) LessEqual(other Size) bool {
	return s.bits <= other.bits
}

// Greater reports whether s is strictly larger than other.
func (s Size) Greater(other Size) bool {
	return s.bits > other.bits
}

// GreaterEqual reports whether s is larger than or equal to other.
func (s Size) GreaterEqual(other Size) bool {
	return s.bits >= other.bits
}

// String renders the size as "bytes:bit_offset", matching the
// original C++ implementation's debug format.
func (s Size) String() string {
	return strconv.FormatUint(s.ByteCount(), 10) + ":" + strconv.FormatUint(uint64(s.BitOffset()), 10)
}
