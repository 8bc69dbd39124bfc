package binreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeConstructors(t *testing.T) {
	s := SizeFromBytesAndOffset(3, 5)
	assert.Equal(t, uint64(3), s.ByteCount())
	assert.Equal(t, uint8(5), s.BitOffset())
	assert.Equal(t, uint64(29), s.BitCount())
}

func TestSizeArithmetic(t *testing.T) {
	a := SizeFromBits(10)
	b := SizeFromBits(6)
	assert.True(t, a.Add(b).Equal(SizeFromBits(16)))
	assert.True(t, a.Sub(b).Equal(SizeFromBits(4)))
}

func TestSizeClipToByte(t *testing.T) {
	s := SizeFromBytesAndOffset(2, 3)
	clipped := s.ClipToByte()
	assert.Equal(t, uint64(2), clipped.ByteCount())
	assert.Equal(t, uint8(0), clipped.BitOffset())
}

func TestSizeOrdering(t *testing.T) {
	a := SizeFromBits(8)
	b := SizeFromBits(9)
	assert.True(t, a.Less(b))
	assert.True(t, b.Greater(a))
	assert.True(t, a.LessEqual(a))
	assert.True(t, a.GreaterEqual(a))
	assert.False(t, a.Equal(b))
}

func TestSizeString(t *testing.T) {
	s := SizeFromBytesAndOffset(4, 3)
	assert.Equal(t, "4:3", s.String())
}
