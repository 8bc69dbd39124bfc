package binreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF8DecodeBMP(t *testing.T) {
	c := utf8Converter{}
	var out []uint16
	assert.NoError(t, c.Decode([]byte("hello"), &out))
	assert.Equal(t, []uint16{'h', 'e', 'l', 'l', 'o'}, out)
}

func TestUTF8DecodeSupplementaryProducesSurrogatePair(t *testing.T) {
	c := utf8Converter{}
	var out []uint16
	// U+10000 encodes as 4 UTF-8 bytes.
	assert.NoError(t, c.Decode([]byte{0xf0, 0x90, 0x80, 0x80}, &out))
	assert.Equal(t, []uint16{0xd800, 0xdc00}, out)
}

func TestUTF8DecodeStashesTruncatedSequence(t *testing.T) {
	c := utf8Converter{}
	var out []uint16
	// Split a 3-byte sequence (U+20AC, "€") across two Decode calls.
	full := []byte{0xe2, 0x82, 0xac}
	assert.NoError(t, c.Decode(full[:1], &out))
	assert.Empty(t, out)
	assert.Equal(t, 1, c.tempUsed)
	assert.NoError(t, c.Decode(full[1:], &out))
	assert.Equal(t, []uint16{0x20ac}, out)
}

func TestUTF8DecodeInvalidLeadByte(t *testing.T) {
	c := utf8Converter{}
	var out []uint16
	err := c.Decode([]byte{0xff}, &out)
	assert.Error(t, err)
}

func TestUTF8DecodeInvalidContinuationByte(t *testing.T) {
	c := utf8Converter{}
	var out []uint16
	err := c.Decode([]byte{0xe2, 0x00, 0xac}, &out)
	assert.Error(t, err)
}

func TestUTF8EncodeSurrogatePairCombinesToSupplementary(t *testing.T) {
	c := utf8Converter{}
	var out []byte
	c.Encode([]uint16{0xd800, 0xdc00}, &out)
	assert.Equal(t, []byte{0xf0, 0x90, 0x80, 0x80}, out)
}

func TestUTF8EncodeUnpairedSurrogateIsLiteral(t *testing.T) {
	c := utf8Converter{}
	var out []byte
	c.Encode([]uint16{0xd800}, &out)
	assert.Len(t, out, 3)
}

func TestUTF8RoundTripForOrdinaryText(t *testing.T) {
	original := "hello, world! éè"
	c := utf8Converter{}
	var units []uint16
	assert.NoError(t, c.Decode([]byte(original), &units))
	var out []byte
	c.Encode(units, &out)
	assert.Equal(t, original, string(out))
}

func TestCreateDefaultCollectionRegistersUTF8Spellings(t *testing.T) {
	c := CreateDefaultCollection()
	for _, name := range []string{"utf8", "utf-8", "UTF8", "UTF-8"} {
		assert.NotNil(t, c.GetCodec(name))
	}
	assert.Nil(t, c.GetCodec("shift-jis"))
}
