package binreader

import "unicode/utf16"

// TextConverter is a stateful streaming decoder/encoder between raw
// bytes and UTF-16 code units.
type TextConverter interface {
	// Decode appends the UTF-16 code units decoded from buffer to
	// output, returning an error for an invalid byte sequence. A
	// sequence truncated at the end of buffer is stashed internally
	// and completed on the next call.
	Decode(buffer []byte, output *[]uint16) error
	// Encode appends the UTF-8 bytes encoded from units to output.
	Encode(units []uint16, output *[]byte)
	// Reset clears any stashed partial sequence.
	Reset()
}

// Codec constructs fresh TextConverter instances; a Codec itself is
// stateless and safe to share across converters.
type Codec interface {
	CreateCoder() TextConverter
}

// CodecCollection is a registry of named codecs. It is populated once
// at initialization and treated as read-mostly thereafter.
type CodecCollection struct {
	codecs map[string]Codec
}

// NewCodecCollection builds an empty registry.
func NewCodecCollection() *CodecCollection {
	return &CodecCollection{codecs: map[string]Codec{}}
}

// AddCodec registers a codec under name, overwriting any existing
// entry.
func (c *CodecCollection) AddCodec(name string, codec Codec) {
	c.codecs[name] = codec
}

// GetCodec looks up a codec by name, or returns nil.
func (c *CodecCollection) GetCodec(name string) Codec {
	return c.codecs[name]
}

// GetDefaultCodec returns the built-in "utf8" codec.
func (c *CodecCollection) GetDefaultCodec() Codec {
	return c.GetCodec("utf8")
}

type utf8Codec struct{}

func (utf8Codec) CreateCoder() TextConverter {
	return &utf8Converter{}
}

// CreateDefaultCollection builds a registry with the required UTF-8
// codec under its common spellings.
func CreateDefaultCollection() *CodecCollection {
	c := NewCodecCollection()
	codec := utf8Codec{}
	for _, name := range []string{"utf8", "utf-8", "UTF8", "UTF-8"} {
		c.AddCodec(name, codec)
	}
	return c
}

// utf8Converter implements a streaming UTF-8 <-> UTF-16 codec: a
// truncated trailing sequence is stashed (up to 4 bytes) and
// completed on the next Decode call.
type utf8Converter struct {
	temp     [4]byte
	tempUsed int
}

func utf8LeadLength(head byte) int {
	switch {
	case head&0x80 == 0:
		return 1
	case head&0xe0 == 0xc0:
		return 2
	case head&0xf0 == 0xe0:
		return 3
	case head&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

func (u *utf8Converter) byteAt(buffer []byte, offset, i int) byte {
	if i < u.tempUsed {
		return u.temp[i]
	}
	return buffer[i-u.tempUsed+offset]
}

// Decode implements a stash-and-resume, surrogate-pair encoding
// scheme: a lead byte that arrives with too few trailing bytes in
// this call is buffered and finished off on the next one.
func (u *utf8Converter) Decode(buffer []byte, output *[]uint16) error {
	offset := 0
	size := len(buffer)
	for u.tempUsed > 0 || offset < size {
		var head byte
		if u.tempUsed > 0 {
			head = u.temp[0]
		} else {
			head = buffer[offset]
		}
		numBytes := utf8LeadLength(head)
		if numBytes == 0 {
			return ErrInvalidUTF8
		}

		if numBytes > size-offset+u.tempUsed {
			copy(u.temp[u.tempUsed:], buffer[offset:])
			u.tempUsed += size - offset
			return nil
		}

		codePoint := uint32(head) & uint32((1<<(8-numBytes))-1)
		for i := 1; i < numBytes; i++ {
			cur := u.byteAt(buffer, offset, i)
			if cur&0xc0 != 0x80 {
				return ErrInvalidUTF8
			}
			codePoint = (codePoint << 6) | uint32(cur&0x3f)
		}

		if codePoint < 0x10000 {
			*output = append(*output, uint16(codePoint))
		} else {
			codePoint -= 0x10000
			*output = append(*output, uint16(0xd800|(codePoint>>10)))
			*output = append(*output, uint16(0xdc00|(codePoint&0x3ff)))
		}

		offset += numBytes - u.tempUsed
		u.tempUsed = 0
	}
	return nil
}

// Encode combines a paired surrogate into a single supplementary code
// point (0x10000 + ((hi&0x3ff)<<10) + (lo&0x3ff)); an unpaired
// surrogate encodes literally as a 3-byte sequence.
func (u *utf8Converter) Encode(units []uint16, output *[]byte) {
	for i := 0; i < len(units); i++ {
		var codePoint uint32
		if i+1 < len(units) && units[i] >= 0xd800 && units[i] <= 0xdbff &&
			units[i+1] >= 0xdc00 && units[i+1] <= 0xdfff {
			codePoint = 0x10000 + (uint32(units[i]&0x3ff) << 10) + uint32(units[i+1]&0x3ff)
			i++
		} else {
			codePoint = uint32(units[i])
		}

		switch {
		case codePoint < 0x80:
			*output = append(*output, byte(codePoint))
		case codePoint < 0x800:
			*output = append(*output,
				byte(0xc0|(codePoint>>6)),
				byte(0x80|(codePoint&0x3f)))
		case codePoint < 0x10000:
			*output = append(*output,
				byte(0xe0|(codePoint>>12)),
				byte(0x80|((codePoint>>6)&0x3f)),
				byte(0x80|(codePoint&0x3f)))
		default:
			*output = append(*output,
				byte(0xf0|(codePoint>>18)),
				byte(0x80|((codePoint>>12)&0x3f)),
				byte(0x80|((codePoint>>6)&0x3f)),
				byte(0x80|(codePoint&0x3f)))
		}
	}
}

func (u *utf8Converter) Reset() {
	u.tempUsed = 0
}

// ErrInvalidUTF8 is returned by Decode for a malformed byte sequence.
var ErrInvalidUTF8 = errInvalidUTF8{}

type errInvalidUTF8 struct{}

func (errInvalidUTF8) Error() string { return "invalid UTF-8 byte sequence" }

// decodeUTF16LE decodes a little-endian UTF-16 byte run to a Go
// string, used by StringType's "utf16le" encoding option.
func decodeUTF16LE(raw []byte) string {
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}
