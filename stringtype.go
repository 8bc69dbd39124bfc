package binreader

import "bytes"

// StringType is either a fixed-length byte string (statically sized)
// or a terminator-bounded one (not statically sized, so a record
// containing one has no static size itself and fails to read with
// FieldsMustBeStatic).
type StringType struct {
	debug DebugInfo
	alias string

	// fixedLength, when hasLength is true, is the byte length to
	// read; otherwise reads run up to terminator, or to maxLength
	// bytes if the terminator never appears.
	hasLength   bool
	fixedLength uint64
	terminator  byte
	maxLength   uint64
	encoding    string
}

// NewFixedStringType builds a statically-sized string type reading
// exactly length bytes.
func NewFixedStringType(debug DebugInfo, alias string, length uint64, encoding string) *StringType {
	return &StringType{debug: debug, alias: alias, hasLength: true, fixedLength: length, encoding: encoding}
}

// NewTerminatedStringType builds a string type that reads up to
// terminator (default NUL) or maxLength bytes, whichever comes
// first. Its static size is undefined.
func NewTerminatedStringType(debug DebugInfo, alias string, terminator byte, maxLength uint64, encoding string) *StringType {
	if maxLength == 0 {
		maxLength = 1024
	}
	return &StringType{debug: debug, alias: alias, terminator: terminator, maxLength: maxLength, encoding: encoding}
}

func (t *StringType) AliasName() string { return t.alias }
func (t *StringType) BaseName() string  { return "string" }
func (t *StringType) Debug() DebugInfo  { return t.debug }

func (t *StringType) StaticSize() (Size, bool) {
	if !t.hasLength {
		return Size{}, false
	}
	return SizeFromBytes(t.fixedLength), true
}

// OptionTypes lists the option types a "string" field use may name:
// length (switches to a fixed-length read), terminator (overrides the
// default NUL) and encoding (utf8 or utf16le). Length and terminator
// carry an arbitrary payload rather than a name from a small closed
// vocabulary, so ParseOption resolves them by shape (see options.go's
// dynamicOptionTypes); encoding is looked up in the descriptor table.
func (t *StringType) OptionTypes() map[OptionType]bool {
	return map[OptionType]bool{
		OptionStringLength:     true,
		OptionStringTerminator: true,
		OptionEncoding:         true,
	}
}

func (t *StringType) Instantiate(debug DebugInfo, options Options) TypeInfo {
	clone := *t
	clone.debug = debug
	if options.HasLength {
		clone.hasLength = true
		clone.fixedLength = options.Length
	}
	if options.HasTerminator {
		clone.terminator = options.Terminator
	}
	if options.Encoding != "" {
		clone.encoding = options.Encoding
	}
	return &clone
}

// ReadValue reads a fixed-length or terminator-bounded byte run and
// decodes it per the encoding option ("utf16le" is decoded from
// UTF-16; any other encoding keeps the bytes as-is, i.e. as UTF-8),
// returning it as a Value string. The CodecCollection registry is not
// consulted.
func (t *StringType) ReadValue(reader *BufferedReader, errors *ErrorCollection) (Value, bool) {
	start := reader.Position()

	readLen := t.fixedLength
	if !t.hasLength {
		readLen = t.maxLength
	}

	if err := reader.EnsureBuffer(SizeFromBytes(readLen)); err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, start.ByteCount(), err.Error()))
		return Value{}, false
	}
	buffer, err := reader.GetBuffer()
	if err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, start.ByteCount(), err.Error()))
		return Value{}, false
	}

	if t.hasLength {
		if uint64(len(buffer)) < readLen {
			errors.Add(NewErrorInfo(t.debug, ErrorUnexpectedEndOfStream, LevelError, start.ByteCount()))
			return Value{}, false
		}
		raw := buffer[:readLen]
		str := decodeStringBytes(raw, t.encoding)
		if err := reader.Skip(SizeFromBytes(readLen)); err != nil {
			errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, start.ByteCount(), err.Error()))
			return Value{}, false
		}
		return StringValue(str), true
	}

	limit := uint64(len(buffer))
	if limit > t.maxLength {
		limit = t.maxLength
	}
	idx := bytes.IndexByte(buffer[:limit], t.terminator)
	consumed := limit
	raw := buffer[:limit]
	if idx >= 0 {
		raw = buffer[:idx]
		consumed = uint64(idx) + 1
	}
	str := decodeStringBytes(raw, t.encoding)
	if err := reader.Skip(SizeFromBytes(consumed)); err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, start.ByteCount(), err.Error()))
		return Value{}, false
	}
	return StringValue(str), true
}

func decodeStringBytes(raw []byte, encoding string) string {
	switch encoding {
	case "utf16le":
		return decodeUTF16LE(raw)
	default:
		return string(raw)
	}
}
