package binreader

// TypeInfo is the polymorphic capability bag every type in the model
// implements: primitive integers, user-declared records, and the
// string and enum refinements. Types
// are immutable and shared by reference once
// constructed by the definition parser; Instantiate returns a new,
// independent type with the given options merged into its refinement
// slots.
type TypeInfo interface {
	AliasName() string
	BaseName() string
	// StaticSize reports the type's size when known without reading
	// any data, and whether one is defined at all.
	StaticSize() (Size, bool)
	OptionTypes() map[OptionType]bool
	Instantiate(debug DebugInfo, options Options) TypeInfo
	Debug() DebugInfo
	// ReadValue reads and returns a Value at the reader's current
	// position, advancing it past the data read on success (by exactly
	// StaticSize when the type has one). On failure the reader's
	// position is left unchanged.
	ReadValue(reader *BufferedReader, errors *ErrorCollection) (Value, bool)
}

// IntegerType is a fixed-width integer primitive: 1 to 64 bits, a
// signedness and a byte order.
type IntegerType struct {
	debug DebugInfo
	alias string
	size  Size
	sign  Signedness
	order ByteOrder
}

// NewIntegerType builds an integer primitive of the given bit width.
func NewIntegerType(debug DebugInfo, alias string, size Size, sign Signedness, order ByteOrder) *IntegerType {
	return &IntegerType{debug: debug, alias: alias, size: size, sign: sign, order: order}
}

func (t *IntegerType) AliasName() string       { return t.alias }
func (t *IntegerType) BaseName() string        { return "integer" }
func (t *IntegerType) StaticSize() (Size, bool) { return t.size, true }
func (t *IntegerType) Debug() DebugInfo        { return t.debug }

func (t *IntegerType) Signedness() Signedness { return t.sign }
func (t *IntegerType) ByteOrder() ByteOrder   { return t.order }

func (t *IntegerType) OptionTypes() map[OptionType]bool {
	return map[OptionType]bool{OptionSignedness: true, OptionByteOrder: true}
}

// Instantiate resolves signedness/byte order against the given
// options, falling back to this type's own values as defaults.
func (t *IntegerType) Instantiate(debug DebugInfo, options Options) TypeInfo {
	defaults := Options{Signedness: t.sign, ByteOrder: t.order}
	return &IntegerType{
		debug: debug,
		alias: t.alias,
		size:  t.size,
		sign:  options.EffectiveSignedness(defaults),
		order: options.EffectiveByteOrder(defaults),
	}
}

// ReadValue assembles an unsigned accumulator from a leading
// sub-byte, whole middle bytes (direction depends on byte order), and
// a trailing sub-byte, then sign-extends if needed.
func (t *IntegerType) ReadValue(reader *BufferedReader, errors *ErrorCollection) (Value, bool) {
	size := t.size.BitCount()
	bitOffset := reader.Position().BitOffset()
	finalBits := (uint64(bitOffset) + size) % 8
	byteCount := (uint64(bitOffset) + size) / 8
	if finalBits != 0 {
		byteCount++
	}

	if t.order == ByteOrderLittleEndian && (bitOffset != 0 || finalBits != 0) {
		errors.Add(NewErrorInfo(t.debug, ErrorLittleEndianAlign, LevelError, reader.Position().ByteCount()))
		return Value{}, false
	}

	if err := reader.EnsureBuffer(t.size); err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, reader.Position().ByteCount(), err.Error()))
		return Value{}, false
	}

	buffer, err := reader.GetBuffer()
	if err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, reader.Position().ByteCount(), err.Error()))
		return Value{}, false
	}
	if uint64(len(buffer)) < byteCount {
		errors.Add(NewErrorInfo(t.debug, ErrorUnexpectedEndOfStream, LevelError, reader.Position().ByteCount()))
		return Value{}, false
	}

	var value uint64
	index := uint64(0)
	if bitOffset != 0 {
		mask := uint64((1 << (8 - bitOffset)) - 1)
		shift := uint64(8)
		if size+uint64(bitOffset) < 8 {
			shift = 8 - (size + uint64(bitOffset))
		} else {
			shift = 0
		}
		value = (uint64(buffer[0]) & mask) >> shift
		index++
	}

	limit := byteCount - 1
	for ; index < limit || (index == limit && finalBits == 0); index++ {
		b := uint64(buffer[index])
		if t.order == ByteOrderLittleEndian {
			value |= b << (8 * index)
		} else {
			value = (value << 8) | b
		}
	}

	if finalBits != 0 && (byteCount != 1 || bitOffset == 0) {
		value = (value << finalBits) | (uint64(buffer[index]) >> (8 - finalBits))
	}

	var result Value
	if t.sign == SignednessSigned && value&(1<<(size-1)) != 0 {
		if size != 64 {
			value |= ^uint64(0) << size
		}
		result = SignedValue(int64(value))
	} else {
		result = UnsignedValue(value)
	}

	if err := reader.Skip(t.size); err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, reader.Position().ByteCount(), err.Error()))
		return Value{}, false
	}
	return result, true
}

// FieldDecl is a single named, typed slot within a RecordType.
type FieldDecl struct {
	Name string
	Type TypeInfo
}

// RecordType is a user-declared composite type: an ordered list of
// field declarations. Its static size is the sum of its fields'
// static sizes iff every field is statically sized.
type RecordType struct {
	debug  DebugInfo
	alias  string
	fields []FieldDecl
}

// NewRecordType builds a record type from its ordered fields.
func NewRecordType(debug DebugInfo, alias string, fields []FieldDecl) *RecordType {
	return &RecordType{debug: debug, alias: alias, fields: fields}
}

func (t *RecordType) AliasName() string { return t.alias }
func (t *RecordType) BaseName() string  { return "record" }
func (t *RecordType) Debug() DebugInfo  { return t.debug }
func (t *RecordType) Fields() []FieldDecl { return t.fields }

func (t *RecordType) StaticSize() (Size, bool) {
	total := SizeFromBits(0)
	for _, f := range t.fields {
		s, ok := f.Type.StaticSize()
		if !ok {
			return Size{}, false
		}
		total = total.Add(s)
	}
	return total, true
}

// OptionTypes is empty: records accept no refinement options.
func (t *RecordType) OptionTypes() map[OptionType]bool {
	return nil
}

// Instantiate returns an equivalent record with new debug info; since
// OptionTypes is empty, options are never actually applied to a
// record use.
func (t *RecordType) Instantiate(debug DebugInfo, options Options) TypeInfo {
	return &RecordType{debug: debug, alias: t.alias, fields: t.fields}
}

// ReadValue anchors a RecordHandle at the reader's current position,
// reparses its fields, and on success leaves the reader positioned
// just past the record's static size.
func (t *RecordType) ReadValue(reader *BufferedReader, errors *ErrorCollection) (Value, bool) {
	start := reader.Position()
	handle := &RecordHandle{reader: reader, typ: t, start: start}
	if !handle.Reparse(errors) {
		return Value{}, false
	}

	size, ok := t.StaticSize()
	if !ok {
		errors.Add(NewErrorInfo(t.debug, ErrorFieldsMustBeStatic, LevelError, start.ByteCount()))
		return Value{}, false
	}
	if err := reader.Seek(start.Add(size)); err != nil {
		errors.Add(NewErrorInfo(t.debug, ErrorIoError, LevelError, start.ByteCount(), err.Error()))
		return Value{}, false
	}
	return RecordValue(handle), true
}
