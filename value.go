package binreader

import "unicode/utf16"

// valueKind discriminates the active arm of a Value.
type valueKind int

const (
	valueNull valueKind = iota
	valueNumber
	valueStr
	valueRecord
)

// Value is the dynamic result of reading a field: null, a Number, a
// string, or a handle to a nested record. It has total equality and
// ordering so it can be used as a map key in tests and to stabilize
// JSON output.
type Value struct {
	kind   valueKind
	num    Number
	str    string
	record *RecordHandle
}

// NullValue is the null value.
func NullValue() Value {
	return Value{kind: valueNull}
}

// NumberValue wraps a Number.
func NumberValue(n Number) Value {
	return Value{kind: valueNumber, num: n}
}

// UnsignedValue is shorthand for NumberValue(NewUnsignedNumber(v)).
func UnsignedValue(v uint64) Value {
	return NumberValue(NewUnsignedNumber(v))
}

// SignedValue is shorthand for NumberValue(NewSignedNumber(v)).
func SignedValue(v int64) Value {
	return NumberValue(NewSignedNumber(v))
}

// StringValue wraps a UTF-8 (Go native) string.
func StringValue(v string) Value {
	return Value{kind: valueStr, str: v}
}

// RecordValue wraps a live record handle.
func RecordValue(r *RecordHandle) Value {
	return Value{kind: valueRecord, record: r}
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == valueNull
}

// IsRecord reports whether v holds a record handle.
func (v Value) IsRecord() bool {
	return v.kind == valueRecord
}

// IsString reports whether v holds a string.
func (v Value) IsString() bool {
	return v.kind == valueStr
}

// Record returns the underlying record handle, or nil if v does not
// hold one.
func (v Value) Record() *RecordHandle {
	if v.kind != valueRecord {
		return nil
	}
	return v.record
}

// Str returns the underlying string, or "" if v is not a string.
func (v Value) Str() string {
	if v.kind != valueStr {
		return ""
	}
	return v.str
}

// Number returns the underlying Number; any non-number arm returns
// the zero Number.
func (v Value) Number() Number {
	if v.kind != valueNumber {
		return NewUnsignedNumber(0)
	}
	return v.num
}

// Bool reports the truthiness of v: null and zero numbers are false,
// non-empty strings and non-nil records are true.
func (v Value) Bool() bool {
	switch v.kind {
	case valueNull:
		return false
	case valueNumber:
		return v.num.Bool()
	case valueStr:
		return v.str != ""
	case valueRecord:
		return v.record != nil
	}
	return false
}

// AsUnsigned coerces v to an unsigned integer using Number.AsUnsigned
// clamping rules; non-numeric arms coerce to 0.
func (v Value) AsUnsigned() uint64 {
	return v.Number().AsUnsigned()
}

// AsSigned coerces v to a signed integer using Number.AsSigned rules.
func (v Value) AsSigned() int64 {
	return v.Number().AsSigned()
}

func (v Value) rank() int {
	switch v.kind {
	case valueNull:
		return 0
	case valueNumber:
		return 1
	case valueStr:
		return 2
	default:
		return 3
	}
}

// Equal implements value equality: null ==
// null; numbers compare by mathematical value across sub-variants
// (so -1 never equals 2^64-1); strings compare by content; records
// compare by identity only, never structurally.
func (v Value) Equal(other Value) bool {
	if v.kind == valueNull || other.kind == valueNull {
		return v.kind == other.kind
	}
	if v.kind == valueNumber && other.kind == valueNumber {
		return v.Number().Equal(other.Number())
	}
	if v.kind == valueStr && other.kind == valueStr {
		return v.str == other.str
	}
	if v.kind == valueRecord && other.kind == valueRecord {
		return v.record == other.record
	}
	return false
}

// Less implements a total order: null < number < string < record;
// within number by mathematical value; within string, lexicographic
// over UTF-16 code units; records order by identity only, as a
// tie-breaker, never structurally.
func (v Value) Less(other Value) bool {
	vr, or := v.rank(), other.rank()
	if vr != or {
		return vr < or
	}
	switch v.kind {
	case valueNull:
		return false
	case valueNumber:
		return v.Number().Less(other.Number())
	case valueStr:
		return lessUTF16(v.str, other.str)
	case valueRecord:
		return recordLess(v.record, other.record)
	}
	return false
}

func recordLess(a, b *RecordHandle) bool {
	return ptrOf(a) < ptrOf(b)
}

// lessUTF16 compares two UTF-8 Go strings as if they had been decoded
// to UTF-16 code unit sequences.
func lessUTF16(a, b string) bool {
	au := utf16.Encode([]rune(a))
	bu := utf16.Encode([]rune(b))
	n := len(au)
	if len(bu) < n {
		n = len(bu)
	}
	for i := 0; i < n; i++ {
		if au[i] != bu[i] {
			return au[i] < bu[i]
		}
	}
	return len(au) < len(bu)
}
