package binreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int16Type() *IntegerType {
	return NewIntegerType(DebugInfo{}, "int16", SizeFromBits(16), SignednessSigned, ByteOrderBigEndian)
}

func uint8Type() *IntegerType {
	return NewIntegerType(DebugInfo{}, "uint8", SizeFromBits(8), SignednessUnsigned, ByteOrderBigEndian)
}

func int32Type() *IntegerType {
	return NewIntegerType(DebugInfo{}, "int32", SizeFromBits(32), SignednessSigned, ByteOrderBigEndian)
}

// scenario 1: type foo { int16 a; int32 b; }; bytes 11 22 33 44 55 66
// => foo.a = 0x1122, foo.b = 0x33445566, foo.c = null.
func TestRecordScenarioOne(t *testing.T) {
	foo := NewRecordType(DebugInfo{}, "foo", []FieldDecl{
		{Name: "a", Type: int16Type()},
		{Name: "b", Type: int32Type()},
	})

	reader := NewBufferedReader(NewMemoryByteSource([]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}))
	errs := &ErrorCollection{}
	value, ok := foo.ReadValue(reader, errs)
	assert.True(t, ok)

	rec := value.Record()
	assert.Equal(t, int64(0x1122), rec.GetFieldValue("a", errs).AsSigned())
	assert.Equal(t, int64(0x33445566), rec.GetFieldValue("b", errs).AsSigned())
	assert.True(t, rec.GetFieldValue("c", errs).IsNull())
}

// scenario 2: type Vec { int8 x; int16 y; } type Main { Vec a; uint8 b; Vec c; };
// bytes 11 22 33 44 55 66 77 => Main.a.x=0x11, Main.a.y=0x2233,
// Main.b=0x44, Main.c.x=0x55, Main.c.y=0x6677.
func TestRecordScenarioTwoNested(t *testing.T) {
	int8Type := NewIntegerType(DebugInfo{}, "int8", SizeFromBits(8), SignednessSigned, ByteOrderBigEndian)
	vec := NewRecordType(DebugInfo{}, "Vec", []FieldDecl{
		{Name: "x", Type: int8Type},
		{Name: "y", Type: int16Type()},
	})
	main := NewRecordType(DebugInfo{}, "Main", []FieldDecl{
		{Name: "a", Type: vec},
		{Name: "b", Type: uint8Type()},
		{Name: "c", Type: vec},
	})

	reader := NewBufferedReader(NewMemoryByteSource([]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}))
	errs := &ErrorCollection{}
	value, ok := main.ReadValue(reader, errs)
	assert.True(t, ok)

	rec := value.Record()
	a := rec.GetFieldValue("a", errs).Record()
	assert.Equal(t, int64(0x11), a.GetFieldValue("x", errs).AsSigned())
	assert.Equal(t, int64(0x2233), a.GetFieldValue("y", errs).AsSigned())
	assert.Equal(t, uint64(0x44), rec.GetFieldValue("b", errs).AsUnsigned())
	c := rec.GetFieldValue("c", errs).Record()
	assert.Equal(t, int64(0x55), c.GetFieldValue("x", errs).AsSigned())
	assert.Equal(t, int64(0x6677), c.GetFieldValue("y", errs).AsSigned())

	assert.Same(t, rec, a.Parent())
	assert.False(t, errs.HasErrors())
}

func TestRecordFieldValueIsCachedAfterFirstAccess(t *testing.T) {
	foo := NewRecordType(DebugInfo{}, "foo", []FieldDecl{{Name: "a", Type: uint8Type()}})
	reader := NewBufferedReader(NewMemoryByteSource([]byte{0x42}))
	errs := &ErrorCollection{}
	value, ok := foo.ReadValue(reader, errs)
	assert.True(t, ok)
	rec := value.Record()

	first := rec.GetFieldValue("a", errs)
	second := rec.GetFieldValue("a", errs)
	assert.True(t, first.Equal(second))
}

func TestRecordClearCacheForcesReread(t *testing.T) {
	foo := NewRecordType(DebugInfo{}, "foo", []FieldDecl{{Name: "a", Type: uint8Type()}})
	source := NewMemoryByteSource([]byte{0x01})
	reader := NewBufferedReader(source)
	errs := &ErrorCollection{}
	value, ok := foo.ReadValue(reader, errs)
	assert.True(t, ok)
	rec := value.Record()

	assert.Equal(t, uint64(1), rec.GetFieldValue("a", errs).AsUnsigned())
	rec.ClearCache()
	assert.Equal(t, uint64(1), rec.GetFieldValue("a", errs).AsUnsigned())
}

func TestRecordReparseRebuildsFields(t *testing.T) {
	foo := NewRecordType(DebugInfo{}, "foo", []FieldDecl{{Name: "a", Type: uint8Type()}})
	reader := NewBufferedReader(NewMemoryByteSource([]byte{0x01}))
	errs := &ErrorCollection{}
	value, ok := foo.ReadValue(reader, errs)
	assert.True(t, ok)
	rec := value.Record()

	assert.True(t, rec.Reparse(errs))
	assert.Equal(t, []string{"a"}, rec.FieldNames())
}

func TestRecordEndPastStaticSize(t *testing.T) {
	foo := NewRecordType(DebugInfo{}, "foo", []FieldDecl{
		{Name: "a", Type: uint8Type()},
		{Name: "b", Type: int16Type()},
	})
	reader := NewBufferedReader(NewMemoryByteSource([]byte{0x01, 0x02, 0x03}))
	errs := &ErrorCollection{}
	value, ok := foo.ReadValue(reader, errs)
	assert.True(t, ok)
	rec := value.Record()
	assert.Equal(t, uint64(3), rec.End().ByteCount())
}

func TestNewTestRecordHandleServesFieldsWithoutReader(t *testing.T) {
	rec := NewTestRecordHandle(
		FieldValue{Name: "a", Value: UnsignedValue(5)},
		FieldValue{Name: "b", Value: StringValue("hi")},
	)
	errs := &ErrorCollection{}
	assert.Equal(t, uint64(5), rec.GetFieldValue("a", errs).AsUnsigned())
	assert.Equal(t, "hi", rec.GetFieldValue("b", errs).Str())
	assert.True(t, rec.GetFieldValue("missing", errs).IsNull())
}
