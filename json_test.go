package binreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpJSONPrimitives(t *testing.T) {
	errs := &ErrorCollection{}
	assert.Equal(t, "null", DumpJSON(NullValue(), DefaultJSONOptions, errs))
	assert.Equal(t, "5", DumpJSON(UnsignedValue(5), DefaultJSONOptions, errs))
	assert.Equal(t, "-5", DumpJSON(SignedValue(-5), DefaultJSONOptions, errs))
	assert.Equal(t, `"hi"`, DumpJSON(StringValue("hi"), DefaultJSONOptions, errs))
}

func TestDumpJSONEscapesSpecialCharacters(t *testing.T) {
	errs := &ErrorCollection{}
	out := DumpJSON(StringValue("a\"b\\c\nd"), DefaultJSONOptions, errs)
	assert.Equal(t, `"a\"b\\c\nd"`, out)
}

func TestDumpJSONRecordCompact(t *testing.T) {
	rec := NewTestRecordHandle(
		FieldValue{Name: "a", Value: UnsignedValue(1)},
		FieldValue{Name: "b", Value: StringValue("x")},
	)
	errs := &ErrorCollection{}
	out := DumpJSON(RecordValue(rec), DefaultJSONOptions, errs)
	assert.Equal(t, `{"a":1,"b":"x"}`, out)
}

func TestDumpJSONRecordPretty(t *testing.T) {
	rec := NewTestRecordHandle(FieldValue{Name: "a", Value: UnsignedValue(1)})
	errs := &ErrorCollection{}
	out := DumpJSONIndent(RecordValue(rec), errs)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out)
}

func TestDumpJSONNestedRecordPreservesDeclarationOrder(t *testing.T) {
	inner := NewTestRecordHandle(FieldValue{Name: "x", Value: UnsignedValue(1)})
	outer := NewTestRecordHandle(
		FieldValue{Name: "first", Value: UnsignedValue(0)},
		FieldValue{Name: "nested", Value: RecordValue(inner)},
	)
	errs := &ErrorCollection{}
	out := DumpJSON(RecordValue(outer), DefaultJSONOptions, errs)
	assert.Equal(t, `{"first":0,"nested":{"x":1}}`, out)
}
