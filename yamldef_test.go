package binreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDefinitionYAML = `
- [foo, [
    [a, int16],
    [b, int32, [{order: little}]]
  ]]
`

func TestParseYAMLDefinitionsBasic(t *testing.T) {
	defs, err := ParseYAMLDefinitions([]byte(sampleDefinitionYAML), "sample.yaml")
	assert.NoError(t, err)
	assert.Len(t, defs, 1)
	assert.Equal(t, "foo", defs[0].Name)
	assert.Len(t, defs[0].Members, 2)
	assert.Equal(t, "a", defs[0].Members[0].Name)
	assert.Equal(t, "int16", defs[0].Members[0].Type.Alias)
	assert.Equal(t, "little", defs[0].Members[1].Type.Options[0].Value)
	assert.Equal(t, "order", defs[0].Members[1].Type.Options[0].Name)
}

func TestParseYAMLDefinitionsRejectsMalformedTypeDef(t *testing.T) {
	_, err := ParseYAMLDefinitions([]byte("- [foo]"), "sample.yaml")
	assert.Error(t, err)
}

func TestParseYAMLDefinitionsBareOptionTerm(t *testing.T) {
	data := `
- [foo, [
    [a, int16, [little]]
  ]]
`
	defs, err := ParseYAMLDefinitions([]byte(data), "sample.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "little", defs[0].Members[0].Type.Options[0].Value)
	assert.Equal(t, "", defs[0].Members[0].Type.Options[0].Name)
}

func TestParseYAMLThenDefinitionParserRoundTrip(t *testing.T) {
	defs, err := ParseYAMLDefinitions([]byte(sampleDefinitionYAML), "sample.yaml")
	assert.NoError(t, err)

	p := NewDefinitionParser("sample.yaml")
	types, ok := p.ParseFile(defs)
	assert.True(t, ok)

	foo := types["foo"].(*RecordType)
	reader := NewBufferedReader(NewMemoryByteSource([]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}))
	errs := &ErrorCollection{}
	value, ok := foo.ReadValue(reader, errs)
	assert.True(t, ok)
	rec := value.Record()
	assert.Equal(t, int64(0x1122), rec.GetFieldValue("a", errs).AsSigned())
	// little-endian int32: bytes 33 44 55 66 => 0x66554433
	assert.Equal(t, int64(0x66554433), rec.GetFieldValue("b", errs).AsSigned())
}
