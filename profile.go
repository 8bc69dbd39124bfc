package binreader

import "fmt"

// Profile is the top-level registry of named record types produced
// by parsing a definition file. Everything it holds is a fully
// resolved, statically-sized (or intentionally not statically sized,
// per StringType) TypeInfo.
type Profile struct {
	types map[string]TypeInfo
}

// NewProfile builds an empty profile.
func NewProfile() *Profile {
	return &Profile{types: map[string]TypeInfo{}}
}

// LoadDefinitions parses YAML definition source and merges every
// resulting type into the profile. It returns the accumulated
// diagnostics and whether the parse succeeded.
func (p *Profile) LoadDefinitions(path string, data []byte) (*ErrorCollection, bool) {
	defs, err := ParseYAMLDefinitions(data, path)
	if err != nil {
		errors := &ErrorCollection{}
		errors.Add(NewErrorInfo(DebugInfo{FilePath: path}, ErrorUnknown, LevelError, 0, err.Error()))
		return errors, false
	}

	parser := NewDefinitionParser(path)
	types, ok := parser.ParseFile(defs)
	for name, t := range types {
		p.types[name] = t
	}
	return parser.Errors(), ok
}

// GetType looks up a named type in the profile.
func (p *Profile) GetType(name string) (TypeInfo, bool) {
	t, ok := p.types[name]
	return t, ok
}

// Parse anchors reader at its current position, resolves typeName
// against the profile, and reads a value of that type.
func (p *Profile) Parse(typeName string, reader *BufferedReader, errors *ErrorCollection) (Value, bool) {
	t, ok := p.types[typeName]
	if !ok {
		errors.Add(NewErrorInfo(DebugInfo{}, ErrorUnknownType, LevelError, 0, typeName))
		return Value{}, false
	}
	return t.ReadValue(reader, errors)
}

// RootTypeName picks a usable default root type when none is given
// on the command line: an arbitrary record type registered in the
// profile. Returns an error if the profile has no record types at
// all.
func (p *Profile) RootTypeName() (string, error) {
	for name, t := range p.types {
		if _, ok := t.(*RecordType); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("no record types defined in profile")
}
