package binreader

import "fmt"

// EnumType delegates the actual read to an inner integer type, then
// maps the resulting number through a static choice table, falling
// back to a hex literal for unmapped values.
type EnumType struct {
	debug   DebugInfo
	alias   string
	delegate TypeInfo
	choices map[int64]string
}

// NewEnumType builds an enum wrapping delegate (normally an
// IntegerType) with the given int64-to-name choice table.
func NewEnumType(debug DebugInfo, alias string, delegate TypeInfo, choices map[int64]string) *EnumType {
	return &EnumType{debug: debug, alias: alias, delegate: delegate, choices: choices}
}

func (t *EnumType) AliasName() string        { return t.alias }
func (t *EnumType) BaseName() string         { return "enum" }
func (t *EnumType) Debug() DebugInfo         { return t.debug }
func (t *EnumType) StaticSize() (Size, bool) { return t.delegate.StaticSize() }

// OptionTypes allows only "choice" terms (e.g. "0=RED"): the
// delegate's own signedness/byte order are fixed when the delegate
// alias is chosen, not re-negotiated per enum use.
func (t *EnumType) OptionTypes() map[OptionType]bool {
	return map[OptionType]bool{OptionEnumChoice: true}
}

// Instantiate merges any newly gathered choices over the base table,
// so a field use may add or override entries without repeating every
// choice already known to the delegate alias.
func (t *EnumType) Instantiate(debug DebugInfo, options Options) TypeInfo {
	merged := make(map[int64]string, len(t.choices)+len(options.Choices))
	for k, v := range t.choices {
		merged[k] = v
	}
	for k, v := range options.Choices {
		merged[k] = v
	}
	return &EnumType{debug: debug, alias: t.alias, delegate: t.delegate, choices: merged}
}

// ReadValue reads through the delegate type, then renders the result
// as the mapped choice name, or a hex literal if the value is not in
// the choice table.
func (t *EnumType) ReadValue(reader *BufferedReader, errors *ErrorCollection) (Value, bool) {
	value, ok := t.delegate.ReadValue(reader, errors)
	if !ok {
		return Value{}, false
	}
	key := value.AsSigned()
	if name, present := t.choices[key]; present {
		return StringValue(name), true
	}
	return StringValue(fmt.Sprintf("0x%x", value.AsUnsigned())), true
}
