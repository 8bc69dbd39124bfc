package binreader

import (
	"fmt"

	"github.com/Velocidex/yaml"
)

// This file is the concrete syntax for definition files: an
// S-expression-like array grammar expressed in YAML.
//
// A definition file is a top-level list of type definitions:
//
//	- [foo, [
//	    [a, int16],
//	    [b, int32, [{order: little}]],
//	    [c, string, [{length: "8"}]],
//	    [state, "enum:uint8", [{choice: "0=OFF;1=ON"}]],
//	  ]]
//
// A field is [name, type] or [name, type, options]. A type may be a
// bare alias string ("int16") or [alias, options]. Each option term
// is either a bare string ("little") or a single-key map
// ({order: little}). The "string" and "enum:<delegate>" aliases are
// the StringType/EnumType supplement (SPEC_FULL.md §7): a bare
// "string" reads a NUL-terminated run, refined by "length",
// "terminator" and "encoding" option terms; "enum:<delegate>" reads
// through the named delegate integer type and maps the result through
// a "choice" term's semicolon-separated "N=label" pairs.

// ParseYAMLDefinitions parses raw YAML bytes into the abstract
// TypeDef list consumed by DefinitionParser.ParseFile.
func ParseYAMLDefinitions(data []byte, path string) ([]TypeDef, error) {
	var raw []interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	debug := DebugInfo{FilePath: path}
	defs := make([]TypeDef, 0, len(raw))
	for i, item := range raw {
		td, err := parseTypeDefNode(item, debug)
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", i, err)
		}
		defs = append(defs, td)
	}
	return defs, nil
}

func parseTypeDefNode(node interface{}, debug DebugInfo) (TypeDef, error) {
	items, ok := node.([]interface{})
	if !ok || len(items) != 2 {
		return TypeDef{}, fmt.Errorf("type definition must be [name, fields]")
	}
	name, ok := items[0].(string)
	if !ok {
		return TypeDef{}, fmt.Errorf("type name must be a string")
	}
	fieldNodes, ok := items[1].([]interface{})
	if !ok {
		return TypeDef{}, fmt.Errorf("%s: fields must be a list", name)
	}

	members := make([]DataField, 0, len(fieldNodes))
	for _, fn := range fieldNodes {
		df, err := parseDataFieldNode(fn, debug)
		if err != nil {
			return TypeDef{}, fmt.Errorf("%s: %w", name, err)
		}
		members = append(members, df)
	}
	return TypeDef{Name: name, Members: members, Debug: debug}, nil
}

func parseDataFieldNode(node interface{}, debug DebugInfo) (DataField, error) {
	items, ok := node.([]interface{})
	if !ok || (len(items) != 2 && len(items) != 3) {
		return DataField{}, fmt.Errorf("field must be [name, type] or [name, type, options]")
	}
	name, ok := items[0].(string)
	if !ok {
		return DataField{}, fmt.Errorf("field name must be a string")
	}

	ct, err := parseCompleteTypeNode(items[1], debug)
	if err != nil {
		return DataField{}, fmt.Errorf("field %s: %w", name, err)
	}
	if len(items) == 3 {
		terms, err := parseOptionTermsNode(items[2], debug)
		if err != nil {
			return DataField{}, fmt.Errorf("field %s: %w", name, err)
		}
		ct.Options = append(ct.Options, terms...)
	}
	return DataField{Name: name, Type: ct, Debug: debug}, nil
}

func parseCompleteTypeNode(node interface{}, debug DebugInfo) (CompleteType, error) {
	switch v := node.(type) {
	case string:
		return CompleteType{Alias: v, Debug: debug}, nil
	case []interface{}:
		if len(v) != 2 {
			return CompleteType{}, fmt.Errorf("inline type must be [alias, options]")
		}
		alias, ok := v[0].(string)
		if !ok {
			return CompleteType{}, fmt.Errorf("type alias must be a string")
		}
		terms, err := parseOptionTermsNode(v[1], debug)
		if err != nil {
			return CompleteType{}, err
		}
		return CompleteType{Alias: alias, Options: terms, Debug: debug}, nil
	default:
		return CompleteType{}, fmt.Errorf("type must be a string or [alias, options]")
	}
}

func parseOptionTermsNode(node interface{}, debug DebugInfo) ([]OptionTerm, error) {
	items, ok := node.([]interface{})
	if !ok {
		return nil, fmt.Errorf("options must be a list")
	}
	terms := make([]OptionTerm, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			terms = append(terms, OptionTerm{Value: v, Debug: debug})
		case map[interface{}]interface{}:
			if len(v) != 1 {
				return nil, fmt.Errorf("named option must have exactly one key")
			}
			for k, val := range v {
				name, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("option name must be a string")
				}
				valStr, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("option %s value must be a string", name)
				}
				terms = append(terms, OptionTerm{Name: name, Value: valStr, Debug: debug})
			}
		case map[string]interface{}:
			if len(v) != 1 {
				return nil, fmt.Errorf("named option must have exactly one key")
			}
			for name, val := range v {
				valStr, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("option %s value must be a string", name)
				}
				terms = append(terms, OptionTerm{Name: name, Value: valStr, Debug: debug})
			}
		default:
			return nil, fmt.Errorf("option term must be a string or single-key map")
		}
	}
	return terms, nil
}
