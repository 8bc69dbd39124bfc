package binreader

import "strings"

// This file implements the abstract definition-file frontend: scope
// tracking and shadowing rules, and option gathering/application. The
// concrete syntax that produces this AST lives in yamldef.go.

// OptionTerm is either a bare value ("little") or an explicit
// (name, value) pair ("order: little").
type OptionTerm struct {
	Name  string
	Value string
	Debug DebugInfo
}

// CompleteType is a type alias reference plus its option terms.
type CompleteType struct {
	Alias   string
	Options []OptionTerm
	Debug   DebugInfo
}

// DataField is a single named member declaration within a type
// definition.
type DataField struct {
	Name  string
	Type  CompleteType
	Debug DebugInfo
}

// TypeDef is one top-level type definition: a name plus its member
// declarations.
type TypeDef struct {
	Name    string
	Members []DataField
	Debug   DebugInfo
}

// builtinTypes returns the bottom scope frame: the ten built-in
// integer primitives plus the string primitive.
func builtinTypes() map[string]TypeInfo {
	debug := DebugInfo{FilePath: "<builtin>"}
	mk := func(name string, bits uint64, sign Signedness) TypeInfo {
		return NewIntegerType(debug, name, SizeFromBits(bits), sign, ByteOrderUnset)
	}
	return map[string]TypeInfo{
		"byte":   mk("byte", 8, SignednessUnsigned),
		"sbyte":  mk("sbyte", 8, SignednessSigned),
		"int8":   mk("int8", 8, SignednessSigned),
		"uint8":  mk("uint8", 8, SignednessUnsigned),
		"int16":  mk("int16", 16, SignednessSigned),
		"uint16": mk("uint16", 16, SignednessUnsigned),
		"int32":  mk("int32", 32, SignednessSigned),
		"uint32": mk("uint32", 32, SignednessUnsigned),
		"int64":  mk("int64", 64, SignednessSigned),
		"uint64": mk("uint64", 64, SignednessUnsigned),

		// "string" is the supplemented primitive from SPEC_FULL.md §7:
		// bare it reads a NUL-terminated run capped at 1024 bytes
		// (utf8); "length"/"terminator"/"encoding" option terms refine
		// it per use.
		"string": NewTerminatedStringType(debug, "string", 0, 0, "utf8"),
	}
}

// enumDelegatePrefix marks an alias like "enum:uint8" as the
// supplemented enumeration refinement (SPEC_FULL.md §7): a field
// reading through the named delegate integer type, then mapping the
// result through "choice" option terms (e.g. "0=RED").
const enumDelegatePrefix = "enum:"

// DefinitionParser walks a list of TypeDef into a map of named
// RecordType descriptors, accumulating diagnostics in an
// ErrorCollection bound to a source path.
type DefinitionParser struct {
	path     string
	builtins map[string]TypeInfo
	types    map[string]TypeInfo
	errors   *ErrorCollection
}

// NewDefinitionParser builds a parser for diagnostics attributed to
// path.
func NewDefinitionParser(path string) *DefinitionParser {
	return &DefinitionParser{
		path:     path,
		builtins: builtinTypes(),
		types:    map[string]TypeInfo{},
		errors:   &ErrorCollection{},
	}
}

// Errors returns the accumulated diagnostics.
func (p *DefinitionParser) Errors() *ErrorCollection { return p.errors }

// GetType resolves a name against the current file scope, then the
// built-in bottom frame.
func (p *DefinitionParser) GetType(name string) TypeInfo {
	if t, ok := p.types[name]; ok {
		return t
	}
	if t, ok := p.builtins[name]; ok {
		return t
	}
	return nil
}

func (p *DefinitionParser) addErr(debug DebugInfo, kind ErrorKind, level ErrorLevel, args ...string) {
	p.errors.Add(NewErrorInfo(debug, kind, level, 0, args...))
}

// ParseFile walks every top-level definition, registering each
// successfully parsed type under its own name, and returns the
// resulting map plus whether the parse succeeded overall (no
// error-level diagnostics).
func (p *DefinitionParser) ParseFile(defs []TypeDef) (map[string]TypeInfo, bool) {
	if len(defs) == 0 {
		p.addErr(DebugInfo{FilePath: p.path}, ErrorNoTypes, LevelError)
		return p.types, false
	}

	for _, td := range defs {
		if existing := p.GetType(td.Name); existing != nil {
			p.addErr(td.Debug, ErrorShadowingType, LevelError, td.Name)
		}

		rt, ok := p.parseTypeDefinition(td)
		if !ok {
			continue
		}
		if _, present := p.types[td.Name]; !present {
			p.types[td.Name] = rt
		}
	}

	return p.types, !p.errors.HasErrors()
}

// parseTypeDefinition builds a single RecordType, applying the
// member-shadowing rules: a duplicate field name within the type is a
// ShadowingMember error (the whole type is then discarded, with no
// type descriptor emitted for it); a field name that coincides with a
// visible type alias, or with the type's own name, is a ShadowingType
// warning.
func (p *DefinitionParser) parseTypeDefinition(td TypeDef) (*RecordType, bool) {
	seen := map[string]bool{}
	fields := make([]FieldDecl, 0, len(td.Members))
	ok := true

	for _, df := range td.Members {
		if seen[df.Name] {
			p.addErr(df.Debug, ErrorShadowingMember, LevelError, df.Name)
			ok = false
			continue
		}
		seen[df.Name] = true

		if p.GetType(df.Name) != nil || df.Name == td.Name {
			p.addErr(df.Debug, ErrorShadowingType, LevelWarning, df.Name)
		}

		typ, fieldOk := p.resolveCompleteType(df.Type)
		if !fieldOk {
			ok = false
			continue
		}
		fields = append(fields, FieldDecl{Name: df.Name, Type: typ})
	}

	if !ok {
		return nil, false
	}
	return NewRecordType(td.Debug, td.Name, fields), true
}

// resolveCompleteType looks up the base type by alias, applies any
// option terms, and instantiates the refined type used by the field.
func (p *DefinitionParser) resolveCompleteType(ct CompleteType) (TypeInfo, bool) {
	base := p.GetType(ct.Alias)
	if base == nil && strings.HasPrefix(ct.Alias, enumDelegatePrefix) {
		delegateName := strings.TrimPrefix(ct.Alias, enumDelegatePrefix)
		delegate := p.GetType(delegateName)
		if delegate == nil {
			p.addErr(ct.Debug, ErrorUnknownType, LevelError, delegateName)
			return nil, false
		}
		base = NewEnumType(ct.Debug, ct.Alias, delegate, map[int64]string{})
	}
	if base == nil {
		p.addErr(ct.Debug, ErrorUnknownType, LevelError, ct.Alias)
		return nil, false
	}

	options, ok := p.applyOptions(base, ct.Options)
	if !ok {
		return nil, false
	}
	return base.Instantiate(ct.Debug, options), true
}

type gatheredOption struct {
	debug   DebugInfo
	optType OptionType
	value   string
}

// applyOptions gathers each option term (rejecting duplicate named
// options up front), then resolves and validates every gathered
// option against the type's allowed set.
func (p *DefinitionParser) applyOptions(base TypeInfo, terms []OptionTerm) (Options, bool) {
	allowed := base.OptionTypes()
	ok := true

	seenNamed := map[OptionType]bool{}
	gathered := make([]gatheredOption, 0, len(terms))
	for _, term := range terms {
		optType := OptionUnknown
		if term.Name != "" {
			optType = GetOptionType(term.Name)
			if optType == OptionUnknown {
				p.addErr(term.Debug, ErrorUnknownOptionType, LevelError, term.Name)
				ok = false
				continue
			}
			if seenNamed[optType] {
				p.addErr(term.Debug, ErrorDuplicateOption, LevelError, optType.String())
				ok = false
				continue
			}
			seenNamed[optType] = true
		}
		gathered = append(gathered, gatheredOption{debug: term.Debug, optType: optType, value: term.Value})
	}

	var options Options
	for _, g := range gathered {
		var allowedForCall map[OptionType]bool
		if g.optType == OptionUnknown {
			allowedForCall = allowed
		} else {
			allowedForCall = map[OptionType]bool{g.optType: true}
		}

		resultType, result, setFn := ParseOption(allowedForCall, g.value)
		switch result {
		case ParseSuccess:
			if !allowed[resultType] {
				p.addErr(g.debug, ErrorOptionInvalidForType, LevelError, resultType.String())
				ok = false
				continue
			}
			setFn(&options)
		case ParseInvalidValueType:
			if g.optType == OptionUnknown {
				p.addErr(g.debug, ErrorOptionMustBeString, LevelError)
			} else {
				p.addErr(g.debug, ErrorOptionMustBeStringTyped, LevelError, g.optType.String())
			}
			ok = false
		case ParseUnknownString:
			if g.optType == OptionUnknown {
				p.addErr(g.debug, ErrorUnknownOptionValue, LevelError, g.value)
			} else {
				p.addErr(g.debug, ErrorUnknownOptionValueTyped, LevelError, g.value, g.optType.String())
			}
			ok = false
		case ParseAmbiguous:
			p.addErr(g.debug, ErrorAmbiguousOption, LevelError, g.value)
			ok = false
		}
	}

	return options, ok
}
