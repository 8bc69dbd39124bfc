package binreader

import (
	"strconv"
	"strings"
)

// Signedness selects how an integer's top bit is interpreted.
type Signedness int

const (
	SignednessUnset Signedness = iota
	SignednessSigned
	SignednessUnsigned
)

func (s Signedness) String() string {
	switch s {
	case SignednessSigned:
		return "signed"
	case SignednessUnsigned:
		return "unsigned"
	default:
		return "<unset>"
	}
}

// ByteOrder selects the endianness used to assemble a multi-byte
// integer.
type ByteOrder int

const (
	ByteOrderUnset ByteOrder = iota
	ByteOrderBigEndian
	ByteOrderLittleEndian
)

func (b ByteOrder) String() string {
	switch b {
	case ByteOrderBigEndian:
		return "big"
	case ByteOrderLittleEndian:
		return "little"
	default:
		return "<unset>"
	}
}

// OptionType identifies a recognized option slot on a type
// declaration.
type OptionType int

const (
	OptionUnknown OptionType = iota
	OptionSignedness
	OptionByteOrder
	// OptionEncoding, OptionStringLength, OptionStringTerminator and
	// OptionEnumChoice extend the descriptor table for string and
	// enum refinement. Encoding still fits the closed name-table
	// model; length, terminator and choice carry an arbitrary payload
	// rather than picking from a small fixed vocabulary, so
	// ParseOption resolves them by shape instead of by table lookup
	// (see the dynamic dispatch below).
	OptionEncoding
	OptionStringLength
	OptionStringTerminator
	OptionEnumChoice
)

func (t OptionType) String() string {
	switch t {
	case OptionSignedness:
		return "signedness"
	case OptionByteOrder:
		return "byte_order"
	case OptionEncoding:
		return "encoding"
	case OptionStringLength:
		return "length"
	case OptionStringTerminator:
		return "terminator"
	case OptionEnumChoice:
		return "choice"
	default:
		return "<unknown option>"
	}
}

// GetOptionType maps an option name written in a definition file to
// its OptionType. "order" is accepted as a synonym of "byte_order".
func GetOptionType(name string) OptionType {
	switch name {
	case "signedness":
		return OptionSignedness
	case "byte_order", "order":
		return OptionByteOrder
	case "encoding":
		return OptionEncoding
	case "length":
		return OptionStringLength
	case "terminator":
		return OptionStringTerminator
	case "choice":
		return OptionEnumChoice
	default:
		return OptionUnknown
	}
}

// optionValueEntry pairs a literal spelling with the enum value it
// selects, for a single OptionType's descriptor table.
type optionValueEntry struct {
	name string
	set  func(*Options)
}

type optionTypeInfo struct {
	kind   OptionType
	values []optionValueEntry
}

var optionData = []optionTypeInfo{
	{
		kind: OptionSignedness,
		values: []optionValueEntry{
			{"signed", func(o *Options) { o.Signedness = SignednessSigned }},
			{"unsigned", func(o *Options) { o.Signedness = SignednessUnsigned }},
		},
	},
	{
		kind: OptionByteOrder,
		values: []optionValueEntry{
			{"big", func(o *Options) { o.ByteOrder = ByteOrderBigEndian }},
			{"network", func(o *Options) { o.ByteOrder = ByteOrderBigEndian }},
			{"little", func(o *Options) { o.ByteOrder = ByteOrderLittleEndian }},
		},
	},
	{
		kind: OptionEncoding,
		values: []optionValueEntry{
			{"utf8", func(o *Options) { o.Encoding = "utf8" }},
			{"utf16le", func(o *Options) { o.Encoding = "utf16le" }},
		},
	},
}

// dynamicOptionTypes carries option types whose literal is an
// arbitrary payload (a number, or a "key=value" pair) rather than a
// name picked from a small closed vocabulary. These are resolved by
// shape, not by descriptor-table lookup, and only ever apply when the
// allowed set passed to ParseOption is that one option type: the term
// named it explicitly, or the type allows nothing else (as EnumType
// allows only "choice").
var dynamicOptionTypes = map[OptionType]func(string) (func(*Options), bool){
	OptionStringLength: func(literal string) (func(*Options), bool) {
		n, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return nil, false
		}
		return func(o *Options) { o.HasLength = true; o.Length = n }, true
	},
	OptionStringTerminator: func(literal string) (func(*Options), bool) {
		n, err := strconv.ParseUint(literal, 0, 8)
		if err != nil {
			return nil, false
		}
		return func(o *Options) { o.HasTerminator = true; o.Terminator = byte(n) }, true
	},
	// A single "choice" term carries the whole table as
	// semicolon-separated "N=label" pairs, e.g. "0=OFF;1=ON", so that
	// declaring several choices does not run into the once-per-use
	// duplicate-option rule.
	OptionEnumChoice: func(literal string) (func(*Options), bool) {
		parts := strings.Split(literal, ";")
		parsed := make(map[int64]string, len(parts))
		for _, part := range parts {
			idx := strings.IndexByte(part, '=')
			if idx < 0 {
				return nil, false
			}
			n, err := strconv.ParseInt(part[:idx], 0, 64)
			if err != nil {
				return nil, false
			}
			parsed[n] = part[idx+1:]
		}
		return func(o *Options) {
			if o.Choices == nil {
				o.Choices = map[int64]string{}
			}
			for k, v := range parsed {
				o.Choices[k] = v
			}
		}, true
	},
}

// ParseResult classifies the outcome of ParseOption.
type ParseResult int

const (
	ParseSuccess ParseResult = iota
	ParseAmbiguous
	ParseUnknownString
	ParseInvalidValueType
)

// Options holds the resolved knobs for a refined type. Signedness and
// ByteOrder serve IntegerType and start Unset so a type can fall back
// to DefaultOptions or an enclosing scope's options. Encoding,
// HasLength/Length, HasTerminator/Terminator and Choices serve string
// and enum refinement and start zero-valued, meaning "let the base
// type keep its own default".
type Options struct {
	Signedness Signedness
	ByteOrder  ByteOrder

	Encoding string

	HasLength bool
	Length    uint64

	HasTerminator bool
	Terminator    byte

	Choices map[int64]string
}

// DefaultOptions is the default: big-endian, unsigned.
var DefaultOptions = Options{
	Signedness: SignednessUnsigned,
	ByteOrder:  ByteOrderBigEndian,
}

// ParseOption resolves a bare string literal (as it appears in a
// definition file, e.g. "little" or "signed") against the descriptor
// tables for the given allowed OptionTypes. An empty allowed set
// matches against every known OptionType. If the literal spells a
// name recognized under more than one OptionType, the result is
// Ambiguous; if it spells no known name, UnknownString.
func ParseOption(allowed map[OptionType]bool, literal string) (OptionType, ParseResult, func(*Options)) {
	if len(allowed) == 1 {
		for kind := range allowed {
			if parse, isDynamic := dynamicOptionTypes[kind]; isDynamic {
				setFn, ok := parse(literal)
				if !ok {
					return kind, ParseInvalidValueType, nil
				}
				return kind, ParseSuccess, setFn
			}
		}
	}

	found := false
	var resultType OptionType
	var resultSet func(*Options)

	for _, info := range optionData {
		if len(allowed) > 0 && !allowed[info.kind] {
			continue
		}
		for _, v := range info.values {
			if v.name != literal {
				continue
			}
			if found {
				return 0, ParseAmbiguous, nil
			}
			resultType = info.kind
			resultSet = v.set
			found = true
			break
		}
	}

	if found {
		return resultType, ParseSuccess, resultSet
	}
	return 0, ParseUnknownString, nil
}

// GetOption resolves the effective value of an option, falling back
// to defaults when this Options instance leaves it Unset.
func (o Options) GetOption(t OptionType, defaults Options) interface{} {
	switch t {
	case OptionSignedness:
		if o.Signedness == SignednessUnset {
			return defaults.Signedness
		}
		return o.Signedness
	case OptionByteOrder:
		if o.ByteOrder == ByteOrderUnset {
			return defaults.ByteOrder
		}
		return o.ByteOrder
	default:
		return nil
	}
}

// EffectiveSignedness resolves signedness against defaults.
func (o Options) EffectiveSignedness(defaults Options) Signedness {
	if o.Signedness == SignednessUnset {
		return defaults.Signedness
	}
	return o.Signedness
}

// EffectiveByteOrder resolves byte order against defaults.
func (o Options) EffectiveByteOrder(defaults Options) ByteOrder {
	if o.ByteOrder == ByteOrderUnset {
		return defaults.ByteOrder
	}
	return o.ByteOrder
}
