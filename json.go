package binreader

import (
	"strconv"
	"strings"
)

// JSONOptions controls the emitter's output mode.
type JSONOptions struct {
	Pretty bool
	Indent int
}

// DefaultJSONOptions is pretty off, indent width 2.
var DefaultJSONOptions = JSONOptions{Pretty: false, Indent: 2}

// DumpJSON renders v as a JSON text, materializing any record fields
// it hasn't yet read (diagnostics from doing so are appended to
// errors).
func DumpJSON(v Value, opts JSONOptions, errors *ErrorCollection) string {
	var b strings.Builder
	dumpJSONValue(&b, v, opts, 0, errors)
	if opts.Pretty {
		b.WriteByte('\n')
	}
	return b.String()
}

func dumpJSONValue(b *strings.Builder, v Value, opts JSONOptions, indent int, errors *ErrorCollection) {
	switch {
	case v.IsNull():
		b.WriteString("null")
	case v.IsString():
		writeJSONString(b, v.Str())
	case v.IsRecord():
		dumpJSONRecord(b, v.Record(), opts, indent, errors)
	default:
		n := v.Number()
		switch {
		case n.IsDouble():
			b.WriteString(strconv.FormatFloat(n.AsDouble(), 'g', -1, 64))
		case n.IsNegative():
			b.WriteString(strconv.FormatInt(n.AsSigned(), 10))
		default:
			b.WriteString(strconv.FormatUint(n.AsUnsigned(), 10))
		}
	}
}

func dumpJSONRecord(b *strings.Builder, rec *RecordHandle, opts JSONOptions, indent int, errors *ErrorCollection) {
	b.WriteByte('{')
	names := rec.FieldNames()
	childIndent := indent + opts.Indent
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		if opts.Pretty {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", childIndent))
		}
		writeJSONString(b, name)
		b.WriteByte(':')
		if opts.Pretty {
			b.WriteByte(' ')
		}
		dumpJSONValue(b, rec.GetFieldValue(name, errors), opts, childIndent, errors)
	}
	if len(names) > 0 && opts.Pretty {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent))
	}
	b.WriteByte('}')
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
