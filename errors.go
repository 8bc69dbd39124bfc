package binreader

import (
	"strconv"
	"strings"
)

// ErrorKind identifies the category of a diagnostic.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorCannotOpen
	ErrorIoError

	ErrorShadowingType
	ErrorShadowingMember
	ErrorUnknownType
	ErrorNoTypes

	ErrorOptionMustBeString
	ErrorOptionMustBeStringTyped
	ErrorUnknownOptionValue
	ErrorUnknownOptionValueTyped
	ErrorAmbiguousOption
	ErrorDuplicateOption
	ErrorOptionInvalidForType
	ErrorUnknownOptionType

	ErrorUnexpectedEndOfStream
	ErrorLittleEndianAlign

	ErrorFieldsMustBeStatic
)

// ErrorLevel classifies the severity of a diagnostic.
type ErrorLevel int

const (
	LevelError ErrorLevel = iota
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "error"
	}
}

// DebugInfo locates a diagnostic within a source definition file. A
// zero value means "no location known"; Line/Column may be omitted
// independently for a progressively more specific rendering.
type DebugInfo struct {
	FilePath string
	Line     int
	Column   int
}

type messageInfo struct {
	format string
	nargs  int
}

var messageTable = map[ErrorKind]messageInfo{
	ErrorUnknown:      {"Unknown error", 0},
	ErrorCannotOpen:   {"Cannot open file '%s'", 1},
	ErrorIoError:      {"Unknown IO error: errno=%s", 1},

	ErrorShadowingType:   {"Shadowing existing type '%s'", 1},
	ErrorShadowingMember: {"Shadowing existing member '%s'", 1},
	ErrorUnknownType:     {"Unknown type '%s'", 1},
	ErrorNoTypes:         {"No types in definition file", 0},

	ErrorOptionMustBeString:      {"Option values must be a string", 0},
	ErrorOptionMustBeStringTyped: {"Option values must be a string for option '%s'", 1},
	ErrorUnknownOptionValue:      {"Unknown option value '%s'", 1},
	ErrorUnknownOptionValueTyped: {"Unknown option value '%s' for option '%s'", 2},
	ErrorAmbiguousOption:         {"Ambiguous option value '%s'", 1},
	ErrorDuplicateOption:         {"Option '%s' set multiple times", 1},
	ErrorOptionInvalidForType:    {"Option '%s' is not valid for this type", 1},
	ErrorUnknownOptionType:       {"Unknown option '%s'", 1},

	ErrorUnexpectedEndOfStream: {"Unexpected end of stream", 0},
	ErrorLittleEndianAlign:     {"Little endian numbers must be byte aligned", 0},

	ErrorFieldsMustBeStatic: {"Fields must have a static size", 0},
}

// DefaultErrorMessage renders the message template for kind,
// substituting args positionally for each "%s" in the template.
// Missing arguments render as empty strings; extra arguments are
// ignored.
func DefaultErrorMessage(kind ErrorKind, args ...string) string {
	info, ok := messageTable[kind]
	if !ok {
		info = messageTable[ErrorUnknown]
	}
	var b strings.Builder
	argIdx := 0
	format := info.format
	for i := 0; i < len(format); i++ {
		if format[i] == '%' && i+1 < len(format) && format[i+1] == 's' {
			if argIdx < len(args) {
				b.WriteString(args[argIdx])
			}
			argIdx++
			i++
			continue
		}
		b.WriteByte(format[i])
	}
	return b.String()
}

// ErrorInfo is a single structured diagnostic.
type ErrorInfo struct {
	Debug   DebugInfo
	Kind    ErrorKind
	Level   ErrorLevel
	Offset  uint64
	Message string
}

// NewErrorInfo builds an ErrorInfo with a default, kind-derived
// message.
func NewErrorInfo(debug DebugInfo, kind ErrorKind, level ErrorLevel, offset uint64, args ...string) ErrorInfo {
	return ErrorInfo{
		Debug:   debug,
		Kind:    kind,
		Level:   level,
		Offset:  offset,
		Message: DefaultErrorMessage(kind, args...),
	}
}

// String renders the diagnostic with a location prefix that grows
// more specific as FilePath/Line/Column become available.
func (e ErrorInfo) String() string {
	switch {
	case e.Debug.FilePath == "":
		return e.Level.String() + ": " + e.Message
	case e.Debug.Line == 0:
		return e.Debug.FilePath + ": " + e.Level.String() + ": " + e.Message
	case e.Debug.Column == 0:
		return e.Debug.FilePath + ":" + strconv.Itoa(e.Debug.Line) + ": " + e.Level.String() + ": " + e.Message
	default:
		return e.Debug.FilePath + ":" + strconv.Itoa(e.Debug.Line) + ":" + strconv.Itoa(e.Debug.Column) + ": " + e.Level.String() + ": " + e.Message
	}
}

// ErrorCollection aggregates diagnostics produced while parsing a
// definition or reading a record, tracking whether any Error-level
// entry was seen.
type ErrorCollection struct {
	errors    []ErrorInfo
	hasErrors bool
}

// Add appends a diagnostic and updates HasErrors.
func (c *ErrorCollection) Add(e ErrorInfo) {
	c.errors = append(c.errors, e)
	if e.Level == LevelError {
		c.hasErrors = true
	}
}

// HasErrors reports whether any Error-level diagnostic was added.
func (c *ErrorCollection) HasErrors() bool {
	return c.hasErrors
}

// All returns every diagnostic added, in order.
func (c *ErrorCollection) All() []ErrorInfo {
	return c.errors
}

// String renders every diagnostic, one per line.
func (c *ErrorCollection) String() string {
	var b strings.Builder
	for i, e := range c.errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.String())
	}
	return b.String()
}
