package binreader

import "github.com/davecgh/go-spew/spew"

// Debug dumps arg's full structure to stderr for ad hoc inspection.
func Debug(arg interface{}) {
	spew.Dump(arg)
}

// DumpJSONIndent renders v as pretty-printed JSON, defaulting to a
// 2-space indent.
func DumpJSONIndent(v Value, errors *ErrorCollection) string {
	return DumpJSON(v, JSONOptions{Pretty: true, Indent: 2}, errors)
}
