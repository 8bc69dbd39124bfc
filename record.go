package binreader

import "reflect"

// recordField is one materialized slot of a RecordHandle: its
// declaration, its absolute bit-precise position in the reader, and
// an optionally cached Value.
type recordField struct {
	Name    string
	Type    TypeInfo
	Offset  Size
	hasCache bool
	value   Value
}

// RecordHandle is a live view over a buffered reader anchored at a
// start position, holding a RecordType and its lazily materialized
// fields.
type RecordHandle struct {
	reader *BufferedReader
	typ    *RecordType
	start  Size
	fields []recordField
	parent *RecordHandle

	// testMode records are constructed directly from (name, Value)
	// pairs with no reader.
	testMode bool
}

// FieldValue pairs a name with a Value, for building test-mode
// records directly.
type FieldValue struct {
	Name  string
	Value Value
}

// NewTestRecordHandle builds a test-mode record: every field is
// already resolved to a concrete Value and there is no backing
// reader.
func NewTestRecordHandle(pairs ...FieldValue) *RecordHandle {
	h := &RecordHandle{testMode: true}
	for _, p := range pairs {
		h.fields = append(h.fields, recordField{
			Name:     p.Name,
			hasCache: true,
			value:    p.Value,
		})
	}
	return h
}

// Type returns the record's type descriptor. Returns nil for a
// test-mode record.
func (h *RecordHandle) Type() *RecordType { return h.typ }

// Start returns the record's absolute start position.
func (h *RecordHandle) Start() Size { return h.start }

// End returns the position just past the record, or the start
// position itself if the type is not statically sized (which cannot
// happen for a successfully constructed handle, since Reparse
// requires it).
func (h *RecordHandle) End() Size {
	if h.typ == nil {
		return h.start
	}
	size, ok := h.typ.StaticSize()
	if !ok {
		return h.start
	}
	return h.start.Add(size)
}

// Parent returns the enclosing record handle, or nil at the root.
func (h *RecordHandle) Parent() *RecordHandle { return h.parent }

// Reparse rebuilds the field table from the record type's
// declarations: it requires the type to be statically sized, walks
// its statements assigning consecutive offsets, and drops any
// previously cached values.
func (h *RecordHandle) Reparse(errors *ErrorCollection) bool {
	if _, ok := h.typ.StaticSize(); !ok {
		errors.Add(NewErrorInfo(h.typ.Debug(), ErrorFieldsMustBeStatic, LevelError, h.start.ByteCount()))
		return false
	}

	fields := make([]recordField, 0, len(h.typ.fields))
	offset := h.start
	for _, decl := range h.typ.fields {
		fields = append(fields, recordField{
			Name:   decl.Name,
			Type:   decl.Type,
			Offset: offset,
		})
		size, ok := decl.Type.StaticSize()
		if !ok {
			errors.Add(NewErrorInfo(h.typ.Debug(), ErrorFieldsMustBeStatic, LevelError, offset.ByteCount()))
			return false
		}
		offset = offset.Add(size)
	}
	h.fields = fields
	return true
}

// EnsureField materializes the value at declaration index i if it is
// not already cached.
func (h *RecordHandle) EnsureField(i int, errors *ErrorCollection) bool {
	if i < 0 || i >= len(h.fields) {
		return false
	}
	f := &h.fields[i]
	if f.hasCache {
		return true
	}
	if h.testMode {
		return true
	}
	if err := h.reader.Seek(f.Offset); err != nil {
		errors.Add(NewErrorInfo(h.typ.Debug(), ErrorIoError, LevelError, f.Offset.ByteCount(), err.Error()))
		return false
	}
	value, ok := f.Type.ReadValue(h.reader, errors)
	if !ok {
		return false
	}
	if rec := value.Record(); rec != nil {
		rec.parent = h
	}
	f.value = value
	f.hasCache = true
	return true
}

// indexOf returns the declaration-order index of name, or -1.
func (h *RecordHandle) indexOf(name string) int {
	for i, f := range h.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// GetFieldValue returns the value of the named field, materializing
// it on first access. Returns NullValue for an unknown name.
func (h *RecordHandle) GetFieldValue(name string, errors *ErrorCollection) Value {
	i := h.indexOf(name)
	if i < 0 {
		return NullValue()
	}
	if !h.EnsureField(i, errors) {
		return NullValue()
	}
	return h.fields[i].value
}

// ClearCache drops every field's cached value.
func (h *RecordHandle) ClearCache() {
	for i := range h.fields {
		h.fields[i].hasCache = false
		h.fields[i].value = Value{}
	}
}

// FieldNames returns field names in declaration order, for hosts that
// need to iterate without first-class iterators.
func (h *RecordHandle) FieldNames() []string {
	names := make([]string, len(h.fields))
	for i, f := range h.fields {
		names[i] = f.Name
	}
	return names
}

// ptrOf returns a stable, comparable address for a RecordHandle, used
// only to break ties in Value's total order (records compare by
// identity, never structurally).
func ptrOf(h *RecordHandle) uintptr {
	if h == nil {
		return 0
	}
	return reflect.ValueOf(h).Pointer()
}
