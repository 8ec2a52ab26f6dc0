package field

import "strings"

// Field is a single header field. The name is stored as given, so any
// normalization must happen before the field is created.
type Field struct {
	name string
	body string
}

// New constructs a new field with the given name and body.
func New(name, body string) *Field {
	return &Field{name, body}
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// SetName replaces the field name.
func (f *Field) SetName(name string) {
	f.name = name
}

// Body returns the field body.
func (f *Field) Body() string {
	return f.body
}

// SetBody replaces the field body.
func (f *Field) SetBody(body string) {
	f.body = body
}

// String returns the unfolded field as "Name: body".
func (f *Field) String() string {
	var b strings.Builder
	b.Grow(len(f.name) + len(f.body) + 2)
	b.WriteString(f.name)
	b.WriteString(": ")
	b.WriteString(f.body)
	return b.String()
}

// Bytes returns the unfolded field as "Name: body".
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}

// Clone returns a copy of the field.
func (f *Field) Clone() *Field {
	return &Field{f.name, f.body}
}
