package param

import (
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in the
	// Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-disposition header.
	Filename = "filename"

	// Format is the name of the format parameter of text/plain, which is
	// "flowed" for RFC 3676 text.
	Format = "format"
)

// Pair is a single parameter of a Value.
type Pair struct {
	Key   string
	Value string
}

// Value represents a parsed parameterized header field, such as is used in the
// Content-type and Content-disposition headers. A Value object is immutable:
// You cannot change it in place. However, a Modify() function is provided to
// perform transformation of a Value into a new Value.
type Value struct {
	v  string
	ps []Pair
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Set is a Modifier that sets a parameter with the given name on the Value. A
// parameter that is already present keeps its position.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.set(name, value)
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v := param.Parse("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, Set("boundary", "xyz"), Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

func (pv *Value) index(k string) int {
	for i, p := range pv.ps {
		if strings.EqualFold(p.Key, k) {
			return i
		}
	}
	return -1
}

func (pv *Value) set(k, v string) {
	if ix := pv.index(k); ix >= 0 {
		pv.ps[ix].Value = v
		return
	}
	pv.ps = append(pv.ps, Pair{k, v})
}

// Clone returns a copy of the Value.
func (pv *Value) Clone() *Value {
	ps := make([]Pair, len(pv.ps))
	copy(ps, pv.ps)
	return &Value{pv.v, ps}
}

// Value returns the primary value of the Value. This is the value before the
// first semi-colon.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-disposition,
// either "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Type is only intended for use with the Content-type header. It searches the
// MediaType() for a slash. If found, it will return the string before that
// slash, trimmed. If no slash is found, it returns an empty string.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return strings.TrimSpace(pv.v[:ix])
	}
	return ""
}

// Subtype is only intended for use with the Content-type header. It returns
// the string after the slash of MediaType() or an empty string.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return strings.TrimSpace(pv.v[ix+1:])
	}
	return ""
}

// Parameters returns a copy of the parameters in their stored order.
func (pv *Value) Parameters() []Pair {
	ps := make([]Pair, len(pv.ps))
	copy(ps, pv.ps)
	return ps
}

// Parameter returns the value of the parameter with the given name. The name
// is matched case-insensitively. The boolean is false if the parameter is not
// set.
func (pv *Value) Parameter(k string) (string, bool) {
	if ix := pv.index(k); ix >= 0 {
		return pv.ps[ix].Value, true
	}
	return "", false
}

// Filename returns the value of the "filename" parameter.
func (pv *Value) Filename() string {
	v, _ := pv.Parameter(Filename)
	return v
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	v, _ := pv.Parameter(Charset)
	return v
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	v, _ := pv.Parameter(Boundary)
	return v
}

// String returns the value rebuilt as "value; key=val; ...". The filename
// parameter is written with Continuation so that long and non-ASCII names
// survive. Every other parameter is written through Escape.
func (pv *Value) String() string {
	var b strings.Builder
	b.WriteString(pv.v)

	for _, p := range pv.ps {
		if strings.EqualFold(p.Key, Filename) {
			for _, cp := range Continuation(p.Key, p.Value, DefaultContinuationLength) {
				b.WriteString("; ")
				b.WriteString(cp.Key)
				b.WriteRune('=')
				b.WriteString(cp.Value)
			}
			continue
		}

		b.WriteString("; ")
		b.WriteString(p.Key)
		b.WriteRune('=')
		b.WriteString(Escape(p.Value))
	}

	return b.String()
}

// Bytes returns the same as String() as a slice of bytes.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}
