package header

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")
)

// These are the header names with special handling, in normalized form.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-Id"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-Reply-To"
	MessageID               = "Message-Id"
	MIMEVersion             = "MIME-Version"
	References              = "References"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// Even more custom date formats, built from those seen in the wild that the
// usual parsers have trouble with.
const (
	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

var newlines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// NormalizeName returns the canonical form of a header field name. Line breaks
// become spaces, surrounding whitespace is trimmed and the name is lowercased.
// Then the first letter and every letter following a hyphen are uppercased,
// except that a leading MIME word is uppercased in full:
//
//	content-TYPE -> Content-Type
//	mime-version -> MIME-Version
//	message-id   -> Message-Id
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(newlines.Replace(name)))

	b := []byte(name)
	start := 0
	if strings.HasPrefix(name, "mime") && (len(name) == 4 || !isWordChar(name[4])) {
		copy(b, "MIME")
		start = 4
	}

	for i := start; i < len(b); i++ {
		if b[i] < 'a' || b[i] > 'z' {
			continue
		}
		if i == 0 || b[i-1] == '-' {
			b[i] -= 'a' - 'A'
		}
	}

	return string(b)
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Header wraps a Base and provides the field semantics needed to build a MIME
// part. Every name passed to a Header method is normalized with NormalizeName
// first. The zero value is an empty header ready to use.
type Header struct {
	// Base provides the low-level storage of header fields.
	Base
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	return &Header{*h.Base.Clone()}
}

// Get retrieves the body of the first field with the given name.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(NormalizeName(name))
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	return h.GetField(ixs[0]).Body(), nil
}

// GetAll retrieves the bodies of every field with the given name, in order.
//
// If the named field is not set in the header, it will return nil with
// ErrNoSuchField.
func (h *Header) GetAll(name string) ([]string, error) {
	ixs := h.GetIndexesNamed(NormalizeName(name))
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	bodies := make([]string, len(ixs))
	for i, ix := range ixs {
		bodies[i] = h.GetField(ix).Body()
	}

	return bodies, nil
}

// Set replaces the body of the first field with the given name and deletes
// every other field with that name. If no field has that name, a new field is
// added to the end of the header.
func (h *Header) Set(name, body string) {
	name = NormalizeName(name)
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		h.InsertBeforeField(h.Len(), name, body)
		return
	}

	h.GetField(ixs[0]).SetBody(body)

	// delete from the end so the remaining indexes stay valid
	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}
}

// Add appends a new field to the end of the header, leaving any other field of
// the same name alone.
func (h *Header) Add(name, body string) {
	h.InsertBeforeField(h.Len(), NormalizeName(name), body)
}

// Fields is a set of fields passed to SetFields or AddFields in one go. It is
// one of Pair, Pairs or Map.
type Fields interface {
	pairs() []Pair
}

// Pair is a single field name and body.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered list of fields.
type Pairs []Pair

// Map holds fields keyed by name. They are applied in sorted name order.
type Map map[string]string

func (p Pair) pairs() []Pair { return []Pair{p} }

func (ps Pairs) pairs() []Pair { return ps }

func (m Map) pairs() []Pair {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ps := make([]Pair, len(keys))
	for i, k := range keys {
		ps[i] = Pair{k, m[k]}
	}
	return ps
}

// SetFields calls Set for every pair. Pairs with an empty name or value are
// skipped.
func (h *Header) SetFields(fs Fields) {
	for _, p := range fs.pairs() {
		if p.Key == "" || p.Value == "" {
			continue
		}
		h.Set(p.Key, p.Value)
	}
}

// AddFields calls Add for every pair. Pairs with an empty name or value are
// skipped.
func (h *Header) AddFields(fs Fields) {
	for _, p := range fs.pairs() {
		if p.Key == "" || p.Value == "" {
			continue
		}
		h.Add(p.Key, p.Value)
	}
}

// ParseTime is a function that provides the time parsing used by GetTime() to
// parse dates to be used on any field body. This will attempt to parse the
// date using the format specified by RFC 5322 first and fallback to parsing it
// in many other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// FormatTime renders a time the way the Date field of a built message is
// written, always in UTC: "Mon, 02 Jan 2006 15:04:05 +0000".
func FormatTime(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " +0000"
}

// GetTime gets the given date header field as a time.Time. It will attempt to
// parse the date in many formats, not just the format specified by RFC 5322
// (though, it will try that first).
//
// It will return the zero value and ErrNoSuchField if the header does not
// exist.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	return ParseTime(body)
}
