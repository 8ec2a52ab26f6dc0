package param

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultContinuationLength is the segment length used when rendering the
// filename parameter.
const DefaultContinuationLength = 50

const hex = "0123456789ABCDEF"

// Escape returns the parameter value ready to follow the "=" of a parameter.
// Values containing whitespace, quotes, backslash, semi-colon, slash or equals
// sign, or starting with a hyphen, are wrapped in double quotes with any
// quote or backslash escaped. Anything else is returned as-is.
func Escape(v string) string {
	if !needsQuotes(v) {
		return v
	}

	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteRune('"')
	for _, r := range v {
		if r == '"' || r == '\\' {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	b.WriteRune('"')
	return b.String()
}

func needsQuotes(v string) bool {
	if strings.HasPrefix(v, "-") {
		return true
	}

	return strings.IndexFunc(v, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`'"\;/=`, r)
	}) >= 0
}

// isPlainParam is true when a value only holds word characters, dots,
// hyphens and spaces, which never need the extended RFC 2231 syntax.
func isPlainParam(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-', c == ' ':
		default:
			return false
		}
	}
	return true
}

// isAttributeChar reports the characters RFC 2231 allows unencoded in an
// extended parameter value.
//
//	attribute-char := <any (US-ASCII) CHAR except SPACE, CTLs, "*", "'", "%", or tspecials>
func isAttributeChar(c byte) bool {
	if c <= 0x20 || c >= 0x7F {
		return false
	}
	return !strings.ContainsRune(`*'%()<>@,;:\"/[]?=`, rune(c))
}

// Continuation encodes a parameter according to RFC 2231, returning the
// key/value pairs to render in order.
//
// A value made only of word characters, dots, hyphens and spaces that fits in
// maxLength is returned as a single pair. A longer one of that kind is split
// into name*0, name*1, ... segments of maxLength characters. Anything else is
// percent-encoded as UTF-8 into name*0*, name*1*, ... segments, the first of
// which starts with the UTF-8 charset marker. A percent escape is never
// split across segments.
func Continuation(name, value string, maxLength int) []Pair {
	if maxLength <= 0 {
		maxLength = DefaultContinuationLength
	}

	if isPlainParam(value) {
		if len(value) <= maxLength {
			return []Pair{{name, Escape(value)}}
		}

		ps := make([]Pair, 0, len(value)/maxLength+1)
		for i := 0; len(value) > 0; i++ {
			n := maxLength
			if n > len(value) {
				n = len(value)
			}
			ps = append(ps, Pair{name + "*" + strconv.Itoa(i), Escape(value[:n])})
			value = value[n:]
		}
		return ps
	}

	var (
		ps   []Pair
		line strings.Builder
	)

	line.WriteString("utf-8''")
	flush := func() {
		ps = append(ps, Pair{name + "*" + strconv.Itoa(len(ps)) + "*", line.String()})
		line.Reset()
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		unit := string(c)
		if !isAttributeChar(c) {
			unit = string([]byte{'%', hex[c>>4], hex[c&0x0f]})
		}

		// the first segment may end up longer than maxLength only when
		// maxLength cannot hold the charset marker and a single unit
		if line.Len() > 0 && line.Len()+len(unit) > maxLength && !(len(ps) == 0 && line.Len() == len("utf-8''")) {
			flush()
		}
		line.WriteString(unit)
	}

	if line.Len() > 0 || len(ps) == 0 {
		flush()
	}

	return ps
}
