package header

import (
	"strings"
	"unicode"

	"github.com/zostay/go-mimetree/message/header/address"
	"github.com/zostay/go-mimetree/message/header/field"
)

// EncodeValue returns the field body as it should be written for the named
// field. The result is not folded.
//
// Address fields are parsed and rendered again with address.Convert. The
// Message-Id, In-Reply-To and Content-Id fields are wrapped in angle brackets
// if they are not already. References is handled by EncodeReferences.
// Anything else has line breaks replaced by spaces and is turned into MIME
// encoded words if it contains anything other than printable ASCII.
func EncodeValue(name, value string) string {
	switch NormalizeName(name) {
	case From, Sender, To, Cc, Bcc, ReplyTo:
		return address.Convert(address.Parse(value), nil)

	case MessageID, InReplyTo, ContentID:
		return bracket(newlines.Replace(value))

	case References:
		return EncodeReferences(value)

	default:
		return field.Encode(newlines.Replace(value))
	}
}

func bracket(v string) string {
	if !strings.HasPrefix(v, "<") {
		v = "<" + v
	}
	if !strings.HasSuffix(v, ">") {
		v += ">"
	}
	return v
}

// EncodeReferences flattens one or more References values into a single list
// of message identifiers. Whitespace inside angle brackets is removed, the
// values are split on whitespace, each identifier is wrapped in angle brackets
// if needed and the result is joined with single spaces.
func EncodeReferences(values ...string) string {
	var ids []string
	for _, v := range values {
		v = strings.TrimSpace(newlines.Replace(v))
		for _, id := range strings.Fields(squeezeBrackets(v)) {
			ids = append(ids, bracket(id))
		}
	}

	return strings.Join(ids, " ")
}

// squeezeBrackets removes whitespace found between a "<" and the next ">".
// An unterminated "<" is left alone.
func squeezeBrackets(v string) string {
	var b strings.Builder
	for {
		lt := strings.IndexRune(v, '<')
		if lt < 0 {
			break
		}
		gt := strings.IndexRune(v[lt:], '>')
		if gt < 0 {
			break
		}

		b.WriteString(v[:lt])
		b.WriteString(strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, v[lt:lt+gt+1]))
		v = v[lt+gt+1:]
	}

	b.WriteString(v)
	return b.String()
}
