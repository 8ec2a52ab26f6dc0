package transfer

import (
	"regexp"
	"strings"

	"github.com/zostay/go-mimetree/message/header/field"
)

// FlowedLineLength is the longest line 7bit text may have before it is sent
// as format=flowed.
const FlowedLineLength = 76

// IsPlainText returns true if the text is made only of printable US-ASCII,
// tab, CR and LF, so it may be sent as 7bit without any escaping.
func IsPlainText(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 0x80:
			return false
		case c < 0x20 && c != '\t' && c != '\n' && c != '\r':
			return false
		}
	}
	return true
}

// HasLongLines returns true if any line of the text is longer than
// FlowedLineLength.
func HasLongLines(s string) bool {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' || s[i] == '\n' {
			n = 0
			continue
		}

		n++
		if n > FlowedLineLength {
			return true
		}
	}
	return false
}

var lineBreaks = regexp.MustCompile(`\r?\n`)

// NormalizeBreaks turns every LF or CRLF into CRLF.
func NormalizeBreaks(s string) string {
	return lineBreaks.ReplaceAllString(s, "\r\n")
}

var stuffable = regexp.MustCompile(`(?im)^( |from|>)`)

// Flowed prepares 7bit text for format=flowed (RFC 3676). Line breaks are
// normalized to CRLF, lines starting with a space, "From" or ">" get a space
// stuffed in front and long lines are folded with soft breaks.
func Flowed(s string) string {
	s = stuffable.ReplaceAllString(NormalizeBreaks(s), " $1")
	return field.FlowedFoldEncoding.FoldString(s, field.CRLF)
}

// Unflow reverses Flowed: soft line breaks are joined and stuffed spaces are
// removed. Hard line breaks are returned as CRLF.
func Unflow(s string) string {
	lines := strings.Split(NormalizeBreaks(s), "\r\n")

	var b strings.Builder
	for i, line := range lines {
		line = strings.TrimPrefix(line, " ")
		b.WriteString(line)

		if i < len(lines)-1 && !strings.HasSuffix(line, " ") {
			b.WriteString("\r\n")
		}
	}

	return b.String()
}
