package field

import (
	"bytes"
	"errors"
	"io"
)

const (
	DefaultFoldLength = 76 // header lines and flowed body lines are wrapped to this width

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding folds header fields at DefaultFoldLength, placing
	// the whitespace found at a break at the start of the continuation line.
	DefaultFoldEncoding = &FoldEncoding{DefaultFoldLength, false}

	// FlowedFoldEncoding folds text at DefaultFoldLength for format=flowed
	// bodies (RFC 3676), leaving the whitespace at the end of the broken line
	// so that it marks a soft line break.
	FlowedFoldEncoding = &FoldEncoding{DefaultFoldLength, true}
)

var (
	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the fold
	// length is less than 2 bytes long.
	ErrFoldLengthTooShort = errors.New("fold length is too short")
)

// Break is the line break written between folded lines.
type Break []byte

// CRLF is the network line break, which is what email wants.
var CRLF = Break("\r\n")

// FoldEncoding provides the tooling for folding header fields and flowed
// message bodies.
type FoldEncoding struct {
	foldLength int
	afterSpace bool
}

// NewFoldEncoding creates a new FoldEncoding that wraps at foldLength
// characters. When afterSpace is true, the whitespace at the break point stays
// on the end of the broken line (flowed text), otherwise it moves to the start
// of the next line (header folding). Use DoNotFold as the length to disable
// folding entirely.
func NewFoldEncoding(foldLength int, afterSpace bool) (*FoldEncoding, error) {
	if foldLength != DoNotFold && foldLength < 2 {
		return nil, ErrFoldLengthTooShort
	}

	return &FoldEncoding{foldLength, afterSpace}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == '\r' || c == '\n'
}

// Fold will take an unfolded value and fold it. Existing line breaks inside
// the value are kept. Long lines are broken at the last run of whitespace
// inside the window; a line without whitespace in the window is extended up
// to the next whitespace instead of being cut in the middle of a word.
//
// Writes the folded output to the given io.Writer and returns the number of
// bytes written and returns an error if there's an error writing the data.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb Break) (int64, error) {
	total := int64(0)
	write := func(b []byte) error {
		n, err := out.Write(b)
		total += int64(n)
		return err
	}

	if vf.foldLength == DoNotFold {
		return total, write(f)
	}

	pos := 0
	for pos < len(f) {
		end := pos + vf.foldLength
		if end > len(f) {
			end = len(f)
		}
		line := f[pos:end]

		if len(line) < vf.foldLength {
			return total, write(line)
		}

		// an existing line break inside the window ends the line as-is
		if ix := bytes.IndexAny(line, "\r\n"); ix >= 0 {
			cut := ix + 1
			if line[ix] == '\r' && cut < len(line) && line[cut] == '\n' {
				cut++
			}
			if err := write(line[:cut]); err != nil {
				return total, err
			}
			pos += cut
			continue
		}

		n := vf.lineLength(line, f[pos+len(line):])
		if err := write(f[pos : pos+n]); err != nil {
			return total, err
		}
		pos += n

		if pos < len(f) {
			if err := write(lb); err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// FoldString is a convenience wrapper around Fold for strings.
func (vf *FoldEncoding) FoldString(s string, lb Break) string {
	var buf bytes.Buffer
	_, _ = vf.Fold(&buf, []byte(s), lb)
	return buf.String()
}

// lineLength picks how many bytes to emit on the current line, given the
// full window and everything following it.
func (vf *FoldEncoding) lineLength(line, rest []byte) int {
	// best case, break at the last whitespace run in the window
	if last := bytes.LastIndexFunc(line, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) }); last >= 0 {
		first := last
		for first > 0 && isSpace(line[first-1]) {
			first--
		}

		tail := len(line) - first
		if vf.afterSpace {
			tail -= last - first + 1
		}

		if tail < len(line) {
			return len(line) - tail
		}
	}

	// barring that, extend the line to the end of the word it ends with
	word := 0
	for word < len(rest) && !isSpace(rest[word]) {
		word++
	}
	if word == 0 {
		return len(line)
	}

	if vf.afterSpace {
		for word < len(rest) && isSpace(rest[word]) {
			word++
		}
	}

	return len(line) + word
}
