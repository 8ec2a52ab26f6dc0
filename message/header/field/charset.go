package field

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnknownCharset is returned when a charset name cannot be resolved to an
// encoding.
var ErrUnknownCharset = errors.New("unknown charset")

// CharsetDecoder decodes the given bytes from the named charset into a native
// UTF-8 string. Any charset registered with the IANA index is accepted, which
// covers pretty much anything found in the wild wild world of email.
func CharsetDecoder(charset string, b []byte) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "us-ascii":
		return string(b), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrUnknownCharset, charset, err)
	}

	if e == nil {
		return "", fmt.Errorf("%w %q", ErrUnknownCharset, charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}

// CharsetReader adapts CharsetDecoder for use as the CharsetReader of a
// mime.WordDecoder.
func CharsetReader(charset string, input io.Reader) (io.Reader, error) {
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	s, err := CharsetDecoder(charset, b)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader([]byte(s)), nil
}
