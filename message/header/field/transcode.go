package field

import (
	"mime"
	"strings"
)

// Encode transforms a single header field body into RFC 2047 encoded words if
// it contains any character that is not permitted in a raw header body. It will
// always output b-type (Base-64) encoding using UTF-8 as the character set.
// Bodies that are already safe are returned unchanged.
func Encode(body string) string {
	return mime.BEncoding.Encode("utf-8", body)
}

// EncodeQ is like Encode, but outputs q-type (Quoted-Printable) encoded words.
// This is the form used for display names and local parts of addresses.
func EncodeQ(body string) string {
	return mime.QEncoding.Encode("utf-8", body)
}

// Decode transforms a single header field body and looks for MIME word encoded field
// values. When they are found, these are decoded into native unicode.
func Decode(body string) (string, error) {
	dec := &mime.WordDecoder{
		CharsetReader: CharsetReader,
	}

	if strings.Contains(body, "=?") {
		return dec.DecodeHeader(body)
	}

	return body, nil
}
