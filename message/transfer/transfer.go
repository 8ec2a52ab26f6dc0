package transfer

import (
	"io"
	"strings"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/param"
)

// Content-Transfer-Encoding values, in normalized form.
const (
	None            = ""
	Bit7            = "7bit"
	Bit8            = "8bit"
	Binary          = "binary"
	QuotedPrintable = "quoted-printable"
	Base64          = "base64"
)

// Transcoding pairs the encoder and the decoder of one transfer encoding.
type Transcoding struct {
	// Encoder wraps an io.Writer so that bytes written to it come out encoded.
	// Close must be called to flush the final line.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder wraps an io.Reader so that bytes read from it come out decoded.
	Decoder func(io.Reader) io.Reader
}

var asIs = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings maps each transfer encoding to its Transcoding. Encodings not
// listed here pass bytes through untouched.
var Transcodings = map[string]Transcoding{
	None:            asIs,
	Bit7:            asIs,
	Bit8:            asIs,
	Binary:          asIs,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// Normalize lowercases and trims a Content-Transfer-Encoding value.
func Normalize(cte string) string {
	return strings.ToLower(strings.TrimSpace(cte))
}

func lookup(h *header.Header) Transcoding {
	cte, _ := h.Get(header.ContentTransferEncoding)
	if tc, ok := Transcodings[Normalize(cte)]; ok {
		return tc
	}
	return asIs
}

// ApplyTransferEncoding wraps w in the encoder named by the
// Content-Transfer-Encoding field of the header. With no such field, or an
// encoding that leaves bytes alone, data is written through unchanged.
//
// Close the returned io.WriteCloser when done writing.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	return lookup(h).Encoder(w)
}

// ApplyTransferDecoding wraps r in the decoder named by the
// Content-Transfer-Encoding field of the header. The body of a multipart part
// is never decoded, since only leaf parts may carry an encoding.
func ApplyTransferDecoding(h *header.Header, r io.Reader) io.Reader {
	if ct, err := h.Get(header.ContentType); err == nil {
		if strings.EqualFold(param.Parse(ct).Type(), "multipart") {
			return r
		}
	}

	return lookup(h).Decoder(r)
}
