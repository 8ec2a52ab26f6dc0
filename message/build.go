package message

import (
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/field"
	"github.com/zostay/go-mimetree/message/header/param"
	"github.com/zostay/go-mimetree/message/transfer"
)

var (
	textType      = regexp.MustCompile(`(?i)^text/`)
	multipartType = regexp.MustCompile(`(?i)^multipart/`)
)

// lineWriter writes lines joined by CRLF and keeps track of the bytes written
// and the first error.
type lineWriter struct {
	w       io.Writer
	n       int64
	err     error
	started bool
}

func (lw *lineWriter) Write(b []byte) (int, error) {
	if lw.err != nil {
		return 0, lw.err
	}

	n, err := lw.w.Write(b)
	lw.n += int64(n)
	lw.err = err
	return n, err
}

// next starts a new line, writing the line break if this is not the first.
func (lw *lineWriter) next() {
	if lw.started {
		_, _ = io.WriteString(lw, "\r\n")
	}
	lw.started = true
}

func (lw *lineWriter) line(s string) {
	lw.next()
	_, _ = io.WriteString(lw, s)
}

// Build returns the node serialized as an RFC 2822 message with CRLF line
// breaks. On a root node, missing Date, Message-Id and MIME-Version fields
// are filled in.
//
// Building sets the Content-Transfer-Encoding field when content is present
// and Content-Disposition when a filename is set. Building an unchanged tree
// again returns the same text.
func (n *Node) Build() string {
	var b strings.Builder
	_, _ = n.WriteTo(&b)
	return b.String()
}

// WriteTo writes the same text Build returns to the given io.Writer. It
// returns the number of bytes written and the first error the io.Writer
// returns, if any.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	lw := &lineWriter{w: w}

	ct := strings.ToLower(strings.TrimSpace(n.rawHeader(header.ContentType)))

	cte, flowed := n.resolveTransferEncoding(ct)

	if n.filename != "" && n.rawHeader(header.ContentDisposition) == "" {
		n.header.Set(header.ContentDisposition, "attachment")
	}

	var (
		multipart bool
		boundary  string
	)

	for _, f := range n.header.ListFields() {
		key, value := f.Name(), f.Body()

		switch key {
		case header.ContentDisposition:
			pv := param.Parse(value)
			if n.filename != "" {
				pv = param.Modify(pv, param.Set(param.Filename, n.filename))
			}
			value = pv.String()

		case header.ContentType:
			pv := param.Parse(value)

			multipart = isMultipart(pv)
			boundary = ""
			if multipart {
				boundary = n.resolveBoundary(pv)
				pv = param.Modify(pv, param.Set(param.Boundary, boundary))
			}

			if flowed {
				pv = param.Modify(pv, param.Set(param.Format, "flowed"))
			}
			if format, _ := pv.Parameter(param.Format); strings.EqualFold(strings.TrimSpace(format), "flowed") {
				flowed = true
			}

			if textType.MatchString(pv.MediaType()) && n.isText && hasNonASCII(n.content) {
				pv = param.Modify(pv, param.Set(param.Charset, "utf-8"))
			}

			value = pv.String()

		case header.Bcc:
			if !n.includeBcc {
				n.logger.Debug().Int("node", n.id).Msg("leaving Bcc out of the header")
				continue
			}
		}

		value = header.EncodeValue(key, value)
		if strings.TrimSpace(value) == "" {
			continue
		}

		lw.line(field.DefaultFoldEncoding.FoldString(key+": "+value, field.CRLF))
	}

	if n.IsRoot() {
		n.writeMandatory(lw)
	}

	lw.line("")

	if n.hasContent {
		lw.next()
		n.writeContent(lw, cte, flowed)

		if multipart {
			lw.line("")
		}
	}

	if multipart {
		for _, c := range n.children {
			lw.line("--" + boundary)
			lw.next()
			_, _ = c.WriteTo(lw)
		}
		lw.line("--" + boundary + "--")
		lw.line("")
	}

	return lw.n, lw.err
}

// rawHeader returns the first value of the named field or an empty string.
func (n *Node) rawHeader(key string) string {
	v, _ := n.GetHeader(key)
	return v
}

// resolveTransferEncoding picks the transfer encoding of the content and
// stores it in the Content-Transfer-Encoding field. An encoding of base64 or
// quoted-printable that is already set is kept and the content is encoded
// with it. It also reports whether text content needs format=flowed.
func (n *Node) resolveTransferEncoding(ct string) (string, bool) {
	if !n.hasContent {
		return "", false
	}

	cte := transfer.Normalize(n.rawHeader(header.ContentTransferEncoding))
	flowed := false

	if cte != transfer.Base64 && cte != transfer.QuotedPrintable {
		switch {
		case textType.MatchString(ct):
			if n.isText && transfer.IsPlainText(string(n.content)) {
				flowed = transfer.HasLongLines(string(n.content))
				cte = transfer.Bit7
			} else {
				cte = transfer.QuotedPrintable
			}

		case !multipartType.MatchString(ct):
			if cte == transfer.None {
				cte = transfer.Base64
			}
		}
	}

	if cte != transfer.None {
		n.logger.Debug().
			Int("node", n.id).
			Str("encoding", cte).
			Bool("flowed", flowed).
			Msg("selected transfer encoding")
		n.header.Set(header.ContentTransferEncoding, cte)
	}

	return cte, flowed
}

// writeMandatory adds the Date, Message-Id and MIME-Version fields a message
// must have when they are missing.
func (n *Node) writeMandatory(lw *lineWriter) {
	if n.rawHeader(header.Date) == "" {
		lw.line(header.Date + ": " + header.FormatTime(n.date))
	}

	if n.rawHeader(header.MessageID) == "" {
		if n.messageID == "" {
			n.messageID = fmt.Sprintf("%d-%08x-%08x-%08x",
				n.date.UnixMilli(), rand.Uint32(), rand.Uint32(), rand.Uint32())
		}

		domain := "localhost"
		if from := n.Envelope().From; from != "" {
			domain = from[strings.LastIndexByte(from, '@')+1:]
		}

		lw.line(header.MessageID + ": <" + n.messageID + "@" + domain + ">")
	}

	if n.rawHeader(header.MIMEVersion) == "" {
		lw.line(header.MIMEVersion + ": 1.0")
	}
}

// writeContent writes the content in the given transfer encoding.
func (n *Node) writeContent(lw *lineWriter, cte string, flowed bool) {
	if n.skipEncoding {
		_, _ = lw.Write(n.content)
		return
	}

	switch cte {
	case transfer.QuotedPrintable, transfer.Base64:
		wc := transfer.ApplyTransferEncoding(&n.header, lw)
		_, err := wc.Write(n.content)
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			n.logger.Debug().Err(err).Int("node", n.id).Msg("writing content failed")
		}

	default:
		text := string(n.content)
		if flowed {
			text = transfer.Flowed(text)
		} else {
			text = transfer.NormalizeBreaks(text)
		}
		_, _ = io.WriteString(lw, text)
	}
}

func hasNonASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return true
		}
	}
	return false
}
