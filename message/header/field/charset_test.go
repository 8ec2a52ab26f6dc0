package field_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimetree/message/header/field"
)

// Εν αρχη ητο ο Λογος.
var greekText = []byte{
	0xc5, 0xed, 0x20, 0xe1, 0xf1, 0xf7, 0xe7, 0x20, 0xe7, 0xf4, 0xef, 0x20,
	0xef, 0x20, 0xcb, 0xef, 0xe3, 0xef, 0xf2, 0x2e,
}

const unicodeText = "Εν αρχη ητο ο Λογος."

func TestCharsetDecoder(t *testing.T) {
	t.Parallel()

	dec, err := field.CharsetDecoder("iso-8859-7", greekText)
	require.NoError(t, err)
	assert.Equal(t, unicodeText, dec)

	dec, err = field.CharsetDecoder("UTF-8", []byte(unicodeText))
	require.NoError(t, err)
	assert.Equal(t, unicodeText, dec)

	_, err = field.CharsetDecoder("x-no-such-charset", greekText)
	assert.ErrorIs(t, err, field.ErrUnknownCharset)
}

func TestCharsetReader(t *testing.T) {
	t.Parallel()

	r, err := field.CharsetReader("iso-8859-7", bytes.NewReader(greekText))
	require.NoError(t, err)

	dec, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, unicodeText, string(dec))
}
