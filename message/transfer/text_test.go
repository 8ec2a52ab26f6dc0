package transfer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/transfer"
)

func TestIsPlainText(t *testing.T) {
	t.Parallel()

	assert.True(t, transfer.IsPlainText("hello\r\n\tworld ~"))
	assert.True(t, transfer.IsPlainText(""))
	assert.False(t, transfer.IsPlainText("héllo"))
	assert.False(t, transfer.IsPlainText("bell\x07"))
	assert.False(t, transfer.IsPlainText("form\x0cfeed"))
}

func TestHasLongLines(t *testing.T) {
	t.Parallel()

	assert.False(t, transfer.HasLongLines(strings.Repeat("a", 76)))
	assert.True(t, transfer.HasLongLines(strings.Repeat("a", 77)))
	assert.False(t, transfer.HasLongLines(strings.Repeat("a", 70)+"\r\n"+strings.Repeat("b", 70)))
	assert.True(t, transfer.HasLongLines("short\n"+strings.Repeat("b", 80)))
}

func TestNormalizeBreaks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\r\nb\r\nc\rd", transfer.NormalizeBreaks("a\nb\r\nc\rd"))
}

func TestFlowed(t *testing.T) {
	t.Parallel()

	in := "From me\n>quoted\n regular\nplain\n" + strings.TrimSpace(strings.Repeat("lorem ipsum ", 15))
	out := transfer.Flowed(in)

	lines := strings.Split(out, "\r\n")
	assert.Equal(t, " From me", lines[0])
	assert.Equal(t, " >quoted", lines[1])
	assert.Equal(t, "  regular", lines[2])
	assert.Equal(t, "plain", lines[3])
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 76)
	}
	assert.Greater(t, len(lines), 5)

	assert.Equal(t, transfer.NormalizeBreaks(in), transfer.Unflow(out))
}
