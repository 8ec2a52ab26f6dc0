package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/header/param"
)

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	mt := param.Parse("text/json; charset=trash")

	assert.Equal(t, "text/json", mt.MediaType())
	assert.Equal(t, "text", mt.Type())
	assert.Equal(t, "json", mt.Subtype())
	assert.Equal(t, []param.Pair{{Key: "charset", Value: "trash"}}, mt.Parameters())
	assert.Equal(t, "trash", mt.Charset())

	v, ok := mt.Parameter("CHARSET")
	assert.True(t, ok)
	assert.Equal(t, "trash", v)

	_, ok = mt.Parameter(param.Boundary)
	assert.False(t, ok)

	nt := param.Parse("text")
	assert.Equal(t, "", nt.Type())
	assert.Equal(t, "", nt.Subtype())
}

func TestModify(t *testing.T) {
	t.Parallel()

	mt := param.Parse("text/json")
	assert.Equal(t, "text/json", mt.String())

	mt = param.Modify(mt,
		param.Set(param.Boundary, "abc123"),
		param.Set(param.Charset, "utf-8"),
	)
	assert.Equal(t, "text/json; boundary=abc123; charset=utf-8", mt.String())
	assert.Equal(t, []byte("text/json; boundary=abc123; charset=utf-8"), mt.Bytes())
}

func TestModify_KeepsOrder(t *testing.T) {
	t.Parallel()

	mt := param.Parse("multipart/mixed; a=1; b=2")

	nt := param.Modify(mt, param.Set("a", "3"), param.Set("c", "4"))
	assert.Equal(t, "multipart/mixed; a=3; b=2; c=4", nt.String())

	// the original is untouched
	assert.Equal(t, "multipart/mixed; a=1; b=2", mt.String())
}

func TestValue_StringFilename(t *testing.T) {
	t.Parallel()

	mt := param.Modify(param.Parse("attachment"), param.Set(param.Filename, "a.png"))
	assert.Equal(t, "attachment; filename=a.png", mt.String())
	assert.Equal(t, "a.png", mt.Filename())

	mt = param.Modify(param.Parse("attachment"), param.Set(param.Filename, "café.txt"))
	assert.Equal(t, "attachment; filename*0*=utf-8''caf%C3%A9.txt", mt.String())
}

func TestValue_StringEscapes(t *testing.T) {
	t.Parallel()

	mt := param.Modify(param.Parse("multipart/mixed"), param.Set(param.Boundary, "----abc 1"))
	assert.Equal(t, `multipart/mixed; boundary="----abc 1"`, mt.String())
}
