package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/header/param"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		value string
		ps    []param.Pair
	}{
		{
			name:  "bare",
			in:    "image/jpeg",
			value: "image/jpeg",
			ps:    []param.Pair{},
		},
		{
			name:  "quoted",
			in:    `text/plain; Charset="utf-8"; format=flowed`,
			value: "text/plain",
			ps: []param.Pair{
				{Key: "charset", Value: "utf-8"},
				{Key: "format", Value: "flowed"},
			},
		},
		{
			name:  "escaped quote and semi-colon",
			in:    `multipart/mixed; BOUNDARY="a;b\"c"`,
			value: "multipart/mixed",
			ps:    []param.Pair{{Key: "boundary", Value: `a;b"c`}},
		},
		{
			name:  "encoded word",
			in:    `attachment; filename="=?utf-8?q?caf=C3=A9?="`,
			value: "attachment",
			ps:    []param.Pair{{Key: "filename", Value: "café"}},
		},
		{
			name:  "extended value",
			in:    `text/plain; name*=iso-8859-1''caf%E9`,
			value: "text/plain",
			ps:    []param.Pair{{Key: "name", Value: "café"}},
		},
		{
			name:  "continuation",
			in:    `attachment; filename*1="there.txt"; filename*0="hello-"; size=4`,
			value: "attachment",
			ps: []param.Pair{
				{Key: "filename", Value: "hello-there.txt"},
				{Key: "size", Value: "4"},
			},
		},
		{
			name:  "garbage",
			in:    " foo ; ; bar; =baz; \"unterminated",
			value: "foo",
			ps:    []param.Pair{{Key: "bar", Value: ""}, {Key: `"unterminated`, Value: ""}},
		},
		{
			name:  "empty",
			in:    "",
			value: "",
			ps:    []param.Pair{},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			pv := param.Parse(test.in)
			assert.Equal(t, test.value, pv.Value())
			assert.Equal(t, test.ps, pv.Parameters())
		})
	}
}
