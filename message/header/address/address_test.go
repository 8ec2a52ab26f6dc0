package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mimetree/message/header/address"
)

func TestParse(t *testing.T) {
	t.Parallel()

	as := address.Parse("a@example.com, Joe <joe@example.com>")
	assert.Equal(t, []address.Address{
		{Address: "a@example.com"},
		{Name: "Joe", Address: "joe@example.com"},
	}, as)

	assert.Nil(t, address.Parse("  "))
}

func TestParse_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []address.Address
	}{
		{
			name: "group",
			in:   "Team: c@d.com, e@f.com;",
			want: []address.Address{
				{Name: "Team", IsGroup: true, Group: []address.Address{
					{Address: "c@d.com"},
					{Address: "e@f.com"},
				}},
			},
		},
		{
			name: "mailbox then group",
			in:   "a@b.com, Team: c@d.com;",
			want: []address.Address{
				{Address: "a@b.com"},
				{Name: "Team", IsGroup: true, Group: []address.Address{
					{Address: "c@d.com"},
				}},
			},
		},
		{
			name: "empty entry",
			in:   "a@b.com,,c@d.com",
			want: []address.Address{
				{Address: "a@b.com"},
				{Address: "c@d.com"},
			},
		},
		{
			name: "leading comment",
			in:   "(Sterling) sterling@example.com",
			want: []address.Address{
				{Name: "Sterling", Address: "sterling@example.com"},
			},
		},
		{
			name: "name only",
			in:   "John Doe",
			want: []address.Address{
				{Name: "John Doe"},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, address.Parse(test.in))
		})
	}
}

func TestConvert_Parsed(t *testing.T) {
	t.Parallel()

	var list []string
	assert.Equal(t, "a@b.com, Team:c@d.com, e@f.com;",
		address.Convert(address.Parse("a@b.com, Team: c@d.com, e@f.com;"), &list))
	assert.Equal(t, []string{"a@b.com", "c@d.com", "e@f.com"}, list)

	assert.Equal(t, "Sterling <sterling@example.com>",
		address.Convert(address.Parse("(Sterling) sterling@example.com"), nil))

	assert.Empty(t, address.Convert(address.Parse("John Doe"), nil))
}

func TestFromList(t *testing.T) {
	t.Parallel()

	al, err := addr.ParseEmailAddressList("sterling@example.com, Steve <steve@example.com>")
	require.NoError(t, err)

	as := address.FromList(al)
	require.Len(t, as, 2)
	assert.Equal(t, "sterling@example.com", as[0].Address)
	assert.Equal(t, "Steve", as[1].Name)
	assert.Equal(t, "steve@example.com", as[1].Address)
}

func TestParseLenient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []address.Address
	}{
		{
			name: "quoted name with comma",
			in:   `"Smith, Joe" <joe@example.com>, bob@example.com (Bob)`,
			want: []address.Address{
				{Name: "Smith, Joe", Address: "joe@example.com"},
				{Name: "Bob", Address: "bob@example.com"},
			},
		},
		{
			name: "group",
			in:   "Team: a@example.com, b@example.com; c@example.com",
			want: []address.Address{
				{Name: "Team", IsGroup: true, Group: []address.Address{
					{Address: "a@example.com"},
					{Address: "b@example.com"},
				}},
				{Address: "c@example.com"},
			},
		},
		{
			name: "empty group",
			in:   "Undisclosed recipients:;",
			want: []address.Address{
				{Name: "Undisclosed recipients", IsGroup: true},
			},
		},
		{
			name: "unicode",
			in:   "Jõgeva Ülo <ulo@jõgeva.ee>",
			want: []address.Address{
				{Name: "Jõgeva Ülo", Address: "ulo@jõgeva.ee"},
			},
		},
		{
			name: "no addr-spec",
			in:   "John Doe",
			want: []address.Address{
				{Name: "John Doe"},
			},
		},
		{
			name: "bare words",
			in:   "foo bar@example.com baz",
			want: []address.Address{
				{Name: "foo baz", Address: "bar@example.com"},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, address.ParseLenient(test.in))
		})
	}

	assert.Empty(t, address.ParseLenient(""))
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []address.Address
		want string
	}{
		{"bare", []address.Address{{Address: "a@example.com"}}, "a@example.com"},
		{"word name", []address.Address{{Name: "Joe Smith", Address: "joe@example.com"}}, "Joe Smith <joe@example.com>"},
		{"quoted name", []address.Address{{Name: `Smith, "Joe"`, Address: "joe@example.com"}}, `"Smith, \"Joe\"" <joe@example.com>`},
		{"unicode name", []address.Address{{Name: "Jõgeva", Address: "joe@example.com"}}, "=?utf-8?q?J=C3=B5geva?= <joe@example.com>"},
		{"unicode address", []address.Address{{Address: "jõgeva@jõgeva.ee"}}, "=?utf-8?q?j=C3=B5geva?=@xn--jgeva-dua.ee"},
		{"list", []address.Address{{Address: "a@example.com"}, {Address: "b@example.com"}}, "a@example.com, b@example.com"},
		{"group", []address.Address{{Name: "Team", IsGroup: true, Group: []address.Address{{Address: "a@x.com"}, {Address: "b@y.com"}}}}, "Team:a@x.com, b@y.com;"},
		{"empty group", []address.Address{{Name: "Nobody", IsGroup: true}}, "Nobody:;"},
		{"no address", []address.Address{{Name: "Ghost"}}, ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, address.Convert(test.in, nil))
		})
	}
}

func TestConvert_Unique(t *testing.T) {
	t.Parallel()

	var list []string
	address.Convert([]address.Address{{Address: "a@example.com"}, {Address: "b@example.com"}}, &list)
	address.Convert([]address.Address{
		{Address: "b@example.com"},
		{Name: "Team", IsGroup: true, Group: []address.Address{{Address: "c@example.com"}, {Address: "a@example.com"}}},
	}, &list)

	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, list)

	assert.Equal(t, []string{"x@example.com"},
		address.Addresses([]address.Address{{Address: "x@example.com"}, {Address: "x@example.com"}}))
}
