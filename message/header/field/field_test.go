package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/header/field"
)

func TestNew(t *testing.T) {
	t.Parallel()

	f := field.New("Subject", "testing")

	assert.Equal(t, "Subject: testing", f.String())
	assert.Equal(t, []byte("Subject: testing"), f.Bytes())
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "testing", f.Body())

	f.SetName("X-Subject")
	assert.Equal(t, "X-Subject: testing", f.String())
	assert.Equal(t, "X-Subject", f.Name())

	f.SetBody("foo bar baz")
	assert.Equal(t, "X-Subject: foo bar baz", f.String())
	assert.Equal(t, []byte("X-Subject: foo bar baz"), f.Bytes())
	assert.Equal(t, "foo bar baz", f.Body())
}

func TestField_Clone(t *testing.T) {
	t.Parallel()

	f := field.New("To", "a@example.com")
	c := f.Clone()
	c.SetBody("b@example.com")

	assert.Equal(t, "a@example.com", f.Body())
	assert.Equal(t, "b@example.com", c.Body())
	assert.Equal(t, "To", c.Name())
}
