package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/field"
)

func TestBase(t *testing.T) {
	t.Parallel()

	// the zero value must be usable for every operation
	testFuncs := []func(*header.Base){
		func(b *header.Base) { assert.Nil(t, b.GetField(0)) },
		func(b *header.Base) { assert.Nil(t, b.GetField(-1)) },
		func(b *header.Base) { assert.Equal(t, 0, b.Len()) },
		func(b *header.Base) { assert.Empty(t, b.GetIndexesNamed(header.Subject)) },
		func(b *header.Base) { assert.Empty(t, b.ListFields()) },
		func(b *header.Base) { b.InsertBeforeField(0, "Subject", "testing") },
		func(b *header.Base) {
			err := b.DeleteField(0)
			assert.ErrorIs(t, err, header.ErrIndexOutOfRange)
		},
		func(b *header.Base) { assert.Equal(t, 0, b.Clone().Len()) },
	}
	for _, testFunc := range testFuncs {
		b := &header.Base{}
		assert.NotPanics(t, func() { testFunc(b) })
	}
}

func TestBase_InsertBeforeField(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	b.InsertBeforeField(0, "A", "b")
	b.InsertBeforeField(1, "E", "f")
	b.InsertBeforeField(1, "C", "d")
	b.InsertBeforeField(100, "E", "g")
	b.InsertBeforeField(-5, "Z", "z")

	assert.Equal(t, []*field.Field{
		field.New("Z", "z"),
		field.New("A", "b"),
		field.New("C", "d"),
		field.New("E", "f"),
		field.New("E", "g"),
	}, b.ListFields())

	assert.Equal(t, []int{3, 4}, b.GetIndexesNamed("E"))
	assert.Empty(t, b.GetIndexesNamed("e"))
}

func TestBase_DeleteField(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	b.InsertBeforeField(0, "A", "b")
	b.InsertBeforeField(1, "C", "d")
	b.InsertBeforeField(2, "E", "f")

	assert.NoError(t, b.DeleteField(1))
	assert.Equal(t, []*field.Field{
		field.New("A", "b"),
		field.New("E", "f"),
	}, b.ListFields())

	assert.ErrorIs(t, b.DeleteField(2), header.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.DeleteField(-1), header.ErrIndexOutOfRange)
}

func TestBase_Clone(t *testing.T) {
	t.Parallel()

	b := &header.Base{}
	b.InsertBeforeField(0, "A", "b")

	c := b.Clone()
	c.GetField(0).SetBody("changed")

	assert.Equal(t, "b", b.GetField(0).Body())
	assert.Equal(t, "changed", c.GetField(0).Body())
}
