package walk

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mimetree/message"
)

var (
	// ErrSkip may be returned by a Transformer callback to signal that the part
	// should be removed from the tree along with its children.
	ErrSkip = errors.New("skip part")

	// ErrCopy may be returned by a Transformer callback to signal that the part
	// should be kept as is.
	ErrCopy = errors.New("keep part")

	// ErrNilNil is returned by AndTransform when a Transformer callback returns
	// no part and provides no error.
	ErrNilNil = errors.New("no part and no error")

	// ErrPartAndError is returned by AndTransform when a Transformer callback
	// returns both a part and an error.
	ErrPartAndError = errors.New("both part and error")
)

// BadTransformationError is used when transformation needs to fail with an
// error.
type BadTransformationError struct {
	Cause   error
	Message string
}

// Error returns the error message describing the bad transformation.
func (b *BadTransformationError) Error() string {
	return fmt.Sprintf("%s: %v", b.Message, b.Cause)
}

// Unwrap returns the error that caused the bad transformation.
func (b *BadTransformationError) Unwrap() error {
	return b.Cause
}

// Transformer is a callback that can be passed to the AndTransform() function
// to transform a tree of parts.
//
// The Transformer is given the part to transform and the ancestry of the part.
// If len(parents) is zero, then this is the top-level part.
//
// The transform must return either a replacement part or one of ErrSkip or
// ErrCopy. The replacement part may be the given part itself after making
// changes to it. Any other error causes AndTransform() to fail with that
// error.
type Transformer func(part *message.Node, parents []*message.Node) (*message.Node, error)

// AndTransform will perform a transformation on the tree of parts starting at
// the given node, modifying the tree in place. The transformation is performed
// in depth-first order and parents are transformed before their children. The
// children transformed are those of the replacement part.
//
// A replacement part takes the place of the original with Replace. A skipped
// part is removed with Remove. If all the children of a multipart part are
// skipped, that part is skipped as well, so transformation never leaves an
// empty multipart part behind.
//
// It returns the transformed top-level part. That is nil if the top-level part
// was skipped.
func AndTransform(
	transformer Transformer,
	msg *message.Node,
) (*message.Node, error) {
	parents := make([]*message.Node, 0, 10)
	return andTransform(transformer, msg, parents)
}

func andTransform(
	transformer Transformer,
	part *message.Node,
	parents []*message.Node,
) (*message.Node, error) {
	tpart, err := handleTransformationErrors(transformer, part, parents)
	if err != nil {
		if errors.Is(err, ErrSkip) {
			part.Remove()
			return nil, nil
		}
		return nil, err
	}

	if tpart != part && part.Parent() != nil {
		part.Replace(tpart)
	}

	children := tpart.Children()
	if len(children) == 0 {
		return tpart, nil
	}

	parents = append(parents, tpart)
	kept := 0
	for _, child := range children {
		tchild, err := andTransform(transformer, child, parents)
		if err != nil {
			return nil, err
		}
		if tchild != nil {
			kept++
		}
	}

	if kept == 0 && tpart.IsMultipart() {
		tpart.Remove()
		return nil, nil
	}

	return tpart, nil
}

func handleTransformationErrors(
	transformer Transformer,
	part *message.Node,
	parents []*message.Node,
) (*message.Node, error) {
	tpart, err := transformer(part, parents)
	switch {
	case tpart == nil && err == nil:
		return nil, &BadTransformationError{ErrNilNil, "Transformer error"}
	case tpart != nil && err != nil:
		return nil, &BadTransformationError{
			fmt.Errorf("%w: %w", ErrPartAndError, err),
			"Transformer incorrectly returned error and part",
		}
	case errors.Is(err, ErrCopy):
		return part, nil
	default:
		return tpart, err
	}
}
