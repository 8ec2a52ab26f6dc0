package walk

import "github.com/zostay/go-mimetree/message"

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a message and its sub-parts.
//
// The Processor is given a part to process and the ancestry of the part. If
// len(parents) is zero, then this is the top-level part (i.e., the part that
// AndProcess() was called upon, which might not be the root of the tree).
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part *message.Node, parents []*message.Node) error

// AndProcess will walk the tree of parts starting at the given node and call
// the given Processor function for each part found, parents before children.
// It will terminate once all parts have been processed and return nil. If the
// Processor function returns an error, it will terminate early and return that
// error.
//
// Children are visited whether or not the node has a multipart content type,
// since a tree may be put together before its content types are set.
func AndProcess(
	processor Processor,
	msg *message.Node,
) error {
	parents := make([]*message.Node, 0, 10)
	return andProcess(processor, msg, parents)
}

func andProcess(
	processor Processor,
	part *message.Node,
	parents []*message.Node,
) error {
	err := processor(part, parents)
	if err != nil {
		return err
	}

	parents = append(parents, part)
	for _, subPart := range part.Children() {
		err := andProcess(processor, subPart, parents)
		if err != nil {
			return err
		}
	}

	return nil
}

// AndProcessLeaves is just like AndProcess, but only calls the Processor for
// parts without children.
func AndProcessLeaves(
	processor Processor,
	msg *message.Node,
) error {
	return AndProcess(
		func(part *message.Node, parents []*message.Node) error {
			if len(part.Children()) > 0 {
				return nil
			}
			return processor(part, parents)
		}, msg)
}

// AndProcessMultipart is just like AndProcess, but only calls the Processor
// for parts with a multipart content type.
func AndProcessMultipart(
	processor Processor,
	msg *message.Node,
) error {
	return AndProcess(
		func(part *message.Node, parents []*message.Node) error {
			if !part.IsMultipart() {
				return nil
			}
			return processor(part, parents)
		}, msg)
}
