// Package mimetree is a library for putting together email messages. A
// message is a tree of nodes. Each node has a header and either content or a
// list of child nodes. Building a node turns it into RFC 5322 text with MIME
// multipart sections, transfer encodings and encoded header fields worked out
// along the way.
//
// The interesting code lives in the sub-packages:
//
//   - message holds the Node type, which is used to build the tree, set header
//     fields and content, and render the whole thing as text.
//   - message/header is the header store used by every node, along with the
//     rules for encoding field values.
//   - message/header/field, message/header/param and message/header/address
//     handle folding, parameterized values and address lists.
//   - message/transfer implements the Content-Transfer-Encodings.
//   - message/mimetype guesses content types from file names.
//   - message/walk and message/walker visit and transform trees of nodes.
//
// The test/roundtrip tool builds messages from YAML descriptions and checks
// that the output reads back cleanly.
//
// Parsing messages is not something this library does. If you need that, see
// github.com/jhillyerd/enmime or github.com/zostay/go-email.
package mimetree
