// Package header provides the ordered header field store used by every MIME
// part and the per-field encoding rules applied when a part is rendered.
//
// Field names are normalized on the way in (see NormalizeName), so
// "content-type", "CONTENT-TYPE" and "Content-Type" all refer to the same
// field. Set replaces, Add appends and Get returns the first match. Fields
// keep the order in which they were stored.
//
// EncodeValue turns a stored field body into the text that is written to the
// wire: address fields are parsed and re-rendered, message identifiers get
// their angle brackets and everything else becomes MIME encoded words when it
// is not plain ASCII.
package header
