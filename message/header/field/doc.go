// Package field provides the low-level pieces used to render a single header
// field: the Field name/body pair, the line folding rules of RFC 2822, and the
// RFC 2047 encoded-word transforms applied to field bodies.
package field
