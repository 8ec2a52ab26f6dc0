// Package param provides a tool for dealing with parameterized headers. These
// headers include the Content-type and Content-disposition header. In addition,
// it provides some helper methods for breaking down the MIME types that get
// set in the Content-type header and the RFC 2231 continuation encoding used
// for long or non-ASCII parameter values.
//
// Unlike mime.ParseMediaType, parameters are kept in the order they were
// found and parsing never fails. A header value that makes no sense is turned
// into the best Value that can be made of it.
package param
