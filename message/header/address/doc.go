// Package address parses the free-text address lists found in From, To, Cc
// and the other address fields and converts them back into header-safe text.
//
// Parsing tries the strict RFC 5322 parser of github.com/zostay/go-addr
// first. If that fails, a very forgiving parser is used instead, so that some
// kind of result is returned for any input.
package address
