/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rfc3986

import (
	"errors"
	"fmt"
)

// ErrBaseNotAbsolute is returned by Merge when the base reference has no
// scheme. RFC 3986, Section 5.1 requires the base URI to be absolute.
var ErrBaseNotAbsolute = errors.New("base URI must have a scheme")

var (
	// errNoScheme is returned when the input starts with a colon, leaving an
	// empty scheme in front of it.
	errNoScheme = &kindError{message: "No scheme found in an absolute URI"}
	// errPathStartingWithSlashes is returned when a path begins with "//"
	// although no authority is present. RFC 3986, Section 3.3 forbids it since
	// the path would read as a network-path reference.
	errPathStartingWithSlashes = &kindError{
		message: "A URI path is not allowed to start with // if there is no authority",
	}
)

// ParseError is the error type returned by Parse and Merge. It carries a
// descriptive message and may wrap a more specific cause.
type ParseError struct {
	Message string
	Err     error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("URI parse error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError wraps err in a ParseError. It returns nil for a nil error.
func newParseError(err error) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Message: err.Error(), Err: err}
}

// kindError describes a single grammar violation found by the parser.
type kindError struct {
	message string
	char    rune
	details string
}

// Error formats the message with the offending character or, failing that,
// the offending text.
func (e *kindError) Error() string {
	switch {
	case e.char != 0:
		return fmt.Sprintf("%s '%c'", e.message, e.char)
	case e.details != "":
		return fmt.Sprintf("%s '%s'", e.message, e.details)
	default:
		return e.message
	}
}
