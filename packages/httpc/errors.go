package httpc

import (
	"errors"
	"fmt"
)

// ErrTooManyRedirects is returned when a redirect chain exceeds the
// client's hop cap.
var ErrTooManyRedirects = errors.New("httpc: too many redirects")

// ParseErrorKind classifies response-parsing failures so callers can branch
// on kind instead of message text.
type ParseErrorKind string

const (
	KindMalformedStatusLine ParseErrorKind = "malformed status line"
	KindMissingStatusCode   ParseErrorKind = "missing or non-numeric status code"
	KindMalformedHeaderLine ParseErrorKind = "malformed header line"
	KindMalformedChunkSize  ParseErrorKind = "malformed chunk size"
	KindUnexpectedEOF       ParseErrorKind = "premature end of stream"
)

// ParseError is a fatal response-parsing failure.
type ParseError struct {
	Kind ParseErrorKind
	Line string // offending line, when one exists
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("httpc: %s: %q", e.Kind, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("httpc: %s: %v", e.Kind, e.Err)
	}
	return "httpc: " + string(e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }
