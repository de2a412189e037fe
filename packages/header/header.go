// Package header parses and validates "key:value" header strings into
// ordered name/value pairs.
//
// Names follow the HTTP token grammar; values must be visible ASCII.
// Lookups are case-insensitive, display is case-preserving, and duplicate
// names are kept in input order rather than merged.
package header

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColon  = errors.New("header: missing ':' separator")
	ErrInvalidName   = errors.New("header: name is not a valid token")
	ErrInvalidValue  = errors.New("header: value contains control bytes")
	ErrNonASCIIValue = errors.New("header: value contains non-ASCII bytes")
)

// ParseError reports which input string failed and why.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Header is a single name/value pair.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered multimap. Insertion order is preserved for
// serialization; lookups compare names case-insensitively.
type Headers []Header

// Add appends a header, keeping any existing entries with the same name.
func (hs *Headers) Add(name, value string) {
	*hs = append(*hs, Header{Name: name, Value: value})
}

// Get returns the first value for name, or "" if absent.
func (hs Headers) Get(name string) string {
	for _, h := range hs {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Values returns every value for name, in insertion order.
func (hs Headers) Values(name string) []string {
	var out []string
	for _, h := range hs {
		if strings.EqualFold(h.Name, name) {
			out = append(out, h.Value)
		}
	}
	return out
}

// Contains reports whether at least one header with name exists.
func (hs Headers) Contains(name string) bool {
	for _, h := range hs {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (hs Headers) Clone() Headers {
	out := make(Headers, len(hs))
	copy(out, hs)
	return out
}

// Parse converts raw "key:value" strings into Headers. Each string is split
// on the first colon only; both sides are trimmed of surrounding whitespace.
// The first invalid input aborts the parse.
func Parse(raw []string) (Headers, error) {
	hs := make(Headers, 0, len(raw))
	for _, s := range raw {
		name, value, found := strings.Cut(s, ":")
		if !found {
			return nil, &ParseError{Input: s, Err: ErrMissingColon}
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if !validToken(name) {
			return nil, &ParseError{Input: s, Err: ErrInvalidName}
		}
		if err := checkValue(value); err != nil {
			return nil, &ParseError{Input: s, Err: err}
		}
		hs.Add(name, value)
	}
	return hs, nil
}

// Token characters per RFC 7230 section 3.2.6.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

func validToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// Values may contain visible ASCII plus space and horizontal tab. Control
// bytes and multi-byte encodings are rejected outright.
func checkValue(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c >= 0x80 {
			return ErrNonASCIIValue
		}
		if c < 0x21 || c == 0x7f {
			return ErrInvalidValue
		}
	}
	return nil
}
