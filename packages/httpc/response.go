package httpc

import (
	"strings"

	"github.com/AtoraSuunva/httpc/packages/header"
)

// Response is one hop's parsed response. It is produced once, handed to the
// caller, and never cached or reused across hops.
type Response struct {
	StatusCode int
	Headers    header.Headers
	Body       []byte
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// Header returns the first value of a header, matched case-insensitively.
func (r *Response) Header(name string) string {
	return r.Headers.Get(name)
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect reports whether the status is in the redirection class.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// ShouldRedirect reports whether a response with this status is followed
// when redirects are enabled: any 3xx, plus 201 (Created responses carry a
// Location worth chasing, a quirk kept from the original tool).
func ShouldRedirect(status int) bool {
	return (status >= 300 && status < 400) || status == 201
}

// IsTextual reports whether the content type is one the CLI prints as text:
// any text/* type or JSON.
func (r *Response) IsTextual() bool {
	ct := r.ContentType()
	return strings.HasPrefix(ct, "text/") || ct == "application/json"
}
