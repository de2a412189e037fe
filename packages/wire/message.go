// Package wire serializes a logical request into canonical HTTP/1.1 bytes.
//
// Building a message injects the defaults every request carries — Host,
// User-Agent, Connection: close, and Content-Length when a body exists —
// unless the caller already supplied them. A caller-supplied header always
// wins and is never duplicated.
package wire

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/AtoraSuunva/httpc/packages/header"
	"github.com/AtoraSuunva/httpc/packages/urlx"
)

// Request is the logical form of one hop's request. The protocol version is
// fixed at HTTP/1.1.
type Request struct {
	Method  string
	URL     *url.URL
	Headers header.Headers
	Body    []byte
}

// Message is the serialized form of a Request, used only for transmission
// and verbose display.
type Message struct {
	requestLine [3]string // method, path?query, version
	headers     header.Headers
	body        []byte
}

// Build computes the wire message for req. The header block is the caller's
// headers in insertion order followed by whichever defaults were missing.
func Build(req *Request, userAgent string) *Message {
	hs := req.Headers.Clone()

	if !hs.Contains("Host") {
		hs.Add("Host", urlx.Authority(req.URL))
	}
	if !hs.Contains("User-Agent") {
		hs.Add("User-Agent", userAgent)
	}
	// The connection is never reused, so always ask the server to close.
	if !hs.Contains("Connection") {
		hs.Add("Connection", "close")
	}
	if req.Body != nil && !hs.Contains("Content-Length") {
		hs.Add("Content-Length", strconv.Itoa(len(req.Body)))
	}

	return &Message{
		requestLine: [3]string{req.Method, req.URL.RequestURI(), "HTTP/1.1"},
		headers:     hs,
		body:        req.Body,
	}
}

// Headers returns the final header block, defaults included.
func (m *Message) Headers() header.Headers { return m.headers }

// Body returns the raw body bytes, nil when the request has none.
func (m *Message) Body() []byte { return m.body }

// Bytes returns the plain wire form: request line, header block, blank
// line, body.
func (m *Message) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(m.renderHead(nil))
	buf.Write(m.body)
	return buf.Bytes()
}

// Render returns the request line and header block styled for display. It
// differs from the plain form only in color codes, never in content or
// ordering. The body is not included; display of body bytes is the
// presentation layer's call.
func (m *Message) Render(st *Styles) string {
	return m.renderHead(st)
}

func (m *Message) renderHead(st *Styles) string {
	var sb strings.Builder

	method, path, version := m.requestLine[0], m.requestLine[1], m.requestLine[2]
	if st != nil {
		method = st.Method.Sprint(method)
		path = st.Path.Sprint(path)
		version = st.Version.Sprint(version)
	}
	fmt.Fprintf(&sb, "%s %s %s\r\n", method, path, version)

	for _, h := range m.headers {
		name, value := h.Name, h.Value
		if st != nil {
			name = st.HeaderName.Sprint(name)
			value = st.HeaderValue.Sprint(value)
		}
		fmt.Fprintf(&sb, "%s: %s\r\n", name, value)
	}

	sb.WriteString("\r\n")
	return sb.String()
}

// Styles colors the parts of a rendered message. Nil means plain text.
type Styles struct {
	Method      *color.Color
	Path        *color.Color
	Version     *color.Color
	HeaderName  *color.Color
	HeaderValue *color.Color
}

// Colorized is the palette used for verbose request display.
func Colorized() *Styles {
	return &Styles{
		Method:      color.New(color.FgGreen),
		Path:        color.New(color.FgBlue),
		Version:     color.New(color.FgHiBlack),
		HeaderName:  color.New(color.FgCyan),
		HeaderValue: color.New(color.FgMagenta),
	}
}
