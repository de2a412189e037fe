// Package output renders requests and responses for the terminal. The
// engine never prints; everything user-facing funnels through here.
package output

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/AtoraSuunva/httpc/packages/httpc"
	"github.com/AtoraSuunva/httpc/packages/wire"
)

// Verbosity levels. Silent prints only the body; Verbose adds the status
// line and headers; VeryVerbose also shows the outgoing request per hop.
const (
	Silent      = 0
	Verbose     = 1
	VeryVerbose = 2
)

// ColorMode mirrors the --color flag.
type ColorMode string

const (
	ColorAlways ColorMode = "always"
	ColorAuto   ColorMode = "auto"
	ColorNever  ColorMode = "never"
)

type Printer struct {
	writer    io.Writer
	verbosity int
	styles    *wire.Styles
}

type PrinterOption func(*Printer)

func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		writer: os.Stdout,
		styles: wire.Colorized(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.writer = w
	}
}

func WithVerbosity(v int) PrinterOption {
	return func(p *Printer) {
		p.verbosity = v
	}
}

// WithColorMode resolves the tri-state flag. Auto keeps the color package's
// own terminal detection.
func WithColorMode(mode ColorMode) PrinterOption {
	return func(p *Printer) {
		switch mode {
		case ColorAlways:
			color.NoColor = false
		case ColorNever:
			color.NoColor = true
		}
	}
}

// HopFunc returns the per-hop observer wired into the client, or nil when
// the verbosity never shows outgoing requests.
func (p *Printer) HopFunc() httpc.HopFunc {
	if p.verbosity < VeryVerbose {
		return nil
	}
	marker := color.New(color.FgYellow)
	return func(hop int, msg *wire.Message) {
		fmt.Fprintf(p.writer, "%s\n%s", marker.Sprint("→ Sending"), msg.Render(p.styles))
		if body := msg.Body(); len(body) > 0 {
			if utf8.Valid(body) {
				fmt.Fprintf(p.writer, "%s\n\n", body)
			} else {
				fmt.Fprintln(p.writer, "[Invalid UTF-8]")
			}
		}
	}
}

// PrintResponse renders the terminal response. At Verbose and up the status
// line and headers precede the body. The body itself prints only for
// textual content types; binary payloads are summarized, and -o output is
// unaffected by any of this.
func (p *Printer) PrintResponse(resp *httpc.Response) {
	if p.verbosity >= VeryVerbose {
		fmt.Fprintln(p.writer, color.New(color.FgYellow).Sprint("← Received"))
	}
	if p.verbosity >= Verbose {
		p.printHead(resp)
	}
	p.printBody(resp)
}

func (p *Printer) printHead(resp *httpc.Response) {
	fmt.Fprintf(p.writer, "HTTP/1.1 %s\n", p.statusText(resp.StatusCode))
	for _, h := range resp.Headers {
		name, value := h.Name, h.Value
		if p.styles != nil {
			name = p.styles.HeaderName.Sprint(name)
			value = p.styles.HeaderValue.Sprint(value)
		}
		fmt.Fprintf(p.writer, "%s: %s\n", name, value)
	}
	fmt.Fprintln(p.writer)
}

func (p *Printer) statusText(code int) string {
	text := fmt.Sprintf("%d", code)
	if reason := http.StatusText(code); reason != "" {
		text += " " + reason
	}

	var c *color.Color
	switch {
	case code >= 200 && code < 300:
		c = color.New(color.FgGreen)
	case code >= 300 && code < 400:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	return c.Sprint(text)
}

func (p *Printer) printBody(resp *httpc.Response) {
	switch {
	case resp.ContentType() == "":
		fmt.Fprintln(p.writer, "No content type header, not displaying anything.")
	case resp.IsTextual():
		fmt.Fprintln(p.writer, resp.BodyString())
	default:
		fmt.Fprintln(p.writer, "Binary data, not displaying.")
	}
}

// Query extracts a JSON path from the response body and prints the result
// in place of the body.
func (p *Printer) Query(resp *httpc.Response, path string) error {
	if !gjson.ValidBytes(resp.Body) {
		return fmt.Errorf("output: response body is not valid JSON")
	}
	result := gjson.GetBytes(resp.Body, path)
	if !result.Exists() {
		return fmt.Errorf("output: no value at path %q", path)
	}
	if p.verbosity >= Verbose {
		p.printHead(resp)
	}
	fmt.Fprintln(p.writer, result.String())
	return nil
}

// SaveBody writes the raw body bytes to a file, independent of what the
// console shows.
func SaveBody(path string, resp *httpc.Response) error {
	if err := os.WriteFile(path, resp.Body, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}
