// Package httpc is the request/response engine: it serializes requests,
// sends them over a fresh TCP/TLS connection per hop, parses the raw
// response bytes, and walks redirect chains. It never delegates to a
// full-service HTTP client.
package httpc

import (
	"fmt"
	"net/url"

	"github.com/AtoraSuunva/httpc/packages/header"
	"github.com/AtoraSuunva/httpc/packages/transport"
	"github.com/AtoraSuunva/httpc/packages/urlx"
	"github.com/AtoraSuunva/httpc/packages/wire"
)

const (
	// Version is the client identity baked into the default User-Agent.
	Version = "0.1.0"

	// DefaultUserAgent goes out on every request that does not override it.
	DefaultUserAgent = "httpc/" + Version

	// DefaultMaxRedirects caps a redirect chain; a cycle would otherwise
	// loop forever.
	DefaultMaxRedirects = 10
)

// HopFunc observes the wire message about to be sent on each hop. Hops are
// numbered from zero. The engine itself never prints; this is how the
// presentation layer shows outgoing requests at high verbosity.
type HopFunc func(hop int, msg *wire.Message)

type Client struct {
	dialer          *transport.Dialer
	followRedirects bool
	maxRedirects    int
	userAgent       string
	onHop           HopFunc
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		dialer:       transport.NewDialer(),
		maxRedirects: DefaultMaxRedirects,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithFollowRedirects enables chasing Location headers on redirect-class
// (and 201) responses.
func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirects = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithDialer(d *transport.Dialer) ClientOption {
	return func(c *Client) {
		c.dialer = d
	}
}

func WithHopFunc(fn HopFunc) ClientOption {
	return func(c *Client) {
		c.onHop = fn
	}
}

// Do performs a request and returns the terminal response.
//
// Each hop owns one fresh connection: build, dial, send, parse, close. When
// redirects are enabled, a response whose status ShouldRedirect and that
// carries a Location header starts another hop at the resolved URL with the
// same method, headers, and body — a POST body is resent verbatim even on
// 301/302/303, on purpose, unlike browsers that downgrade to GET. A failing
// hop aborts the whole chain; there are no retries.
func (c *Client) Do(method, rawURL string, headers header.Headers, body []byte) (*Response, error) {
	u, err := urlx.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	for hop := 0; ; hop++ {
		req := &wire.Request{
			Method:  method,
			URL:     u,
			Headers: headers,
			Body:    body,
		}
		msg := wire.Build(req, c.userAgent)
		if c.onHop != nil {
			c.onHop(hop, msg)
		}

		resp, err := c.roundTrip(u, msg)
		if err != nil {
			return nil, err
		}

		if !c.followRedirects || !ShouldRedirect(resp.StatusCode) {
			return resp, nil
		}
		location := resp.Header("Location")
		if location == "" {
			return resp, nil
		}
		if hop >= c.maxRedirects {
			return nil, fmt.Errorf("%w: stopped after %d redirects", ErrTooManyRedirects, c.maxRedirects)
		}

		u, err = urlx.Parse(urlx.Resolve(u, location))
		if err != nil {
			return nil, err
		}
	}
}

// roundTrip runs one hop on its own connection. The connection is released
// as soon as the response is parsed or the hop errors.
func (c *Client) roundTrip(u *url.URL, msg *wire.Message) (*Response, error) {
	conn, err := c.dialer.Dial(u)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.Write(msg.Bytes()); err != nil {
		return nil, fmt.Errorf("httpc: send request: %w", err)
	}

	return ParseResponse(conn)
}
