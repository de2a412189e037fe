// Package transport turns a URL into a connected byte stream: plain TCP for
// http, a TLS client session for https. Callers get the same net.Conn
// either way and never branch on scheme again.
package transport

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/AtoraSuunva/httpc/packages/urlx"
)

// Phase identifies where a connection attempt failed.
type Phase string

const (
	PhaseDNS     Phase = "dns"
	PhaseConnect Phase = "connect"
	PhaseTLS     Phase = "tls"
)

// ConnectError wraps a failure to establish the stream.
type ConnectError struct {
	Phase     Phase
	Authority string
	Err       error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("transport: %s failed for %s: %v", e.Phase, e.Authority, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

type Dialer struct {
	timeout time.Duration
}

type DialerOption func(*Dialer)

// WithTimeout bounds DNS resolution, TCP connect, and the TLS handshake.
// Zero means no bound, which is the default.
func WithTimeout(d time.Duration) DialerOption {
	return func(dl *Dialer) {
		dl.timeout = d
	}
}

func NewDialer(opts ...DialerOption) *Dialer {
	d := &Dialer{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial resolves the URL's authority, connects to the first address that
// accepts, and wraps the connection in TLS when the scheme is https. The
// TLS session is validated against the URL's host name.
func (d *Dialer) Dial(u *url.URL) (net.Conn, error) {
	authority := urlx.Authority(u)

	host, port, err := net.SplitHostPort(authority)
	if err != nil {
		return nil, &ConnectError{Phase: PhaseDNS, Authority: authority, Err: err}
	}

	addrs, err := net.LookupHost(host)
	if err != nil {
		return nil, &ConnectError{Phase: PhaseDNS, Authority: authority, Err: err}
	}

	conn, err := d.connectFirst(addrs, port)
	if err != nil {
		return nil, &ConnectError{Phase: PhaseConnect, Authority: authority, Err: err}
	}

	// An optional deadline covers all IO on the hop. Off by default: with no
	// deadline an overlong Content-Length blocks until the peer closes.
	if d.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(d.timeout))
	}

	if u.Scheme != "https" {
		return conn, nil
	}

	tlsConn := tls.Client(conn, &tls.Config{ServerName: u.Hostname()})
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, &ConnectError{Phase: PhaseTLS, Authority: authority, Err: err}
	}
	return tlsConn, nil
}

func (d *Dialer) connectFirst(addrs []string, port string) (net.Conn, error) {
	var lastErr error
	for _, addr := range addrs {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(addr, port), d.timeout)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no addresses to dial")
	}
	return nil, lastErr
}
