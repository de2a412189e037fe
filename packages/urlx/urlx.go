// Package urlx handles the URL work the client needs around a redirect
// chain: defaulting a missing scheme, validating parsed URLs, and resolving
// a Location header against the URL of the previous hop.
package urlx

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var ErrBadURL = errors.New("urlx: invalid URL")

// Normalize defaults a scheme-less input to http. The engine only ever sees
// URLs that already carry a scheme.
func Normalize(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "http://" + raw
}

// Authority returns host:port for a URL, deriving the port from the scheme
// when the URL carries none: 80 for http, 443 for https, 80 otherwise.
func Authority(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	port := "80"
	if u.Scheme == "https" {
		port = "443"
	}
	return net.JoinHostPort(u.Hostname(), port)
}

// Parse parses and validates an absolute http or https URL.
func Parse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrBadURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrBadURL)
	}
	return u, nil
}

// Resolve computes the absolute URL a Location header points at, relative
// to the URL the response came from.
func Resolve(base *url.URL, location string) string {
	origin := base.Scheme + "://" + base.Host

	switch {
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return location

	case strings.HasPrefix(location, "/"):
		path, query := splitQuery(location)
		return origin + RemoveDotSegments(path) + query

	case strings.HasPrefix(location, "?"):
		// Query replaced in place, path untouched.
		return origin + RemoveDotSegments(base.EscapedPath()) + location

	default:
		// Relative reference: merge with the base path minus its final
		// segment, per RFC 3986 section 5.2.3.
		path, query := splitQuery(location)
		merged := mergePath(base.EscapedPath(), path)
		return origin + RemoveDotSegments(merged) + query
	}
}

func splitQuery(ref string) (path, query string) {
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

func mergePath(basePath, ref string) string {
	if i := strings.LastIndexByte(basePath, '/'); i >= 0 {
		return basePath[:i] + "/" + ref
	}
	return "/" + ref
}

// RemoveDotSegments collapses "." and ".." path segments. The result always
// starts with a single "/": normalizing ".." alone yields "/", never "".
// A ".." with nothing left to pop is a no-op. No percent-decoding happens.
func RemoveDotSegments(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}

	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case ".":
			// dropped
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, seg)
		}
	}
	return "/" + strings.Join(kept, "/")
}
