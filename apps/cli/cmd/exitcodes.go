package cmd

import (
	"errors"

	"github.com/AtoraSuunva/httpc/packages/header"
	"github.com/AtoraSuunva/httpc/packages/httpc"
	"github.com/AtoraSuunva/httpc/packages/transport"
	"github.com/AtoraSuunva/httpc/packages/urlx"
)

// Exit codes for the httpc CLI
const (
	// ExitSuccess indicates the request completed
	ExitSuccess = 0

	// ExitError indicates a failure with no more specific code
	ExitError = 1

	// ExitHeaderError indicates a malformed -H header argument
	ExitHeaderError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a DNS, TCP, or TLS failure, or a redirect
	// chain that never terminated
	ExitNetworkError = 4

	// ExitProtocolError indicates a malformed response from the server
	ExitProtocolError = 5

	// ExitUsageError indicates invalid CLI usage, including a bad URL
	ExitUsageError = 64
)

func exitCodeFor(err error) int {
	var (
		headerErr *header.ParseError
		connErr   *transport.ConnectError
		parseErr  *httpc.ParseError
	)

	switch {
	case errors.As(err, &headerErr):
		return ExitHeaderError
	case errors.Is(err, urlx.ErrBadURL):
		return ExitUsageError
	case errors.Is(err, errConfig):
		return ExitConfigError
	case errors.As(err, &connErr), errors.Is(err, httpc.ErrTooManyRedirects):
		return ExitNetworkError
	case errors.As(err, &parseErr):
		return ExitProtocolError
	default:
		return ExitError
	}
}
