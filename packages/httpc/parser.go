package httpc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AtoraSuunva/httpc/packages/header"
)

// ParseResponse consumes an HTTP/1.1 response from r: status line, header
// block, then a body framed by exactly one of Content-Length or chunked
// transfer-coding.
//
// Declared lengths are trusted. An overlong Content-Length blocks until the
// peer closes (or a transport deadline fires) and yields a truncated body;
// an undersized one cuts a logically longer body short. A missing
// Content-Length on a non-chunked response means no body at all, even if
// more bytes sit on the stream.
func ParseResponse(r io.Reader) (*Response, error) {
	br := bufio.NewReader(r)

	status, err := readStatusLine(br)
	if err != nil {
		return nil, err
	}

	hs, contentLength, chunked, err := readHeaderBlock(br)
	if err != nil {
		return nil, err
	}

	var body []byte
	if chunked {
		body, err = readChunkedBody(br)
	} else {
		body, err = readSizedBody(br, contentLength)
	}
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: status, Headers: hs, Body: body}, nil
}

// readLine collects bytes up to and including the first CRLF and returns
// the line without the terminator. A stream that ends mid-line is a
// premature end of stream.
func readLine(br *bufio.Reader) (string, error) {
	var line []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", &ParseError{Kind: KindUnexpectedEOF, Err: io.ErrUnexpectedEOF}
			}
			return "", fmt.Errorf("httpc: read response: %w", err)
		}
		line = append(line, b)
		if bytes.HasSuffix(line, []byte("\r\n")) {
			return string(line[:len(line)-2]), nil
		}
	}
}

func readStatusLine(br *bufio.Reader) (int, error) {
	line, err := readLine(br)
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, &ParseError{Kind: KindMalformedStatusLine, Line: line}
	}
	status, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, &ParseError{Kind: KindMissingStatusCode, Line: line, Err: err}
	}
	return status, nil
}

// readHeaderBlock reads CRLF-terminated header lines until the bare CRLF
// ending the block, tracking the two headers that decide body framing.
func readHeaderBlock(br *bufio.Reader) (hs header.Headers, contentLength int, chunked bool, err error) {
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, 0, false, err
		}
		if line == "" {
			return hs, contentLength, chunked, nil
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, 0, false, &ParseError{Kind: KindMalformedHeaderLine, Line: line}
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if strings.EqualFold(name, "Content-Length") {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, 0, false, &ParseError{Kind: KindMalformedHeaderLine, Line: line, Err: err}
			}
			contentLength = n
		}
		if strings.EqualFold(name, "Transfer-Encoding") &&
			strings.Contains(strings.ToLower(value), "chunked") {
			chunked = true
		}

		// Later identical names are appended, not merged.
		hs.Add(name, value)
	}
}

// readSizedBody reads exactly n bytes. A stream that closes early returns
// what arrived; the declared length is an upper bound we trust.
func readSizedBody(br *bufio.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	body := make([]byte, n)
	read, err := io.ReadFull(br, body)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return body[:read], nil
	}
	if err != nil {
		return nil, fmt.Errorf("httpc: read body: %w", err)
	}
	return body, nil
}

// readChunkedBody decodes a chunked transfer-coded body: hex-size-prefixed
// chunks until a zero-size chunk. Chunk extensions are skipped unread; the
// trailer block after the final chunk is read and discarded.
func readChunkedBody(br *bufio.Reader) ([]byte, error) {
	var body []byte
	for {
		size, err := readChunkSize(br)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			if err := discardTrailers(br); err != nil {
				return nil, err
			}
			return body, nil
		}

		chunk := make([]byte, size)
		if _, err := io.ReadFull(br, chunk); err != nil {
			return nil, &ParseError{Kind: KindUnexpectedEOF, Err: err}
		}
		body = append(body, chunk...)

		// Consume the CRLF closing the chunk.
		if _, err := readLine(br); err != nil {
			return nil, err
		}
	}
}

// readChunkSize parses a chunk-size line: hex digits up to the first ';' or
// CR. Anything after ';' is a chunk extension we do not recognize, so it is
// skipped without being read.
func readChunkSize(br *bufio.Reader) (int, error) {
	line, err := readLine(br)
	if err != nil {
		return 0, err
	}

	sizeText := line
	if i := strings.IndexByte(sizeText, ';'); i >= 0 {
		sizeText = sizeText[:i]
	}
	sizeText = strings.TrimSpace(sizeText)

	size, perr := strconv.ParseInt(sizeText, 16, 64)
	if perr != nil || size < 0 {
		return 0, &ParseError{Kind: KindMalformedChunkSize, Line: line, Err: perr}
	}
	return int(size), nil
}

// discardTrailers reads trailer lines after the zero-size chunk until the
// blank line that ends them. Trailers are never exposed to the caller.
func discardTrailers(br *bufio.Reader) error {
	for {
		line, err := readLine(br)
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
	}
}
