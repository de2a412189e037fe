package httpc

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtoraSuunva/httpc/packages/header"
	"github.com/AtoraSuunva/httpc/packages/urlx"
	"github.com/AtoraSuunva/httpc/packages/wire"
)

// scriptedServer answers one scripted response per connection, recording
// the raw request it received. Every connection is closed after its
// response, matching the Connection: close contract.
type scriptedServer struct {
	ln        net.Listener
	mu        sync.Mutex
	requests  []string
	responses []string
}

func newScriptedServer(t *testing.T, responses ...string) *scriptedServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &scriptedServer{ln: ln, responses: responses}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *scriptedServer) serve() {
	for _, resp := range s.responses {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		raw := readRequest(conn)

		s.mu.Lock()
		s.requests = append(s.requests, raw)
		s.mu.Unlock()

		_, _ = conn.Write([]byte(resp))
		conn.Close()
	}
}

// readRequest consumes a full request: head through the blank line, then
// Content-Length body bytes if any.
func readRequest(conn net.Conn) string {
	br := bufio.NewReader(conn)
	var sb strings.Builder
	contentLength := 0
	for {
		line, err := br.ReadString('\n')
		sb.WriteString(line)
		if err != nil {
			return sb.String()
		}
		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, _ = strconv.Atoi(strings.TrimSpace(v))
		}
		if line == "\r\n" {
			break
		}
	}
	if contentLength > 0 {
		body := make([]byte, contentLength)
		_, _ = io.ReadFull(br, body)
		sb.Write(body)
	}
	return sb.String()
}

func (s *scriptedServer) url(path string) string {
	return "http://" + s.ln.Addr().String() + path
}

func (s *scriptedServer) request(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[i]
}

func (s *scriptedServer) connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func TestClient_Get(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello")

	resp, err := NewClient().Do("GET", srv.url("/greet"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "hello", resp.BodyString())

	raw := srv.request(0)
	assert.True(t, strings.HasPrefix(raw, "GET /greet HTTP/1.1\r\n"), raw)
	assert.Contains(t, raw, "Connection: close\r\n")
	assert.Contains(t, raw, "User-Agent: "+DefaultUserAgent+"\r\n")
}

func TestClient_PostBody(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 201 Created\r\nContent-Length: 0\r\n\r\n")

	hs, err := header.Parse([]string{"Content-Type: application/json"})
	require.NoError(t, err)

	resp, err := NewClient().Do("POST", srv.url("/things"), hs, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	raw := srv.request(0)
	assert.Contains(t, raw, "Content-Length: 7\r\n")
	assert.True(t, strings.HasSuffix(raw, `{"a":1}`), raw)
}

func TestClient_FollowsRedirect(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 301 Moved Permanently\r\nLocation: /new\r\nContent-Length: 0\r\n\r\n",
		"HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")

	client := NewClient(WithFollowRedirects(true))
	resp, err := client.Do("GET", srv.url("/old"), nil, nil)
	require.NoError(t, err)

	// Exactly two transport connections; the terminal response is the 200.
	assert.Equal(t, 2, srv.connections())
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", resp.BodyString())
	assert.True(t, strings.HasPrefix(srv.request(1), "GET /new HTTP/1.1\r\n"))
}

func TestClient_RedirectDisabledReturnsRedirectResponse(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 301 Moved Permanently\r\nLocation: /new\r\nContent-Length: 0\r\n\r\n")

	resp, err := NewClient().Do("GET", srv.url("/old"), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.connections())
	assert.Equal(t, 301, resp.StatusCode)
	assert.Equal(t, "/new", resp.Header("Location"))
}

func TestClient_RedirectWithoutLocationIsTerminal(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 302 Found\r\nContent-Length: 0\r\n\r\n")

	resp, err := NewClient(WithFollowRedirects(true)).Do("GET", srv.url("/"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, 1, srv.connections())
}

func TestClient_RedirectKeepsMethodAndBody(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 302 Found\r\nLocation: /next\r\nContent-Length: 0\r\n\r\n",
		"HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")

	body := []byte("payload")
	_, err := NewClient(WithFollowRedirects(true)).Do("POST", srv.url("/first"), nil, body)
	require.NoError(t, err)

	// The second hop resends the POST and its body verbatim.
	second := srv.request(1)
	assert.True(t, strings.HasPrefix(second, "POST /next HTTP/1.1\r\n"), second)
	assert.True(t, strings.HasSuffix(second, "payload"), second)
}

func TestClient_FollowsRedirectOn201(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 201 Created\r\nLocation: /made\r\nContent-Length: 0\r\n\r\n",
		"HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\nmade")

	resp, err := NewClient(WithFollowRedirects(true)).Do("POST", srv.url("/things"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "made", resp.BodyString())
}

func TestClient_TooManyRedirects(t *testing.T) {
	loop := "HTTP/1.1 301 Moved Permanently\r\nLocation: /loop\r\nContent-Length: 0\r\n\r\n"
	srv := newScriptedServer(t, loop, loop, loop)

	_, err := NewClient(WithFollowRedirects(true), WithMaxRedirects(2)).
		Do("GET", srv.url("/loop"), nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	assert.Equal(t, 3, srv.connections())
}

func TestClient_BadURL(t *testing.T) {
	_, err := NewClient().Do("GET", "ftp://example.com/x", nil, nil)
	assert.ErrorIs(t, err, urlx.ErrBadURL)
}

func TestClient_HopFuncSeesEachHop(t *testing.T) {
	srv := newScriptedServer(t,
		"HTTP/1.1 301 Moved Permanently\r\nLocation: /b\r\nContent-Length: 0\r\n\r\n",
		"HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")

	var hops []int
	var messages []*wire.Message
	client := NewClient(
		WithFollowRedirects(true),
		WithHopFunc(func(hop int, msg *wire.Message) {
			hops = append(hops, hop)
			messages = append(messages, msg)
		}),
	)

	_, err := client.Do("GET", srv.url("/a"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, hops)
	require.Len(t, messages, 2)
	assert.Contains(t, string(messages[1].Bytes()), "GET /b HTTP/1.1")
}
