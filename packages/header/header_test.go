package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	hs, err := Parse([]string{"X-Foo: bar"})
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "X-Foo", hs[0].Name)
	assert.Equal(t, "bar", hs[0].Value)
}

func TestParse_TrimsWhitespace(t *testing.T) {
	hs, err := Parse([]string{"  Accept :  text/html  "})
	require.NoError(t, err)
	assert.Equal(t, Headers{{Name: "Accept", Value: "text/html"}}, hs)
}

func TestParse_SplitsOnFirstColonOnly(t *testing.T) {
	hs, err := Parse([]string{"Referer: http://example.com/a"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a", hs[0].Value)
}

func TestParse_KeepsDuplicatesInOrder(t *testing.T) {
	hs, err := Parse([]string{"Accept: text/html", "Accept: application/json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"text/html", "application/json"}, hs.Values("Accept"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no colon", "no-colon-here", ErrMissingColon},
		{"space in name", "Bad Name: x", ErrInvalidName},
		{"empty name", ": x", ErrInvalidName},
		{"non-ascii value", "X-Foo: caf\xc3\xa9", ErrNonASCIIValue},
		{"control byte in value", "X-Foo: a\x01b", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]string{tt.input})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.input, perr.Input)
		})
	}
}

func TestParse_FirstBadInputAborts(t *testing.T) {
	_, err := Parse([]string{"Good: yes", "bad"})
	assert.ErrorIs(t, err, ErrMissingColon)
}

func TestHeaders_CaseInsensitiveLookup(t *testing.T) {
	var hs Headers
	hs.Add("Content-Type", "text/plain")

	assert.Equal(t, "text/plain", hs.Get("content-type"))
	assert.Equal(t, "text/plain", hs.Get("CONTENT-TYPE"))
	assert.True(t, hs.Contains("content-TYPE"))
	assert.False(t, hs.Contains("Content-Length"))
	assert.Equal(t, "", hs.Get("Content-Length"))
}

func TestHeaders_CasePreservedForDisplay(t *testing.T) {
	hs, err := Parse([]string{"x-wEiRd-CaSe: v"})
	require.NoError(t, err)
	assert.Equal(t, "x-wEiRd-CaSe", hs[0].Name)
}
