package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases host", "http://Example.COM/Path", "http://example.com/Path"},
		{"strips default http port", "http://example.com:80/x", "http://example.com/x"},
		{"strips default https port", "https://example.com:443/x", "https://example.com/x"},
		{"keeps custom port", "http://example.com:8080/x", "http://example.com:8080/x"},
		{"drops fragment", "http://example.com/x#section", "http://example.com/x"},
		{"sorts query params", "http://example.com/x?b=2&a=1", "http://example.com/x?a=1&b=2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeURL(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestVisitedSetVisitOnce(t *testing.T) {
	t.Parallel()

	v := NewVisitedSet()
	require.True(t, v.Visit("http://example.com/"))
	require.False(t, v.Visit("http://example.com/"))
	require.True(t, v.Visit("http://example.com/other"))
	require.Equal(t, 2, v.Len())
}
