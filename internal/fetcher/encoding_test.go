package fetcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTextUTF8(t *testing.T) {
	t.Parallel()

	got := DecodeText([]byte("héllo wörld"), "text/html; charset=utf-8")
	require.Equal(t, "héllo wörld", got)
}

func TestDecodeTextLatin1(t *testing.T) {
	t.Parallel()

	// "café" encoded as ISO-8859-1: 0xE9 is é.
	body := []byte{'c', 'a', 'f', 0xE9}
	got := DecodeText(body, "text/plain; charset=iso-8859-1")
	require.Equal(t, "café", got)
}

func TestDecodeTextMetaCharset(t *testing.T) {
	t.Parallel()

	body := append([]byte(`<html><head><meta charset="iso-8859-1"></head><body>caf`), 0xE9)
	got := DecodeText(body, "")
	require.Contains(t, got, "café")
}

func TestDecodeTextUndeterminedFallsBack(t *testing.T) {
	t.Parallel()

	// Bare bytes with no declaration: the windows-1252 fallback still
	// produces a valid UTF-8 string without failing.
	got := DecodeText([]byte{0x93, 'h', 'i', 0x94}, "")
	require.Contains(t, got, "hi")
}
