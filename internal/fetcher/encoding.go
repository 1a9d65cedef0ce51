// Package fetcher provides page fetching building blocks shared by the
// crawler: charset decoding and headless escalation around a base fetcher.
package fetcher

import (
	"bytes"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// DecodeText converts a response body to UTF-8 using best-effort charset
// detection against the body and Content-Type header. When the encoding
// cannot be determined the windows-1252 fallback chosen by the detector is
// used; undecodable bytes are substituted rather than failing.
func DecodeText(body []byte, contentType string) string {
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
	if err != nil {
		// A decoder fault leaves us with the raw bytes, which Go strings
		// tolerate; downstream text handling replaces invalid sequences.
		return string(body)
	}
	return string(decoded)
}
