package extract

import (
	"github.com/shadowintel/shadowbot/internal/fetcher"
)

// textExtractor decodes plain text with charset detection. Undecodable bytes
// are substituted rather than failing.
type textExtractor struct{}

func (textExtractor) Extract(data []byte) (string, error) {
	return fetcher.DecodeText(data, "text/plain"), nil
}
