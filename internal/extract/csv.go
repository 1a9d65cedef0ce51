package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// csvExtractor renders a CSV file as a readable text dump, one "a | b | c"
// line per record. Malformed rows are skipped rather than failing the file.
type csvExtractor struct{}

func (csvExtractor) Extract(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var lines []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}
		lines = append(lines, renderRow(record))
	}
	return strings.Join(lines, "\n"), nil
}

func renderRow(fields []string) string {
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	return strings.Join(trimmed, " | ")
}
