package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembleKeepsPersonaIntact(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("content ", 500)
	got := Assemble(Persona, ScanFraming("http://a.test/", "Title"), content)

	require.True(t, strings.HasPrefix(got, Persona), "persona is never truncated")
	require.Contains(t, got, "Target: http://a.test/")
	require.True(t, strings.HasSuffix(got, content), "content is appended verbatim")
}

func TestAssembleIsPureConcatenation(t *testing.T) {
	t.Parallel()

	got := Assemble("p", "f", "c")
	require.Equal(t, "p\n\nf\n\nc", got)
}

func TestScanFramingDefaultsTitle(t *testing.T) {
	t.Parallel()

	require.Contains(t, ScanFraming("http://a.test/", ""), "No Title")
}

func TestFramingsNameTheSource(t *testing.T) {
	t.Parallel()

	require.Contains(t, CrawlFraming("http://a.test/", 2), "http://a.test/")
	require.Contains(t, DocumentFraming("report.csv", "csv"), "report.csv")
}
