// Package prompt assembles completion prompts from the fixed persona block,
// a task-specific framing line, and content already capped upstream.
package prompt

import "fmt"

// Assemble concatenates persona, framing, and content. It is a pure
// function: no I/O, no truncation. The persona block is never cut; upstream
// extractors and the crawler are responsible for capping content.
func Assemble(persona, framing, content string) string {
	return persona + "\n\n" + framing + "\n\n" + content
}

// ScanFraming frames a single-page scan for summarization.
func ScanFraming(url, title string) string {
	if title == "" {
		title = "No Title"
	}
	return fmt.Sprintf("Target: %s\n\nTitle: %s\n\nContent:", url, title)
}

// CrawlFraming frames a multi-page crawl for summarization.
func CrawlFraming(url string, depth int) string {
	return fmt.Sprintf("Mission: site reconnaissance of %s (depth %d). Aggregated page content follows:", url, depth)
}

// DocumentFraming frames an uploaded document for summarization.
func DocumentFraming(filename, format string) string {
	return fmt.Sprintf("Mission: document analysis of %s (%s). Extracted content follows:", filename, format)
}
