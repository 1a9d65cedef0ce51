// Package crawler implements the bounded, deduplicated site crawler and the
// single-page scanner that feed the prompt assembler.
package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/fetcher"
	"github.com/shadowintel/shadowbot/internal/metrics"
)

// Text caps enforced before content reaches the prompt assembler, and the
// maximum number of same-host links followed from any single page.
const (
	CrawlTextCap = 7000
	ScanTextCap  = 3500
	BranchBound  = 5
)

// ScanResult is the outcome of a single-page scan.
type ScanResult struct {
	Title string
	Text  string
}

// Crawler drives depth-first traversal over a Fetcher. One Crawler is safe
// for concurrent use; each Crawl call owns its own VisitedSet.
type Crawler struct {
	fetch  agent.Fetcher
	logger *zap.Logger
}

// New builds a Crawler on top of the given fetcher.
func New(fetch agent.Fetcher, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{fetch: fetch, logger: logger}
}

// Scan fetches a single page and returns its title and visible text, capped
// at ScanTextCap runes. No links are followed.
func (c *Crawler) Scan(ctx context.Context, rawURL string) (ScanResult, error) {
	doc, _, err := c.fetchDocument(ctx, rawURL)
	if err != nil {
		return ScanResult{}, err
	}
	title := pageTitle(doc)
	text := visibleText(doc)
	return ScanResult{
		Title: title,
		Text:  agent.TruncateRunes(text, ScanTextCap),
	}, nil
}

// Crawl performs a depth-first traversal starting at rootURL with the given
// depth bound and returns the aggregated visible text of all pages visited,
// capped at CrawlTextCap runes. Sub-page fetch failures are absorbed into
// the text as markers; only a root fetch failure returns an error.
func (c *Crawler) Crawl(ctx context.Context, rootURL string, maxDepth int) (string, error) {
	root, err := url.Parse(rootURL)
	if err != nil || root.Hostname() == "" {
		return "", &agent.FetchError{URL: rootURL, Err: fmt.Errorf("invalid root url")}
	}

	visited := NewVisitedSet()
	text, err := c.crawlNode(ctx, rootURL, root.Hostname(), maxDepth, visited)
	if err != nil {
		return "", err
	}
	c.logger.Debug("crawl finished",
		zap.String("root", rootURL),
		zap.Int("pages", visited.Len()),
	)
	return agent.TruncateRunes(strings.TrimSpace(text), CrawlTextCap), nil
}

// crawlNode visits one URL and recurses into at most BranchBound same-host
// links, each with one less depth. A fetch failure is returned to the caller,
// which renders it as marker text for child nodes and as a hard error only
// at the root.
func (c *Crawler) crawlNode(ctx context.Context, rawURL, rootHost string, depth int, visited *VisitedSet) (string, error) {
	if depth <= 0 {
		return "", nil
	}

	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return "", &agent.FetchError{URL: rawURL, Err: err}
	}
	if !visited.Visit(norm) {
		return "", nil
	}

	doc, pageURL, err := c.fetchDocument(ctx, norm)
	if err != nil {
		return "", err
	}

	parts := []string{visibleText(doc)}

	links := sameHostLinks(doc, pageURL, rootHost)
	if len(links) > BranchBound {
		links = links[:BranchBound]
	}
	for _, link := range links {
		childText, err := c.crawlNode(ctx, link, rootHost, depth-1, visited)
		if err != nil {
			// Recorded as text, never propagated: a broken sub-page must not
			// abort its siblings or ancestors.
			parts = append(parts, fmt.Sprintf("[fetch failed: %s]", link))
			continue
		}
		if childText != "" {
			parts = append(parts, childText)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// fetchDocument fetches one URL and parses the decoded body. The returned
// URL is the page's final URL, used to resolve its relative links.
func (c *Crawler) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, *url.URL, error) {
	page, err := c.fetch.Fetch(ctx, rawURL)
	if err != nil {
		metrics.ObservePageFetch("error")
		return nil, nil, err
	}
	metrics.ObservePageFetch("ok")

	html := fetcher.DecodeText(page.Body, page.ContentType())
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, &agent.FetchError{URL: rawURL, Err: fmt.Errorf("parse html: %w", err)}
	}

	final := page.FinalURL
	if final == "" {
		final = rawURL
	}
	pageURL, err := url.Parse(final)
	if err != nil {
		pageURL, _ = url.Parse(rawURL)
	}
	return doc, pageURL, nil
}
