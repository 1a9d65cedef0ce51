package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// visibleText strips script, style, and noscript subtrees and returns the
// remaining text nodes joined by single spaces.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	root := doc.Selection
	if body := doc.Find("body"); body.Length() > 0 {
		// Head content (title, meta) is not rendered text.
		root = body
	}
	return strings.Join(strings.Fields(root.Text()), " ")
}

// pageTitle returns the document title, if any.
func pageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// sameHostLinks returns the normalized hyperlink targets on the page whose
// host exactly matches rootHost, in document order, deduplicated. Relative
// hrefs are resolved against the page's own URL. Cross-domain links are
// never returned.
func sameHostLinks(doc *goquery.Document, pageURL *url.URL, rootHost string) []string {
	var links []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := pageURL.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		if !strings.EqualFold(abs.Hostname(), rootHost) {
			return
		}
		norm, err := NormalizeURL(abs.String())
		if err != nil {
			return
		}
		if _, dup := seen[norm]; dup {
			return
		}
		seen[norm] = struct{}{}
		links = append(links, norm)
	})
	return links
}
