package crawler

import "sync"

// VisitedSet tracks normalized URLs already fetched during one crawl
// invocation. It is shared across the whole recursion tree, not per branch,
// which is what prevents repeat fetches on cyclic link graphs. The mutex
// keeps check-and-mark exclusive should sibling branches ever run in
// parallel.
type VisitedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisitedSet creates an empty set scoped to a single crawl.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Visit marks url as visited and reports whether this call was the first to
// do so.
func (v *VisitedSet) Visit(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[url]; ok {
		return false
	}
	v.seen[url] = struct{}{}
	return true
}

// Len returns the number of URLs marked visited.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
