package suggest

import (
	"strings"
	"sync"
)

// History is a bounded, deduplicated list of recent non-empty queries,
// most-recent-first. It is safe for concurrent use.
type History struct {
	mu       sync.Mutex
	capacity int
	queries  []string
}

// NewHistory creates a History keeping at most capacity queries.
func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

// Record pushes query to the front of the history. Empty queries are
// ignored; an already-present query (case-insensitive) moves to the front
// instead of duplicating.
func (h *History) Record(query string) {
	query = strings.TrimSpace(query)
	if query == "" || h.capacity <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	lower := strings.ToLower(query)
	for i, existing := range h.queries {
		if strings.ToLower(existing) == lower {
			h.queries = append(h.queries[:i], h.queries[i+1:]...)
			break
		}
	}

	h.queries = append([]string{query}, h.queries...)
	if len(h.queries) > h.capacity {
		h.queries = h.queries[:h.capacity]
	}
}

// Recent returns a copy of the history, most recent first.
func (h *History) Recent() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	recent := make([]string, len(h.queries))
	copy(recent, h.queries)
	return recent
}
