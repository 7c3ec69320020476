package storage

import (
	"github.com/sahilm/fuzzy"
)

// historySource adapts the archive to fuzzy matching over titles.
type historySource []HistoryEntry

func (h historySource) String(i int) string { return h[i].Title }
func (h historySource) Len() int            { return len(h) }

// SearchHistory fuzzy-matches archived sessions by title, best match
// first. An empty query returns the archive unchanged.
func SearchHistory(entries []HistoryEntry, query string) []HistoryEntry {
	if query == "" {
		return entries
	}

	matches := fuzzy.FindFrom(query, historySource(entries))
	results := make([]HistoryEntry, len(matches))
	for i, m := range matches {
		results[i] = entries[m.Index]
	}
	return results
}
