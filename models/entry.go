// Package models defines data structures shared across the catalog sync.
package models

import "time"

// Entry is a single catalog listing captured from a rendered page.
type Entry struct {
	Title       string `csv:"title" json:"title"`
	PlatformTag string `csv:"platform" json:"platform"`
	SourceURL   string `csv:"source_url" json:"source_url,omitempty"`
	StableID    string `csv:"stable_id" json:"stable_id,omitempty"`
	ReleaseDate string `csv:"release_date" json:"release_date,omitempty"`
}

// TraversalResult holds the outcome of one full pagination traversal.
type TraversalResult struct {
	Entries       []Entry
	PagesVisited  int
	ExpectedTotal int // 0 when no total-count probe matched
	Strategy      string
	Warnings      []string
	StartTime     time.Time
	EndTime       time.Time
}

// ComparisonResult is the three-way diff between the two catalogs.
// ToAdd and InSync hold source-side entries, ToRemove target-side ones.
type ComparisonResult struct {
	ToAdd    []Entry `json:"to_add"`
	ToRemove []Entry `json:"to_remove"`
	InSync   []Entry `json:"in_sync"`
}

// Summary provides per-bucket counts for a comparison result.
type Summary struct {
	Added    int
	Removed  int
	InSync   int
	Total    int
	Pending  int
	Balanced bool
}

// Summarize computes the summary counts for the result.
func (r *ComparisonResult) Summarize() Summary {
	added := len(r.ToAdd)
	removed := len(r.ToRemove)
	inSync := len(r.InSync)
	return Summary{
		Added:    added,
		Removed:  removed,
		InSync:   inSync,
		Total:    added + removed + inSync,
		Pending:  added + removed,
		Balanced: added == 0 && removed == 0,
	}
}
