// Package report derives every dashboard statistic from a snapshot of
// documents. Filtering and aggregation are pure functions: they are
// recomputed from scratch on every data or filter change and hold no
// state between calls.
package report

import (
	"sort"
	"strconv"
	"strings"

	"facturation/internal/core"
)

// FilterSpec selects the documents feeding the dashboard. Predicates
// are combined by logical AND. Empty Type/Status/Query match everything.
type FilterSpec struct {
	Year   int
	Type   core.DocumentType
	Status core.DocumentStatus
	Query  string
}

// Matches reports whether a single document satisfies the spec.
// A document with a zero date has year 0 and never matches a real year.
func (s FilterSpec) Matches(d core.Document) bool {
	if d.Date.Year() != s.Year {
		return false
	}
	if s.Type != "" && d.Type != s.Type {
		return false
	}
	if s.Status != "" && d.Status != s.Status {
		return false
	}
	if s.Query != "" {
		q := strings.ToLower(s.Query)
		if !strings.Contains(strings.ToLower(d.DisplayClient()), q) &&
			!strings.Contains(strings.ToLower(d.Number), q) {
			return false
		}
	}
	return true
}

// Key returns a stable cache key for the spec.
func (s FilterSpec) Key() string {
	return strconv.Itoa(s.Year) + "|" + string(s.Type) + "|" + string(s.Status) + "|" + strings.ToLower(strings.TrimSpace(s.Query))
}

// Filter returns the matching subset, preserving input order.
func Filter(docs []core.Document, spec FilterSpec) []core.Document {
	out := make([]core.Document, 0, len(docs))
	for _, d := range docs {
		if spec.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

// AvailableYears returns the distinct years across the unfiltered
// collection, sorted descending. It feeds the year selector and is
// independent of the current filters. Zero dates contribute nothing.
func AvailableYears(docs []core.Document) []int {
	seen := make(map[int]struct{})
	for _, d := range docs {
		y := d.Date.Year()
		if y == 0 {
			continue
		}
		seen[y] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
