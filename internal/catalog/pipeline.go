// Package catalog merges the two book sources and produces the list a user
// actually sees: local rows first, remote results after, filtered and
// sorted in memory. State is recomputed from scratch per request; nothing
// is cached between calls.
package catalog

import (
	"sort"
	"strings"

	"bookclub/internal/entity"
)

// Filter is the user-facing filter/sort state for one page view.
type Filter struct {
	// Title is matched as a case-insensitive substring; empty matches all.
	Title string
	// MinRating keeps entries with AverageRating >= this threshold.
	MinRating float64
	// Status keeps entries whose status equals this value exactly. Empty or
	// "ALL" disables the filter; entries with no status never match a
	// specific value.
	Status string
	// Ascending flips the default descending rating sort.
	Ascending bool
}

// Merge concatenates the two normalized lists, local first. No
// de-duplication happens across sources: a book present in both appears
// twice. The identity spaces are separate and are deliberately not
// reconciled by title match.
func Merge(local, remote []entity.Book) []entity.Book {
	merged := make([]entity.Book, 0, len(local)+len(remote))
	merged = append(merged, local...)
	merged = append(merged, remote...)
	return merged
}

// Apply filters then sorts. The sort is stable: equal ratings keep their
// pre-sort relative order (local before remote, then fetch order).
func Apply(books []entity.Book, f Filter) []entity.Book {
	out := FilterBooks(books, f)
	sortByRating(out, f.Ascending)
	return out
}

// FilterBooks filters without reordering.
func FilterBooks(books []entity.Book, f Filter) []entity.Book {
	out := make([]entity.Book, 0, len(books))
	for _, b := range books {
		if f.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

func (f Filter) matches(b entity.Book) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.Title)) {
		return false
	}
	if b.AverageRating < f.MinRating {
		return false
	}
	if f.Status != "" && f.Status != entity.StatusFilterAll && b.Status != f.Status {
		return false
	}
	return true
}

// TopN ranks the merged set by rating, descending, and truncates to the
// first n entries. Ranking happens on the unfiltered set: user filters
// apply to the truncated slice afterwards, so a book ranked below n never
// surfaces in a top view even when it would pass the active filters.
func TopN(books []entity.Book, n int) []entity.Book {
	ranked := make([]entity.Book, len(books))
	copy(ranked, books)
	sortByRating(ranked, false)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortByRating(books []entity.Book, ascending bool) {
	sort.SliceStable(books, func(i, j int) bool {
		if ascending {
			return books[i].AverageRating < books[j].AverageRating
		}
		return books[i].AverageRating > books[j].AverageRating
	})
}
