// Package query holds the list-view filters shared by every collection:
// case-insensitive substring search, status tabs with an "all" sentinel,
// and per-status counts for tab labels. Input order is always preserved.
package query

import "strings"

// All is the status sentinel that disables status filtering.
const All = "all"

// Search keeps items where any of fields(item) contains term, compared in
// lowercase. An empty or blank term keeps everything.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// ByStatus keeps items whose status equals status exactly. All (or an
// empty status) returns the full collection.
func ByStatus[T any, S ~string](items []T, status string, statusOf func(T) S) []T {
	if status == "" || status == All {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if string(statusOf(it)) == status {
			out = append(out, it)
		}
	}
	return out
}

// Filter is the AND of Search and ByStatus.
func Filter[T any, S ~string](items []T, term, status string, fields func(T) []string, statusOf func(T) S) []T {
	return ByStatus(Search(items, term, fields), status, statusOf)
}

// CountByStatus returns a count for every variant in statuses plus the All
// key holding len(items). Variants with no items are present with 0.
func CountByStatus[T any, S ~string](items []T, statuses []S, statusOf func(T) S) map[string]int {
	counts := make(map[string]int, len(statuses)+1)
	for _, s := range statuses {
		counts[string(s)] = 0
	}
	for _, it := range items {
		counts[string(statusOf(it))]++
	}
	counts[All] = len(items)
	return counts
}
