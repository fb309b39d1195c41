// Package listquery implements the client-side list derivation used by every
// collection view: free-text search, status filtering, column sorting, and
// fixed-size pagination. It is a pure function of its inputs and is shared by
// all resource types instead of being duplicated per view.
package listquery

import (
	"slices"
	"strings"
	"time"
)

// DefaultPageSize is the number of records shown per page.
const DefaultPageSize = 10

// StatusAll is the sentinel status filter value meaning "no status constraint".
const StatusAll = "all"

// Compare orders two records by a single field. It returns a negative number
// when a sorts before b, zero when they are equal, and a positive number
// otherwise.
type Compare[T any] func(a, b T) int

// ByString builds a comparator over a string field using case-folded ordering.
func ByString[T any](f func(T) string) Compare[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(f(a)), strings.ToLower(f(b)))
	}
}

// ByNumber builds a comparator over a numeric field. Amounts and counts must
// use this instead of lexical comparison.
func ByNumber[T any](f func(T) float64) Compare[T] {
	return func(a, b T) int {
		av, bv := f(a), f(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
}

// ByTime builds a comparator over a timestamp field.
func ByTime[T any](f func(T) time.Time) Compare[T] {
	return func(a, b T) int {
		return f(a).Compare(f(b))
	}
}

// Fields describes how the derivation reads records of type T.
type Fields[T any] struct {
	// Search lists the accessors matched by the free-text filter. A record
	// matches when the term appears (case-insensitively) in ANY of them.
	Search []func(T) string

	// Status returns the record's status value for exact-match filtering.
	Status func(T) string

	// Sort maps sort keys to comparators. Unknown keys leave input order.
	Sort map[string]Compare[T]
}

// Query holds the view state driving a single derivation.
type Query struct {
	Search   string
	Status   string // StatusAll (or empty) disables status filtering
	SortKey  string
	Desc     bool
	Page     int // 1-based; values below 1 are treated as page 1
	PageSize int // 0 means DefaultPageSize
}

// Toggle returns the query's next sort state after the user selects key:
// selecting the active key flips the direction, selecting a new key resets
// to ascending.
func (q Query) Toggle(key string) Query {
	if q.SortKey == key {
		q.Desc = !q.Desc
		return q
	}
	q.SortKey = key
	q.Desc = false
	return q
}

// Result is one derived page plus the totals the view renders alongside it.
type Result[T any] struct {
	Items      []T
	Total      int // records passing both filters
	TotalPages int
	Page       int
}

// Apply filters, sorts, and paginates items according to q. The input slice
// is never mutated. An out-of-range page yields an empty Items slice, not an
// error.
func Apply[T any](items []T, q Query, f Fields[T]) Result[T] {
	filtered := filter(items, q, f)

	if cmp, ok := f.Sort[q.SortKey]; ok && q.SortKey != "" {
		sorted := slices.Clone(filtered)
		if q.Desc {
			slices.SortStableFunc(sorted, func(a, b T) int { return -cmp(a, b) })
		} else {
			slices.SortStableFunc(sorted, cmp)
		}
		filtered = sorted
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Items:      filtered[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

func filter[T any](items []T, q Query, f Fields[T]) []T {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	wantStatus := q.Status != "" && q.Status != StatusAll

	out := make([]T, 0, len(items))
	for _, it := range items {
		if wantStatus && f.Status != nil && f.Status(it) != q.Status {
			continue
		}
		if term != "" && !matches(it, term, f.Search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches[T any](it T, term string, fields []func(T) string) bool {
	for _, get := range fields {
		if strings.Contains(strings.ToLower(get(it)), term) {
			return true
		}
	}
	return false
}
