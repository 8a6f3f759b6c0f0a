// Package collection implements the client-side list pipeline shared by the
// CLI and the TUI: filtering, sorting, pagination, bulk selection, and input
// debouncing over collections fetched from the backend.
package collection

import (
	"sort"
	"strings"
)

// FilterAll is the sentinel matching every record for status and kind filters.
const FilterAll = "all"

// SortDir is the sort direction of a view.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// Directives is the user-controlled state driving the pipeline.
type Directives struct {
	Search    string
	Status    string
	Kind      string
	SortField string
	SortDir   SortDir
	Page      int
	PageSize  int
}

// DefaultDirectives returns directives showing the first page of everything.
func DefaultDirectives() Directives {
	return Directives{
		Status:   FilterAll,
		Kind:     FilterAll,
		SortDir:  Asc,
		Page:     1,
		PageSize: 10,
	}
}

// Schema describes how the engine reads a record type: which fields are
// searchable, which classification fields it carries, and how to order it.
// Extractors may be nil when a record type has no such field.
type Schema[T any] struct {
	SearchFields func(T) []string
	Status       func(T) string
	Kind         func(T) string
	Compare      map[string]func(a, b T) int
}

// View is the derived output of one pipeline run. It is always a fresh value;
// the input slice is never reordered or mutated.
type View[T any] struct {
	Page          []T
	TotalFiltered int
	TotalPages    int
	StatusCounts  map[string]int
	KindCounts    map[string]int
}

// Apply runs the filter, sort, and paginate passes over records.
//
// Search matching is a plain case-insensitive substring test against the
// concatenated searchable fields. No diacritic folding is applied, so "Tram"
// does not match "Trạm"; callers must type the accented form.
//
// Apply does not clamp d.Page. When the filtered set shrinks below the
// requested page, the page comes back empty and the caller is expected to
// clamp with ClampPage and re-apply.
func (s Schema[T]) Apply(records []T, d Directives) View[T] {
	view := View[T]{
		StatusCounts: make(map[string]int),
		KindCounts:   make(map[string]int),
	}

	// Counts cover the unfiltered collection so filter-option labels can show
	// totals per category regardless of the active filter.
	for _, r := range records {
		if s.Status != nil {
			view.StatusCounts[s.Status(r)]++
		}
		if s.Kind != nil {
			view.KindCounts[s.Kind(r)]++
		}
	}

	filtered := s.filter(records, d)
	view.TotalFiltered = len(filtered)

	s.sortRecords(filtered, d)

	pageSize := d.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	view.TotalPages = (view.TotalFiltered + pageSize - 1) / pageSize

	start := (d.Page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	if start < len(filtered) {
		end := start + pageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		view.Page = filtered[start:end]
	} else {
		view.Page = []T{}
	}

	return view
}

func (s Schema[T]) filter(records []T, d Directives) []T {
	search := strings.ToLower(strings.TrimSpace(d.Search))
	out := make([]T, 0, len(records))

	for _, r := range records {
		if search != "" && !s.matchesSearch(r, search) {
			continue
		}
		if d.Status != "" && d.Status != FilterAll && s.Status != nil && s.Status(r) != d.Status {
			continue
		}
		if d.Kind != "" && d.Kind != FilterAll && s.Kind != nil && s.Kind(r) != d.Kind {
			continue
		}
		out = append(out, r)
	}

	return out
}

func (s Schema[T]) matchesSearch(r T, search string) bool {
	if s.SearchFields == nil {
		return false
	}
	for _, field := range s.SearchFields(r) {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// sortRecords stable-sorts in place. Descending order reverses the comparator
// rather than the sorted slice so that ties keep their original order.
// An unknown sort field leaves the input order untouched.
func (s Schema[T]) sortRecords(records []T, d Directives) {
	if d.SortField == "" {
		return
	}
	cmp, ok := s.Compare[d.SortField]
	if !ok {
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		if d.SortDir == Desc {
			return cmp(records[j], records[i]) < 0
		}
		return cmp(records[i], records[j]) < 0
	})
}

// ClampPage returns page constrained to [1, max(1, ceil(total/pageSize))].
// Callers must re-clamp whenever the filtered total or the page size changes.
func ClampPage(page, totalFiltered, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}

	maxPage := (totalFiltered + pageSize - 1) / pageSize
	if maxPage < 1 {
		maxPage = 1
	}

	if page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

// CompareStrings orders strings case-insensitively, falling back to a
// case-sensitive comparison so distinct values never compare equal.
func CompareStrings(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a, b)
}

// CompareInts orders integers ascending.
func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareInt64s orders 64-bit integers ascending without truncation on
// 32-bit builds.
func CompareInt64s(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareFloats orders floats ascending.
func CompareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
