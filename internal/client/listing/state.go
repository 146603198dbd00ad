// Package listing holds the filter, sort and page cursor of one list screen
// and derives the query sent to the API from it.
package listing

import (
	"errors"
	"maps"
	"net/url"
	"slices"
	"strconv"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

var ErrInvalidSortOrder = errors.New("sort order must be asc or desc")

// State is the filter/pagination state of a list screen. The zero value is
// not usable; create one with New. State is not safe for concurrent use.
type State struct {
	filters    map[string]string
	sortBy     string
	sortOrder  string
	page       int
	pageSize   int
	totalPages int
}

// New creates a state on page 1. pageSize is fixed for the screen's lifetime.
func New(pageSize int) *State {
	if pageSize < 1 {
		pageSize = 1
	}
	return &State{
		filters:  map[string]string{},
		page:     1,
		pageSize: pageSize,
	}
}

// SetFilter sets one filter key; an empty value unsets it. The page cursor
// always returns to 1.
func (s *State) SetFilter(key, value string) {
	if value == "" {
		delete(s.filters, key)
	} else {
		s.filters[key] = value
	}
	s.page = 1
}

func (s *State) Filter(key string) string { return s.filters[key] }

// Filters returns a copy of the active filters.
func (s *State) Filters() map[string]string { return maps.Clone(s.filters) }

// SetSort changes the sort key and direction without touching the page.
func (s *State) SetSort(key, order string) error {
	if order != "" && order != SortAsc && order != SortDesc {
		return ErrInvalidSortOrder
	}
	s.sortBy = key
	s.sortOrder = order
	return nil
}

func (s *State) Sort() (key, order string) { return s.sortBy, s.sortOrder }

func (s *State) Page() int       { return s.page }
func (s *State) PageSize() int   { return s.pageSize }
func (s *State) TotalPages() int { return s.totalPages }

// SetPage moves the cursor to n. Outside [1, TotalPages] it is a no-op and
// reports false; while the page count is unknown any n >= 1 is accepted.
func (s *State) SetPage(n int) bool {
	if n < 1 || (s.totalPages > 0 && n > s.totalPages) {
		return false
	}
	s.page = n
	return true
}

func (s *State) Next() bool { return s.SetPage(s.page + 1) }
func (s *State) Prev() bool { return s.SetPage(s.page - 1) }

// Clear unsets every filter and returns to page 1. Sort is kept.
func (s *State) Clear() {
	clear(s.filters)
	s.page = 1
}

// Apply records the page count reported by the last fetch.
func (s *State) Apply(p Pagination) {
	pages := p.Pages
	if pages == 0 && p.Total > 0 {
		pages = TotalPages(p.Total, s.pageSize)
	}
	s.totalPages = pages
}

// Query returns the request parameters: non-empty filters plus page, limit
// and, when set, sortBy and sortOrder.
func (s *State) Query() url.Values {
	q := url.Values{}
	for _, k := range slices.Sorted(maps.Keys(s.filters)) {
		q.Set(k, s.filters[k])
	}
	q.Set("page", strconv.Itoa(s.page))
	q.Set("limit", strconv.Itoa(s.pageSize))
	if s.sortBy != "" {
		q.Set("sortBy", s.sortBy)
	}
	if s.sortOrder != "" {
		q.Set("sortOrder", s.sortOrder)
	}
	return q
}

// Encode serializes Query in sorted key order, so equal states encode to
// identical strings.
func (s *State) Encode() string {
	return s.Query().Encode()
}
