// Package view holds the front-end-independent state and presentation rules
// of the news page: which query is current, whether a fetch is in flight, and
// how articles turn into cards.
package view

import (
	"sync"

	"newshub/internal/domain/entity"
)

// Ticket identifies one fetch. Only the most recently issued ticket may
// change the article list.
type Ticket uint64

// State is the per-session view state. It is safe for concurrent use so a
// fetch can complete on a different goroutine than the one that began it.
type State struct {
	mu       sync.Mutex
	articles []entity.Article
	loading  bool
	search   string
	category entity.Category
	seq      Ticket
}

// NewState returns the state of a freshly mounted page: general headlines,
// no search text, nothing loaded yet.
func NewState() *State {
	return &State{category: entity.DefaultCategory}
}

// Snapshot is an immutable copy of State for rendering.
type Snapshot struct {
	Articles []entity.Article
	Loading  bool
	Search   string
	Category entity.Category
}

// Empty reports whether the empty state should be shown.
func (s Snapshot) Empty() bool {
	return !s.Loading && len(s.Articles) == 0
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Articles: append([]entity.Article(nil), s.articles...),
		Loading:  s.loading,
		Search:   s.search,
		Category: s.category,
	}
}

// Query returns the query a fetch started now would use.
func (s *State) Query() entity.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.NewQuery(s.category.String(), s.search)
}

// SetSearch records the search box text without fetching.
func (s *State) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
}

// SelectCategory switches category and reports whether a fetch is needed,
// which is only when the category actually changed.
func (s *State) SelectCategory(c entity.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == s.category {
		return false
	}
	s.category = c
	return true
}

// Begin starts a fetch for the current query and enters the loading state.
func (s *State) Begin() (Ticket, entity.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	return s.seq, entity.NewQuery(s.category.String(), s.search)
}

// Complete applies the outcome of the fetch identified by t and reports
// whether it was applied. Results of superseded fetches are discarded. A
// failed fetch leaves an empty list, indistinguishable from no results.
func (s *State) Complete(t Ticket, rs *entity.ResultSet, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.seq {
		return false
	}
	s.loading = false
	if err != nil || rs == nil {
		s.articles = nil
		return true
	}
	s.articles = append([]entity.Article(nil), rs.Articles...)
	return true
}
