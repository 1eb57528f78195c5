package entity

import "strings"

// Mode selects which upstream request shape a Query maps to.
type Mode int

const (
	// ModeHeadlines requests top headlines for a category.
	ModeHeadlines Mode = iota
	// ModeSearch requests a full-text search across all sources.
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "headlines"
}

// Query is what a client asks the proxy for.
// A non-empty Search switches the request to ModeSearch, in which Category
// is ignored.
type Query struct {
	Category Category
	Search   string
}

// NewQuery builds a Query from raw request values, applying defaults.
func NewQuery(category, search string) Query {
	return Query{
		Category: ParseCategory(category),
		Search:   strings.TrimSpace(search),
	}
}

// Mode reports the request shape for q.
func (q Query) Mode() Mode {
	if strings.TrimSpace(q.Search) != "" {
		return ModeSearch
	}
	return ModeHeadlines
}
