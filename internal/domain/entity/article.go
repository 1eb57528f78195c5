// Package entity defines the core domain entities of the news hub: articles,
// queries against the headline provider and the result sets returned for them.
package entity

import "time"

// Article is a single news item as delivered by the upstream provider.
// Articles have no local identity and are never mutated after receipt.
//
// PublishedAtRaw is the provider's timestamp exactly as sent and is what the
// proxy returns; PublishedAt is its parsed form, zero when unparseable, and
// is only used for display.
type Article struct {
	Title          string
	Description    string
	URL            string
	ImageURL       string
	PublishedAt    time.Time
	PublishedAtRaw string
	SourceID       string
	SourceName     string
	Author         string
}

// ParsePublishedAt parses a provider timestamp (RFC 3339, fractional seconds
// allowed). Unparseable input yields the zero time.
func ParsePublishedAt(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ResultSet is the outcome of one query.
//
// TotalResults is the count reported by the provider before filtering, so it
// is an upper bound on len(Articles), not its exact value.
type ResultSet struct {
	Articles     []Article
	TotalResults int
}
