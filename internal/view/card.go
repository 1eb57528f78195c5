package view

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"newshub/internal/domain/entity"
)

// PlaceholderCount is the number of skeleton cards shown while loading.
const PlaceholderCount = 6

// Empty state copy, shown both for zero results and for a failed fetch.
const (
	EmptyTitle = "No articles found"
	EmptyHint  = "Try adjusting your search terms or category"
)

// PublishedLayout is the en-US short form, e.g. "Mar 5, 02:07 PM".
const PublishedLayout = "Jan 2, 03:04 PM"

// Some publishers ship markup in titles and descriptions; cards show text only.
var stripPolicy = bluemonday.StrictPolicy()

// Card is one article prepared for display. Title and description are not
// truncated; the front-end clamps them to 2 and 3 lines.
type Card struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	Source      string
	Published   string
	Byline      string
}

// FormatPublished renders t in loc, or "" for an unknown time.
func FormatPublished(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(PublishedLayout)
}

// Byline returns "By <author>", or "" when the author is unknown.
func Byline(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return ""
	}
	return "By " + author
}

// PlainText strips markup and decodes entities so the template can escape the
// result exactly once.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// cardText is PlainText, falling back to the raw text when the input was
// nothing but markup. The article already passed Displayable on its raw
// fields, so a card is never left without a title or description; the
// template escapes the fallback.
func cardText(s string) string {
	if plain := PlainText(s); plain != "" {
		return plain
	}
	return strings.TrimSpace(s)
}

// Cards turns articles into cards in their original order.
func Cards(articles []entity.Article, loc *time.Location) []Card {
	cards := make([]Card, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, Card{
			Title:       cardText(a.Title),
			Description: cardText(a.Description),
			URL:         a.URL,
			ImageURL:    a.ImageURL,
			Source:      a.SourceName,
			Published:   FormatPublished(a.PublishedAt, loc),
			Byline:      Byline(a.Author),
		})
	}
	return cards
}
