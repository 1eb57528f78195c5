package entity

// RedactedPlaceholder is the literal the provider substitutes for removed content.
const RedactedPlaceholder = "[Removed]"

// Displayable reports whether an article may be shown to a client: title and
// description must be present and neither may be the redaction placeholder.
func (a Article) Displayable() bool {
	if a.Title == "" || a.Description == "" {
		return false
	}
	return a.Title != RedactedPlaceholder && a.Description != RedactedPlaceholder
}

// FilterDisplayable returns the displayable articles in their original order.
// The result is never nil.
func FilterDisplayable(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Displayable() {
			out = append(out, a)
		}
	}
	return out
}
