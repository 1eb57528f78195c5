package entity

import "strings"

// Category is a headline category understood by the upstream provider.
type Category string

// Categories offered by the clients.
const (
	CategoryGeneral    Category = "general"
	CategoryTechnology Category = "technology"
	CategoryBusiness   Category = "business"
	CategoryHealth     Category = "health"
	CategoryScience    Category = "science"
	CategorySports     Category = "sports"
)

// DefaultCategory is used when a request names no category.
const DefaultCategory = CategoryGeneral

var categoryNames = map[Category]string{
	CategoryGeneral:    "General",
	CategoryTechnology: "Technology",
	CategoryBusiness:   "Business",
	CategoryHealth:     "Health",
	CategoryScience:    "Science",
	CategorySports:     "Sports",
}

// Categories returns the known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryTechnology,
		CategoryBusiness,
		CategoryHealth,
		CategoryScience,
		CategorySports,
	}
}

// ParseCategory normalizes a raw query value. Empty input yields
// DefaultCategory; other values are lower-cased and kept even when unknown,
// because the provider is the authority on which categories exist.
func ParseCategory(raw string) Category {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return DefaultCategory
	}
	return Category(v)
}

// Known reports whether c is one of Categories().
func (c Category) Known() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human-readable label, or the raw value for
// categories outside the known set.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
