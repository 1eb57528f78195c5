package news

import (
	"time"

	"newshub/internal/domain/entity"
)

// ArticleDTO mirrors the provider's article shape so existing clients can
// consume the proxy unchanged. Optional fields are null when absent.
type ArticleDTO struct {
	Source      SourceDTO `json:"source"`
	Author      *string   `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  *string   `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
}

// SourceDTO is the publisher of an article. ID is null for sources the
// provider has no identifier for.
type SourceDTO struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// ResponseDTO is the 200 body of GET /api/news. Articles is never null.
type ResponseDTO struct {
	Articles     []ArticleDTO `json:"articles"`
	TotalResults int          `json:"totalResults"`
}

func toResponse(rs *entity.ResultSet) ResponseDTO {
	out := ResponseDTO{Articles: make([]ArticleDTO, 0, len(rs.Articles)), TotalResults: rs.TotalResults}
	for _, a := range rs.Articles {
		out.Articles = append(out.Articles, toDTO(a))
	}
	return out
}

func toDTO(a entity.Article) ArticleDTO {
	dto := ArticleDTO{
		Source:      SourceDTO{ID: optional(a.SourceID), Name: a.SourceName},
		Author:      optional(a.Author),
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  optional(a.ImageURL),
		PublishedAt: a.PublishedAtRaw,
	}
	// Articles not built from a provider payload have no raw timestamp.
	if dto.PublishedAt == "" && !a.PublishedAt.IsZero() {
		dto.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
