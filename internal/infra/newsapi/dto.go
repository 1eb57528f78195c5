package newsapi

import (
	"newshub/internal/domain/entity"
)

// response is the envelope shared by /v2/top-headlines and /v2/everything.
// Error responses carry status "error" with code and message.
type response struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []articleDTO `json:"articles"`
}

type articleDTO struct {
	Source      sourceDTO `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
}

type sourceDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// toEntity keeps every provider field verbatim. An unparseable timestamp
// leaves PublishedAt zero rather than failing the whole result.
func (a articleDTO) toEntity() entity.Article {
	return entity.Article{
		Title:          a.Title,
		Description:    a.Description,
		URL:            a.URL,
		ImageURL:       a.URLToImage,
		PublishedAt:    entity.ParsePublishedAt(a.PublishedAt),
		PublishedAtRaw: a.PublishedAt,
		SourceID:       a.Source.ID,
		SourceName:     a.Source.Name,
		Author:         a.Author,
	}
}
