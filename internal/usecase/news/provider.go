package news

import (
	"context"

	"newshub/internal/domain/entity"
)

// Provider abstracts the upstream headline service so the use case can be
// exercised without network access.
type Provider interface {
	// Fetch performs exactly one upstream call for req.
	Fetch(ctx context.Context, req ProviderRequest) (*entity.ResultSet, error)
}

// ProviderRequest is the fully parameterized upstream request.
// Fields not relevant to Mode are left zero.
type ProviderRequest struct {
	Mode     entity.Mode
	APIKey   string
	PageSize int

	// Headlines
	Country  string
	Category entity.Category

	// Search
	Query    string
	SortBy   string
	Language string
}

// CredentialSource yields the upstream credential. It is consulted on every
// request so that rotating the secret does not require a restart.
type CredentialSource func() string
