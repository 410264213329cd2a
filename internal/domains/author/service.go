package author

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for authors.
type Service interface {
	// Create inserts a new author. A (nome, sobrenome) match is a conflict.
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	GetBySlug(ctx context.Context, slug string) (*Author, error)
	List(ctx context.Context) ([]Author, error)

	// FindOrCreate is the dedup path used by article ingestion: an existing
	// (first, last) match is reused, otherwise the author is created with a
	// uniqued slug.
	FindOrCreate(ctx context.Context, firstName, lastName string) (*Author, error)
}
