package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for authors.
type Repository interface {
	Create(ctx context.Context, entity *Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	GetBySlug(ctx context.Context, slug string) (*Author, error)
	List(ctx context.Context) ([]Author, error)

	// FindByName does an exact match on (first name, last name).
	// Returns ErrAuthorNotFound on miss.
	FindByName(ctx context.Context, firstName, lastName string) (*Author, error)

	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Author, error)
}
