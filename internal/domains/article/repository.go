package article

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the article and its author links in one transaction.
	Create(ctx context.Context, entity *Article, authorIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	// List returns all articles, optionally restricted to one author.
	List(ctx context.Context, authorID *uuid.UUID) ([]Article, error)
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]Article, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Article, error)
	// Update rewrites the row and, when authorIDs is non-nil, the author links.
	Update(ctx context.Context, entity *Article, authorIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByTitleEdition(ctx context.Context, title string, editionID uuid.UUID) (bool, error)
}
