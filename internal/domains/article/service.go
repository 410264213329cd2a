package article

import (
	"context"

	"github.com/google/uuid"
)

// Notifier fans out notifications for a freshly published article. The
// notification domain implements it; failures stay inside the implementation.
type Notifier interface {
	NotifyArticlePublished(ctx context.Context, articleID uuid.UUID)
}

type Service interface {
	// Create stores the article and triggers notification fan-out.
	Create(ctx context.Context, req CreateArticleRequest) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	List(ctx context.Context, authorID *uuid.UUID) ([]Article, error)
	ListByEdition(ctx context.Context, editionID uuid.UUID) ([]Article, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateArticleRequest) (*Article, error)
	// Delete removes the article, its stored PDF and, by cascade, its email
	// log entries and author links.
	Delete(ctx context.Context, id uuid.UUID) error
	// ArticlesByAuthorSlug renders the author page: works grouped by year.
	ArticlesByAuthorSlug(ctx context.Context, slug string) (*AuthorArticles, error)
}
