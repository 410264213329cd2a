package notification

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
)

type Service interface {
	// NotifyArticlePublished fans out emails to everyone interested in the
	// article's authors. It never returns an error: every attempt is logged
	// and failures must not break the publication that triggered them.
	NotifyArticlePublished(ctx context.Context, articleID uuid.UUID)

	FollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error
	UnfollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error
	FollowedAuthors(ctx context.Context, userID uuid.UUID) ([]author.Author, error)

	RecentEmailLogs(ctx context.Context) ([]EmailLogView, error)
}
