package notification

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
)

type Repository interface {
	// GetFollow returns the follow row regardless of IsActive, or
	// ErrFollowNotFound.
	GetFollow(ctx context.Context, userID, authorID uuid.UUID) (*Follow, error)
	CreateFollow(ctx context.Context, entity *Follow) error
	SetFollowActive(ctx context.Context, userID, authorID uuid.UUID, active bool) error
	ListFollowedAuthors(ctx context.Context, userID uuid.UUID) ([]author.Author, error)

	// ArticleForNotification loads the article with its authors and event
	// name in one shot for the fan-out.
	ArticleForNotification(ctx context.Context, articleID uuid.UUID) (*ArticleInfo, error)

	// UsersMatchingAuthorName finds users whose name contains the author's
	// first name, notifications enabled.
	UsersMatchingAuthorName(ctx context.Context, firstName string) ([]Recipient, error)

	// ActiveFollowers lists users actively following the author,
	// notifications enabled.
	ActiveFollowers(ctx context.Context, authorID uuid.UUID) ([]Recipient, error)

	HasEmailLog(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	CreateEmailLog(ctx context.Context, entry *EmailLog) error
	RecentEmailLogs(ctx context.Context, limit int) ([]EmailLogView, error)
}
