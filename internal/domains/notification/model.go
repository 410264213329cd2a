package notification

import (
	"github.com/google/uuid"

	"library-backend/internal/shared/utils"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Follow is a user's subscription to an author. Unfollowing flips IsActive
// instead of deleting, so a later re-follow reuses the row.
type Follow struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt utils.Date `json:"created_at"`
}

func NewFollow(userID, authorID uuid.UUID) *Follow {
	return &Follow{
		ID:        uuid.New(),
		UserID:    userID,
		AuthorID:  authorID,
		IsActive:  true,
		CreatedAt: utils.Today(),
	}
}

// EmailLog records one delivery attempt, successful or not. Its (user,
// article) pair backs the idempotency check of the fan-out.
type EmailLog struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ArticleID uuid.UUID  `json:"article_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	SentAt    utils.Date `json:"sent_at"`
	Subject   string     `json:"subject"`
	Status    string     `json:"status"`
}

// EmailLogView is the admin listing row, joined with user and article info.
type EmailLogView struct {
	ID           uuid.UUID  `json:"id"`
	UserName     string     `json:"usuario"`
	UserEmail    string     `json:"email"`
	ArticleTitle string     `json:"artigo"`
	AuthorName   string     `json:"autor"`
	SentAt       utils.Date `json:"enviado_em"`
	Subject      string     `json:"assunto"`
	Status       string     `json:"status"`
}

// Recipient is a user eligible for notification (notifications enabled).
type Recipient struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// ArticleInfo is the slice of an article the fan-out needs.
type ArticleInfo struct {
	ID        uuid.UUID
	Title     string
	EventName string
	Authors   []ArticleAuthor
}

// ArticleAuthor identifies one author of the article being announced.
type ArticleAuthor struct {
	ID        uuid.UUID
	FirstName string
	FullName  string
}
