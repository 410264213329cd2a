package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/notification"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

const emailLogLimit = 10

type notificationService struct {
	repo            notification.Repository
	authors         author.Service
	sender          email.Sender
	skipAlreadySent bool
}

// NewNotificationService wires the fan-out and follow rules. skipAlreadySent
// controls whether a previously logged (user, article) delivery suppresses a
// new one across calls.
func NewNotificationService(
	repo notification.Repository,
	authors author.Service,
	sender email.Sender,
	skipAlreadySent bool,
) notification.Service {
	return &notificationService{
		repo:            repo,
		authors:         authors,
		sender:          sender,
		skipAlreadySent: skipAlreadySent,
	}
}

func (s *notificationService) NotifyArticlePublished(ctx context.Context, articleID uuid.UUID) {
	info, err := s.repo.ArticleForNotification(ctx, articleID)
	if err != nil {
		logger.Error("notification: loading article failed", err)
		return
	}

	eventName := info.EventName
	if eventName == "" {
		eventName = "Evento"
	}

	// One email per user per article within this run, no matter how many of
	// the article's authors the user is tied to.
	seen := make(map[uuid.UUID]bool)

	for _, art := range info.Authors {
		recipients := s.recipientsFor(ctx, art)

		for _, rec := range recipients {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true

			if s.skipAlreadySent {
				already, err := s.repo.HasEmailLog(ctx, rec.ID, info.ID)
				if err != nil {
					logger.Error("notification: idempotency check failed", err)
					continue
				}
				if already {
					continue
				}
			}

			data := email.NotificationData{
				To:           rec.Email,
				AuthorName:   art.FullName,
				ArticleTitle: info.Title,
				EventName:    eventName,
			}

			status := notification.StatusSent
			if err := s.sender.SendArticleNotification(ctx, data); err != nil {
				logger.Error("notification: sending email failed", err)
				status = notification.StatusFailed
			}

			entry := &notification.EmailLog{
				ID:        uuid.New(),
				UserID:    rec.ID,
				ArticleID: info.ID,
				AuthorID:  art.ID,
				SentAt:    utils.Today(),
				Subject:   data.Subject(),
				Status:    status,
			}
			if err := s.repo.CreateEmailLog(ctx, entry); err != nil {
				logger.Error("notification: recording email log failed", err)
			}
		}
	}
}

// recipientsFor gathers name matches and active followers for one author.
// Partial failures shrink the audience instead of aborting the fan-out.
func (s *notificationService) recipientsFor(ctx context.Context, art notification.ArticleAuthor) []notification.Recipient {
	var recipients []notification.Recipient

	if art.FirstName != "" {
		byName, err := s.repo.UsersMatchingAuthorName(ctx, art.FirstName)
		if err != nil {
			logger.Error("notification: name match lookup failed", err)
		} else {
			recipients = append(recipients, byName...)
		}
	}

	followers, err := s.repo.ActiveFollowers(ctx, art.ID)
	if err != nil {
		logger.Error("notification: follower lookup failed", err)
	} else {
		recipients = append(recipients, followers...)
	}

	return recipients
}

func (s *notificationService) FollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return err
	}

	existing, err := s.repo.GetFollow(ctx, userID, authorID)
	if err != nil {
		if errors.Is(err, notification.ErrFollowNotFound) {
			return s.repo.CreateFollow(ctx, notification.NewFollow(userID, authorID))
		}
		return err
	}

	if existing.IsActive {
		return notification.ErrAlreadyFollowing
	}
	return s.repo.SetFollowActive(ctx, userID, authorID, true)
}

func (s *notificationService) UnfollowAuthor(ctx context.Context, userID, authorID uuid.UUID) error {
	existing, err := s.repo.GetFollow(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !existing.IsActive {
		return notification.ErrFollowNotFound
	}
	return s.repo.SetFollowActive(ctx, userID, authorID, false)
}

func (s *notificationService) FollowedAuthors(ctx context.Context, userID uuid.UUID) ([]author.Author, error) {
	return s.repo.ListFollowedAuthors(ctx, userID)
}

func (s *notificationService) RecentEmailLogs(ctx context.Context) ([]notification.EmailLogView, error) {
	return s.repo.RecentEmailLogs(ctx, emailLogLimit)
}
