package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/notification"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) notification.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetFollow(ctx context.Context, userID, authorID uuid.UUID) (*notification.Follow, error) {
	const query = `
		SELECT id, user_id, author_id, is_active, created_at
		FROM follows
		WHERE user_id = $1 AND author_id = $2
	`

	entity := &notification.Follow{}
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, query, userID, authorID).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.AuthorID,
		&entity.IsActive,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrFollowNotFound
		}
		logger.Error("GetFollow: database error", err)
		return nil, fmt.Errorf("failed to get follow: %w", err)
	}

	entity.CreatedAt = utils.Date{Time: createdAt}
	return entity, nil
}

func (r *postgresRepository) CreateFollow(ctx context.Context, entity *notification.Follow) error {
	const query = `
		INSERT INTO follows (id, user_id, author_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.UserID,
		entity.AuthorID,
		entity.IsActive,
		entity.CreatedAt.Time,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "follows_user_author_key" {
			return notification.ErrAlreadyFollowing
		}
		logger.Error("CreateFollow: database error", err)
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

func (r *postgresRepository) SetFollowActive(ctx context.Context, userID, authorID uuid.UUID, active bool) error {
	const query = `
		UPDATE follows
		SET is_active = $3
		WHERE user_id = $1 AND author_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, authorID, active)
	if err != nil {
		logger.Error("SetFollowActive: database error", err)
		return fmt.Errorf("failed to update follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrFollowNotFound
	}
	return nil
}

func (r *postgresRepository) ListFollowedAuthors(ctx context.Context, userID uuid.UUID) ([]author.Author, error) {
	const query = `
		SELECT au.id, au.first_name, au.last_name, au.slug
		FROM authors au
		JOIN follows f ON f.author_id = au.id
		WHERE f.user_id = $1 AND f.is_active
		ORDER BY au.last_name, au.first_name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("ListFollowedAuthors: database error", err)
		return nil, fmt.Errorf("failed to list followed authors: %w", err)
	}
	defer rows.Close()

	var result []author.Author
	for rows.Next() {
		var au author.Author
		if err := rows.Scan(&au.ID, &au.FirstName, &au.LastName, &au.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan followed author: %w", err)
		}
		result = append(result, au)
	}
	return result, rows.Err()
}

func (r *postgresRepository) ArticleForNotification(ctx context.Context, articleID uuid.UUID) (*notification.ArticleInfo, error) {
	const articleQuery = `
		SELECT a.id, a.title, ev.name
		FROM articles a
		JOIN editions ed ON ed.id = a.edition_id
		JOIN events ev ON ev.id = ed.event_id
		WHERE a.id = $1
	`

	info := &notification.ArticleInfo{}
	err := r.pool.QueryRow(ctx, articleQuery, articleID).Scan(&info.ID, &info.Title, &info.EventName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("article %s not found", articleID)
		}
		logger.Error("ArticleForNotification: database error", err)
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	const authorsQuery = `
		SELECT au.id, au.first_name, TRIM(au.first_name || ' ' || au.last_name)
		FROM authors au
		JOIN article_authors aa ON aa.author_id = au.id
		WHERE aa.article_id = $1
		ORDER BY au.last_name, au.first_name
	`

	rows, err := r.pool.Query(ctx, authorsQuery, articleID)
	if err != nil {
		logger.Error("ArticleForNotification: database error", err)
		return nil, fmt.Errorf("failed to load article authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var au notification.ArticleAuthor
		if err := rows.Scan(&au.ID, &au.FirstName, &au.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan article author: %w", err)
		}
		info.Authors = append(info.Authors, au)
	}
	return info, rows.Err()
}

func (r *postgresRepository) UsersMatchingAuthorName(ctx context.Context, firstName string) ([]notification.Recipient, error) {
	const query = `
		SELECT id, name, email
		FROM users
		WHERE receive_notifications AND name ILIKE '%' || $1 || '%'
	`

	return r.queryRecipients(ctx, query, firstName)
}

func (r *postgresRepository) ActiveFollowers(ctx context.Context, authorID uuid.UUID) ([]notification.Recipient, error) {
	const query = `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN follows f ON f.user_id = u.id
		WHERE f.author_id = $1 AND f.is_active AND u.receive_notifications
	`

	return r.queryRecipients(ctx, query, authorID)
}

func (r *postgresRepository) HasEmailLog(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM email_logs
			WHERE user_id = $1 AND article_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, articleID).Scan(&exists); err != nil {
		logger.Error("HasEmailLog: database error", err)
		return false, fmt.Errorf("failed to check email log: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateEmailLog(ctx context.Context, entry *notification.EmailLog) error {
	const query = `
		INSERT INTO email_logs (id, user_id, article_id, author_id, sent_at, subject, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.ArticleID,
		entry.AuthorID,
		entry.SentAt.Time,
		entry.Subject,
		entry.Status,
	)
	if err != nil {
		logger.Error("CreateEmailLog: database error", err)
		return fmt.Errorf("failed to create email log: %w", err)
	}
	return nil
}

func (r *postgresRepository) RecentEmailLogs(ctx context.Context, limit int) ([]notification.EmailLogView, error) {
	const query = `
		SELECT el.id, u.name, u.email, a.title,
		       TRIM(au.first_name || ' ' || au.last_name),
		       el.sent_at, COALESCE(el.subject, ''), el.status
		FROM email_logs el
		JOIN users u ON u.id = el.user_id
		JOIN articles a ON a.id = el.article_id
		JOIN authors au ON au.id = el.author_id
		ORDER BY el.sent_at DESC, el.id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		logger.Error("RecentEmailLogs: database error", err)
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}
	defer rows.Close()

	var result []notification.EmailLogView
	for rows.Next() {
		var view notification.EmailLogView
		var sentAt time.Time
		err := rows.Scan(
			&view.ID,
			&view.UserName,
			&view.UserEmail,
			&view.ArticleTitle,
			&view.AuthorName,
			&sentAt,
			&view.Subject,
			&view.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email log: %w", err)
		}
		view.SentAt = utils.Date{Time: sentAt}
		result = append(result, view)
	}
	return result, rows.Err()
}

func (r *postgresRepository) queryRecipients(ctx context.Context, query string, args ...any) ([]notification.Recipient, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("queryRecipients: database error", err)
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	defer rows.Close()

	var result []notification.Recipient
	for rows.Next() {
		var rec notification.Recipient
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
