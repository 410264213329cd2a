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

	"library-backend/internal/domains/user"
	"library-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entity *user.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, role, receive_notifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.PasswordHash,
		entity.Role,
		entity.ReceiveNotifications,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key" {
			return user.ErrEmailAlreadyExists
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, receive_notifications, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, receive_notifications, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	return r.scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *postgresRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, receiveNotifications bool) error {
	const query = `
		UPDATE users
		SET receive_notifications = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, receiveNotifications, time.Now())
	if err != nil {
		logger.Error("UpdatePreferences: database error", err)
		return fmt.Errorf("failed to update user preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) scanUserRow(row pgx.Row) (*user.User, error) {
	entity := &user.User{}
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Role,
		&entity.ReceiveNotifications,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		logger.Error("scanUserRow: database error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return entity, nil
}
