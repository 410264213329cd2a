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
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const slugCacheTTL = 10 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKeySlug(slug string) string {
	return "author:slug:" + slug
}

func (r *postgresRepository) Create(ctx context.Context, entity *author.Author) error {
	const query = `
		INSERT INTO authors (id, first_name, last_name, slug)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.FirstName,
		entity.LastName,
		entity.Slug,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "authors_slug_key" {
			logger.Error("Create: duplicate slug", err)
			return author.ErrDuplicateSlug
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create author: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	const query = `
		SELECT id, first_name, last_name, slug
		FROM authors
		WHERE id = $1
	`

	entity := &author.Author{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Slug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*author.Author, error) {
	cached := &author.Author{}
	if found, err := r.cache.Get(ctx, cacheKeySlug(slug), cached); err == nil && found {
		return cached, nil
	}

	const query = `
		SELECT id, first_name, last_name, slug
		FROM authors
		WHERE slug = $1
	`

	entity := &author.Author{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Slug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		logger.Error("GetBySlug: database error", err)
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKeySlug(slug), entity, slugCacheTTL); err != nil {
		logger.Error("GetBySlug: cache set failed", err)
	}

	return entity, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	const query = `
		SELECT id, first_name, last_name, slug
		FROM authors
		ORDER BY last_name, first_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

func (r *postgresRepository) FindByName(ctx context.Context, firstName, lastName string) (*author.Author, error) {
	const query = `
		SELECT id, first_name, last_name, slug
		FROM authors
		WHERE first_name = $1 AND last_name = $2
	`

	entity := &author.Author{}
	err := r.pool.QueryRow(ctx, query, firstName, lastName).Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Slug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		logger.Error("FindByName: database error", err)
		return nil, fmt.Errorf("failed to find author: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM authors WHERE slug = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		logger.Error("SlugExists: database error", err)
		return false, fmt.Errorf("failed to check author slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]author.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, first_name, last_name, slug
		FROM authors
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("ListByIDs: database error", err)
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

func scanAuthors(rows pgx.Rows) ([]author.Author, error) {
	var result []author.Author
	for rows.Next() {
		var entity author.Author
		if err := rows.Scan(&entity.ID, &entity.FirstName, &entity.LastName, &entity.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return result, nil
}
