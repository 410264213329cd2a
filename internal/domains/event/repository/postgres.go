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

	"library-backend/internal/domains/event"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const slugCacheTTL = 10 * time.Minute

// db is the subset of pgxpool.Pool the repository relies on.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	pool  db
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) event.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKeySlug(slug string) string {
	return "event:slug:" + slug
}

func (r *postgresRepository) CreateEvent(ctx context.Context, entity *event.Event) error {
	const query = `
		INSERT INTO events (id, name, slug, admin_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.Name,
		entity.Slug,
		entity.AdminID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "events_slug_key" {
			return event.ErrDuplicateSlug
		}
		logger.Error("CreateEvent: database error", err)
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	const query = `
		SELECT id, name, slug, admin_id
		FROM events
		WHERE id = $1
	`

	return r.scanEventRow(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetEventBySlug(ctx context.Context, slug string) (*event.Event, error) {
	cached := &event.Event{}
	if found, err := r.cache.Get(ctx, cacheKeySlug(slug), cached); err == nil && found {
		return cached, nil
	}

	const query = `
		SELECT id, name, slug, admin_id
		FROM events
		WHERE slug = $1
	`

	entity, err := r.scanEventRow(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKeySlug(slug), entity, slugCacheTTL); err != nil {
		logger.Error("GetEventBySlug: cache set failed", err)
	}

	return entity, nil
}

func (r *postgresRepository) ListEvents(ctx context.Context) ([]event.Event, error) {
	const query = `
		SELECT id, name, slug, admin_id
		FROM events
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("ListEvents: database error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var result []event.Event
	for rows.Next() {
		var entity event.Event
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Slug, &entity.AdminID); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return result, nil
}

func (r *postgresRepository) UpdateEvent(ctx context.Context, entity *event.Event) error {
	// RETURNING carries the pre-update slug out so a rename can evict the
	// cache entry keyed by the old sigla.
	const query = `
		WITH prev AS (
			SELECT slug FROM events WHERE id = $1
		)
		UPDATE events
		SET name = $2, slug = $3
		WHERE id = $1
		RETURNING (SELECT slug FROM prev)
	`

	var oldSlug string
	if err := r.pool.QueryRow(ctx, query, entity.ID, entity.Name, entity.Slug).Scan(&oldSlug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.ErrEventNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "events_slug_key" {
			return event.ErrDuplicateSlug
		}
		logger.Error("UpdateEvent: database error", err)
		return fmt.Errorf("failed to update event: %w", err)
	}

	r.invalidateSlug(ctx, oldSlug, entity.Slug)
	return nil
}

func (r *postgresRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	entity, err := r.GetEventByID(ctx, id)
	if err != nil {
		return err
	}

	const query = `DELETE FROM events WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		logger.Error("DeleteEvent: database error", err)
		return fmt.Errorf("failed to delete event: %w", err)
	}

	r.invalidateSlug(ctx, entity.Slug)
	return nil
}

func (r *postgresRepository) EventSlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM events WHERE slug = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		logger.Error("EventSlugExists: database error", err)
		return false, fmt.Errorf("failed to check event slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) FindEventByName(ctx context.Context, name string, fuzzy bool) (*event.Event, error) {
	query := `
		SELECT id, name, slug, admin_id
		FROM events
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`
	arg := name
	if fuzzy {
		query = `
			SELECT id, name, slug, admin_id
			FROM events
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY name
			LIMIT 1
		`
	}

	return r.scanEventRow(r.pool.QueryRow(ctx, query, arg))
}

func (r *postgresRepository) CountArticlesUnderEvent(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM articles a
		JOIN editions e ON e.id = a.edition_id
		WHERE e.event_id = $1
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		logger.Error("CountArticlesUnderEvent: database error", err)
		return 0, fmt.Errorf("failed to count event articles: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) scanEventRow(row pgx.Row) (*event.Event, error) {
	entity := &event.Event{}
	err := row.Scan(&entity.ID, &entity.Name, &entity.Slug, &entity.AdminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		logger.Error("scanEventRow: database error", err)
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return entity, nil
}

func (r *postgresRepository) invalidateSlug(ctx context.Context, slugs ...string) {
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = cacheKeySlug(slug)
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		logger.Error("invalidateSlug: cache delete failed", err)
	}
}

const editionColumns = `id, event_id, year, slug, description, start_date, end_date, location, site_url`

func (r *postgresRepository) CreateEdition(ctx context.Context, entity *event.Edition) error {
	const query = `
		INSERT INTO editions (id, event_id, year, slug, description, start_date, end_date, location, site_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		entity.ID,
		entity.EventID,
		entity.Year,
		entity.Slug,
		nullableText(entity.Description),
		dateArg(entity.StartDate),
		dateArg(entity.EndDate),
		nullableText(entity.Location),
		nullableText(entity.SiteURL),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "editions_event_year_key":
				return event.ErrDuplicateEdition
			case "editions_slug_key":
				return event.ErrDuplicateSlug
			case "editions_event_id_fkey":
				return event.ErrEventNotFound
			}
		}
		logger.Error("CreateEdition: database error", err)
		return fmt.Errorf("failed to create edition: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetEditionByID(ctx context.Context, id uuid.UUID) (*event.Edition, error) {
	query := `SELECT ` + editionColumns + ` FROM editions WHERE id = $1`
	return r.scanEditionRow(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) ListEditions(ctx context.Context) ([]event.Edition, error) {
	query := `SELECT ` + editionColumns + ` FROM editions ORDER BY year DESC`
	return r.queryEditions(ctx, query)
}

func (r *postgresRepository) ListEditionsByEvent(ctx context.Context, eventID uuid.UUID) ([]event.Edition, error) {
	query := `SELECT ` + editionColumns + ` FROM editions WHERE event_id = $1 ORDER BY year DESC`
	return r.queryEditions(ctx, query, eventID)
}

func (r *postgresRepository) GetEditionByEventYear(ctx context.Context, eventID uuid.UUID, year int) (*event.Edition, error) {
	query := `SELECT ` + editionColumns + ` FROM editions WHERE event_id = $1 AND year = $2`
	return r.scanEditionRow(r.pool.QueryRow(ctx, query, eventID, year))
}

func (r *postgresRepository) FirstEdition(ctx context.Context) (*event.Edition, error) {
	query := `SELECT ` + editionColumns + ` FROM editions ORDER BY year, slug LIMIT 1`
	return r.scanEditionRow(r.pool.QueryRow(ctx, query))
}

func (r *postgresRepository) UpdateEdition(ctx context.Context, entity *event.Edition) error {
	const query = `
		UPDATE editions
		SET description = $2, start_date = $3, end_date = $4, location = $5, site_url = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		entity.ID,
		nullableText(entity.Description),
		dateArg(entity.StartDate),
		dateArg(entity.EndDate),
		nullableText(entity.Location),
		nullableText(entity.SiteURL),
	)
	if err != nil {
		logger.Error("UpdateEdition: database error", err)
		return fmt.Errorf("failed to update edition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEditionNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteEdition(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM editions WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("DeleteEdition: database error", err)
		return fmt.Errorf("failed to delete edition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEditionNotFound
	}
	return nil
}

func (r *postgresRepository) queryEditions(ctx context.Context, query string, args ...any) ([]event.Edition, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("queryEditions: database error", err)
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	defer rows.Close()

	var result []event.Edition
	for rows.Next() {
		entity, err := scanEdition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate editions: %w", err)
	}
	return result, nil
}

func (r *postgresRepository) scanEditionRow(row pgx.Row) (*event.Edition, error) {
	entity, err := scanEdition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEditionNotFound
		}
		logger.Error("scanEditionRow: database error", err)
		return nil, fmt.Errorf("failed to get edition: %w", err)
	}
	return entity, nil
}

func scanEdition(row pgx.Row) (*event.Edition, error) {
	entity := &event.Edition{}
	var (
		description, location, siteURL *string
		startDate, endDate             *time.Time
	)

	err := row.Scan(
		&entity.ID,
		&entity.EventID,
		&entity.Year,
		&entity.Slug,
		&description,
		&startDate,
		&endDate,
		&location,
		&siteURL,
	)
	if err != nil {
		return nil, err
	}

	entity.Description = deref(description)
	entity.Location = deref(location)
	entity.SiteURL = deref(siteURL)
	entity.StartDate = toDate(startDate)
	entity.EndDate = toDate(endDate)
	return entity, nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func dateArg(d *utils.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func toDate(t *time.Time) *utils.Date {
	if t == nil {
		return nil
	}
	return &utils.Date{Time: *t}
}
