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

	"library-backend/internal/domains/article"
	"library-backend/internal/domains/author"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) article.Repository {
	return &postgresRepository{pool: pool}
}

const articleColumns = `id, title, abstract, subject_area, keywords, pdf_path, published_on, edition_id`

func (r *postgresRepository) Create(ctx context.Context, entity *article.Article, authorIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertArticle = `
		INSERT INTO articles (id, title, abstract, subject_area, keywords, pdf_path, published_on, edition_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertArticle,
		entity.ID,
		entity.Title,
		nullableText(entity.Abstract),
		nullableText(entity.SubjectArea),
		nullableText(entity.Keywords),
		nullableText(entity.PDFPath),
		dateArg(entity.PublishedOn),
		entity.EditionID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "articles_edition_id_fkey" {
			return article.ErrEditionNotFound
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create article: %w", err)
	}

	if err := insertAuthorLinks(ctx, tx, entity.ID, authorIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	entity, err := scanArticle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, article.ErrArticleNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	if err := r.loadAuthors(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) List(ctx context.Context, authorID *uuid.UUID) ([]article.Article, error) {
	if authorID != nil {
		return r.ListByAuthor(ctx, *authorID)
	}

	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY published_on DESC NULLS LAST, title`
	return r.queryArticles(ctx, query)
}

func (r *postgresRepository) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]article.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE edition_id = $1 ORDER BY title`
	return r.queryArticles(ctx, query, editionID)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]article.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN article_authors aa ON aa.article_id = a.id
		WHERE aa.author_id = $1
		ORDER BY a.published_on DESC NULLS LAST, a.title
	`
	return r.queryArticles(ctx, query, authorID)
}

func (r *postgresRepository) Update(ctx context.Context, entity *article.Article, authorIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		UPDATE articles
		SET title = $2, abstract = $3, subject_area = $4, keywords = $5, pdf_path = $6, published_on = $7
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		entity.ID,
		entity.Title,
		nullableText(entity.Abstract),
		nullableText(entity.SubjectArea),
		nullableText(entity.Keywords),
		nullableText(entity.PDFPath),
		dateArg(entity.PublishedOn),
	)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return article.ErrArticleNotFound
	}

	if authorIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM article_authors WHERE article_id = $1`, entity.ID); err != nil {
			logger.Error("Update: clearing author links failed", err)
			return fmt.Errorf("failed to update article authors: %w", err)
		}
		if err := insertAuthorLinks(ctx, tx, entity.ID, authorIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM articles WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return article.ErrArticleNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByTitleEdition(ctx context.Context, title string, editionID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM articles
			WHERE LOWER(title) = LOWER($1) AND edition_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, title, editionID).Scan(&exists); err != nil {
		logger.Error("ExistsByTitleEdition: database error", err)
		return false, fmt.Errorf("failed to check article title: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) queryArticles(ctx context.Context, query string, args ...any) ([]article.Article, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("queryArticles: database error", err)
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var result []article.Article
	for rows.Next() {
		entity, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		result = append(result, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	if err := r.loadAuthorsBulk(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepository) loadAuthors(ctx context.Context, entity *article.Article) error {
	const query = `
		SELECT au.id, au.first_name, au.last_name, au.slug
		FROM authors au
		JOIN article_authors aa ON aa.author_id = au.id
		WHERE aa.article_id = $1
		ORDER BY au.last_name, au.first_name
	`

	rows, err := r.pool.Query(ctx, query, entity.ID)
	if err != nil {
		logger.Error("loadAuthors: database error", err)
		return fmt.Errorf("failed to load article authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var au author.Author
		if err := rows.Scan(&au.ID, &au.FirstName, &au.LastName, &au.Slug); err != nil {
			return fmt.Errorf("failed to scan article author: %w", err)
		}
		entity.Authors = append(entity.Authors, au)
	}
	return rows.Err()
}

func (r *postgresRepository) loadAuthorsBulk(ctx context.Context, articles []article.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(articles))
	index := make(map[uuid.UUID]*article.Article, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
		index[articles[i].ID] = &articles[i]
	}

	const query = `
		SELECT aa.article_id, au.id, au.first_name, au.last_name, au.slug
		FROM authors au
		JOIN article_authors aa ON aa.author_id = au.id
		WHERE aa.article_id = ANY($1)
		ORDER BY au.last_name, au.first_name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("loadAuthorsBulk: database error", err)
		return fmt.Errorf("failed to load article authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID uuid.UUID
		var au author.Author
		if err := rows.Scan(&articleID, &au.ID, &au.FirstName, &au.LastName, &au.Slug); err != nil {
			return fmt.Errorf("failed to scan article author: %w", err)
		}
		if target, ok := index[articleID]; ok {
			target.Authors = append(target.Authors, au)
		}
	}
	return rows.Err()
}

func insertAuthorLinks(ctx context.Context, tx pgx.Tx, articleID uuid.UUID, authorIDs []uuid.UUID) error {
	const query = `
		INSERT INTO article_authors (article_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	for _, authorID := range authorIDs {
		if _, err := tx.Exec(ctx, query, articleID, authorID); err != nil {
			logger.Error("insertAuthorLinks: database error", err)
			return fmt.Errorf("failed to link article author: %w", err)
		}
	}
	return nil
}

func scanArticle(row pgx.Row) (*article.Article, error) {
	entity := &article.Article{}
	var (
		abstract, subjectArea, keywords, pdfPath *string
		publishedOn                              *time.Time
	)

	err := row.Scan(
		&entity.ID,
		&entity.Title,
		&abstract,
		&subjectArea,
		&keywords,
		&pdfPath,
		&publishedOn,
		&entity.EditionID,
	)
	if err != nil {
		return nil, err
	}

	entity.Abstract = deref(abstract)
	entity.SubjectArea = deref(subjectArea)
	entity.Keywords = deref(keywords)
	entity.PDFPath = deref(pdfPath)
	if publishedOn != nil {
		entity.PublishedOn = &utils.Date{Time: *publishedOn}
	}
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
