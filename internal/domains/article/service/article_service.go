package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/article"
	"library-backend/internal/domains/author"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

type articleService struct {
	repo     article.Repository
	authors  author.Service
	store    storage.Store
	notifier article.Notifier
}

func NewArticleService(
	repo article.Repository,
	authors author.Service,
	store storage.Store,
	notifier article.Notifier,
) article.Service {
	return &articleService{
		repo:     repo,
		authors:  authors,
		store:    store,
		notifier: notifier,
	}
}

func (s *articleService) Create(ctx context.Context, req article.CreateArticleRequest) (*article.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByTitleEdition(ctx, req.Title, req.EditionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, article.ErrDuplicateTitle
	}

	entity := article.New(req.Title, req.EditionID)
	entity.Abstract = req.Abstract
	entity.SubjectArea = req.SubjectArea
	entity.Keywords = req.Keywords
	entity.PDFPath = req.PDFPath
	if entity.PublishedOn, err = parseOptionalDate(req.PublishedOn); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entity, req.AuthorIDs); err != nil {
		return nil, err
	}

	s.notify(ctx, entity.ID)
	return s.repo.GetByID(ctx, entity.ID)
}

func (s *articleService) GetByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *articleService) List(ctx context.Context, authorID *uuid.UUID) ([]article.Article, error) {
	return s.repo.List(ctx, authorID)
}

func (s *articleService) ListByEdition(ctx context.Context, editionID uuid.UUID) ([]article.Article, error) {
	return s.repo.ListByEdition(ctx, editionID)
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req article.UpdateArticleRequest) (*article.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		entity.Title = req.Title
	}
	if req.Abstract != "" {
		entity.Abstract = req.Abstract
	}
	if req.SubjectArea != "" {
		entity.SubjectArea = req.SubjectArea
	}
	if req.Keywords != "" {
		entity.Keywords = req.Keywords
	}
	if req.PDFPath != "" {
		entity.PDFPath = req.PDFPath
	}
	if req.PublishedOn != "" {
		if entity.PublishedOn, err = parseOptionalDate(req.PublishedOn); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, entity, req.AuthorIDs); err != nil {
		return nil, err
	}

	s.notify(ctx, entity.ID)
	return s.repo.GetByID(ctx, id)
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Email log rows and author links go with the row via cascade; the file
	// needs explicit cleanup.
	if entity.PDFPath != "" {
		if err := s.store.Remove(entity.PDFPath); err != nil {
			logger.Error("Delete: removing stored pdf failed", err)
		}
	}

	return nil
}

func (s *articleService) ArticlesByAuthorSlug(ctx context.Context, slug string) (*article.AuthorArticles, error) {
	owner, err := s.authors.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	works, err := s.repo.ListByAuthor(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	byYear := make(map[int][]article.Article)
	for _, w := range works {
		year := 0
		if w.PublishedOn != nil {
			year = w.PublishedOn.Year()
		}
		byYear[year] = append(byYear[year], w)
	}

	return &article.AuthorArticles{
		Author: owner,
		ByYear: byYear,
		Total:  len(works),
	}, nil
}

// notify triggers the fan-out; the notifier swallows its own errors, so a
// failed notification never undoes a successful write.
func (s *articleService) notify(ctx context.Context, articleID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyArticlePublished(ctx, articleID)
}

func parseOptionalDate(value string) (*utils.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid data_publicacao: %w", err)
	}
	return &d, nil
}
