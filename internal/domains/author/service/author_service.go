package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/utils"
)

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// (nome, sobrenome) is the natural key: a direct create of an existing
	// author is a conflict, unlike the import path which reuses the row.
	_, err := s.repo.FindByName(ctx, req.FirstName, req.LastName)
	if err == nil {
		return nil, author.ErrDuplicateName
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, fmt.Errorf("check author name: %w", err)
	}

	slug, err := s.uniqueSlug(ctx, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	entity := author.New(req.FirstName, req.LastName, slug)
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*author.Author, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) FindOrCreate(ctx context.Context, firstName, lastName string) (*author.Author, error) {
	existing, err := s.repo.FindByName(ctx, firstName, lastName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, fmt.Errorf("find author: %w", err)
	}

	slug, err := s.uniqueSlug(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}

	entity := author.New(firstName, lastName, slug)
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// uniqueSlug probes the store and appends -1, -2, ... until the slug is free.
func (s *authorService) uniqueSlug(ctx context.Context, firstName, lastName string) (string, error) {
	base := utils.Slug(firstName, lastName)
	if base == "" {
		base = "autor"
	}

	slug := base
	for i := 1; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
