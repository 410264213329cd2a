package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
)

// fakeRepo is an in-memory author.Repository for service tests.
type fakeRepo struct {
	authors []*author.Author
}

func (f *fakeRepo) Create(_ context.Context, entity *author.Author) error {
	for _, a := range f.authors {
		if a.Slug == entity.Slug {
			return author.ErrDuplicateSlug
		}
	}
	f.authors = append(f.authors, entity)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	for _, a := range f.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]author.Author, error) {
	out := make([]author.Author, 0, len(f.authors))
	for _, a := range f.authors {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepo) FindByName(_ context.Context, firstName, lastName string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.FirstName == firstName && a.LastName == lastName {
			return a, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, a := range f.authors {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]author.Author, error) {
	var out []author.Author
	for _, id := range ids {
		for _, a := range f.authors {
			if a.ID == id {
				out = append(out, *a)
			}
		}
	}
	return out, nil
}

func TestCreateGeneratesSlug(t *testing.T) {
	svc := NewAuthorService(&fakeRepo{})

	created, err := svc.Create(context.Background(), author.CreateAuthorRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", created.Slug)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAuthorService(repo)

	_, err := svc.Create(context.Background(), author.CreateAuthorRequest{FirstName: "Alan", LastName: "Turing"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), author.CreateAuthorRequest{FirstName: "Alan", LastName: "Turing"})
	assert.ErrorIs(t, err, author.ErrDuplicateName)
}

func TestFindOrCreateSuffixesCollidingSlug(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAuthorService(repo)

	// Different natural keys that normalize to the same slug.
	first, err := svc.FindOrCreate(context.Background(), "Ada", "Lovelace")
	require.NoError(t, err)
	second, err := svc.FindOrCreate(context.Background(), "Ada", "Lovelace!")
	require.NoError(t, err)

	assert.Equal(t, "ada-lovelace", first.Slug)
	assert.Equal(t, "ada-lovelace-1", second.Slug)

	third, err := svc.FindOrCreate(context.Background(), "Ada", "Lovelace?")
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace-2", third.Slug)
}

func TestFindOrCreateReusesExisting(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAuthorService(repo)

	first, err := svc.FindOrCreate(context.Background(), "Grace", "Hopper")
	require.NoError(t, err)

	again, err := svc.FindOrCreate(context.Background(), "Grace", "Hopper")
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, repo.authors, 1)
}
