package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/article"
)

func newArticleService() (article.Service, *fakeArticleRepo, *fakeAuthorService, *fakeStore, *fakeNotifier) {
	repo := newFakeArticleRepo()
	authors := &fakeAuthorService{}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	return NewArticleService(repo, authors, store, notifier), repo, authors, store, notifier
}

func TestCreateArticleRejectsDuplicateTitleInEdition(t *testing.T) {
	svc, _, authors, _, notifier := newArticleService()

	person, err := authors.FindOrCreate(context.Background(), "Joao", "Silva")
	require.NoError(t, err)
	editionID := uuid.New()

	req := article.CreateArticleRequest{
		Title:     "Dados Abertos",
		EditionID: editionID,
		AuthorIDs: []uuid.UUID{person.ID},
	}

	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, notifier.notified, 1)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, article.ErrDuplicateTitle)

	// Same title in another edition is fine.
	req.EditionID = uuid.New()
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestDeleteArticleRemovesStoredPDF(t *testing.T) {
	svc, repo, authors, store, _ := newArticleService()

	person, err := authors.FindOrCreate(context.Background(), "Ana", "Souza")
	require.NoError(t, err)

	path, err := store.Save("artigo.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), article.CreateArticleRequest{
		Title:     "Com PDF",
		EditionID: uuid.New(),
		PDFPath:   path,
		AuthorIDs: []uuid.UUID{person.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.articles)
	assert.NotContains(t, store.saved, "artigo.pdf")
}

func TestArticlesByAuthorSlugGroupsByYear(t *testing.T) {
	svc, _, authors, _, _ := newArticleService()

	person, err := authors.FindOrCreate(context.Background(), "Pedro", "Lima")
	require.NoError(t, err)

	for _, tc := range []struct {
		title string
		date  string
	}{
		{"Primeiro", "2023-06-01"},
		{"Segundo", "2023-11-10"},
		{"Terceiro", "2024-01-05"},
		{"Sem Data", ""},
	} {
		_, err := svc.Create(context.Background(), article.CreateArticleRequest{
			Title:       tc.title,
			EditionID:   uuid.New(),
			PublishedOn: tc.date,
			AuthorIDs:   []uuid.UUID{person.ID},
		})
		require.NoError(t, err)
	}

	page, err := svc.ArticlesByAuthorSlug(context.Background(), "pedro-lima")
	require.NoError(t, err)

	assert.Equal(t, person.ID, page.Author.ID)
	assert.Equal(t, 4, page.Total)
	assert.Len(t, page.ByYear[2023], 2)
	assert.Len(t, page.ByYear[2024], 1)
	assert.Len(t, page.ByYear[0], 1)
}

func TestGetUnknownArticle(t *testing.T) {
	svc, _, _, _, _ := newArticleService()

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, article.ErrArticleNotFound)
}
