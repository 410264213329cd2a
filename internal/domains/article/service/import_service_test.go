package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/article"
	"library-backend/internal/domains/author"
	"library-backend/internal/domains/event"
	"library-backend/internal/shared/utils"
)

type fakeArticleRepo struct {
	articles []*article.Article
	links    map[uuid.UUID][]uuid.UUID
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{links: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeArticleRepo) Create(_ context.Context, entity *article.Article, authorIDs []uuid.UUID) error {
	f.articles = append(f.articles, entity)
	f.links[entity.ID] = authorIDs
	return nil
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id uuid.UUID) (*article.Article, error) {
	for _, a := range f.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, article.ErrArticleNotFound
}

func (f *fakeArticleRepo) List(_ context.Context, authorID *uuid.UUID) ([]article.Article, error) {
	var out []article.Article
	for _, a := range f.articles {
		if authorID != nil && !containsID(f.links[a.ID], *authorID) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeArticleRepo) ListByEdition(_ context.Context, editionID uuid.UUID) ([]article.Article, error) {
	var out []article.Article
	for _, a := range f.articles {
		if a.EditionID == editionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeArticleRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]article.Article, error) {
	return f.List(ctx, &authorID)
}

func (f *fakeArticleRepo) Update(_ context.Context, entity *article.Article, authorIDs []uuid.UUID) error {
	for i, a := range f.articles {
		if a.ID == entity.ID {
			f.articles[i] = entity
			if authorIDs != nil {
				f.links[entity.ID] = authorIDs
			}
			return nil
		}
	}
	return article.ErrArticleNotFound
}

func (f *fakeArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range f.articles {
		if a.ID == id {
			f.articles = append(f.articles[:i], f.articles[i+1:]...)
			delete(f.links, id)
			return nil
		}
	}
	return article.ErrArticleNotFound
}

func (f *fakeArticleRepo) ExistsByTitleEdition(_ context.Context, title string, editionID uuid.UUID) (bool, error) {
	for _, a := range f.articles {
		if strings.EqualFold(a.Title, title) && a.EditionID == editionID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAuthorService struct {
	authors []*author.Author
}

func (f *fakeAuthorService) Create(_ context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	entity := author.New(req.FirstName, req.LastName, utils.Slug(req.FirstName, req.LastName))
	f.authors = append(f.authors, entity)
	return entity, nil
}

func (f *fakeAuthorService) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	for _, a := range f.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorService) GetBySlug(_ context.Context, slug string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorService) List(_ context.Context) ([]author.Author, error) {
	out := make([]author.Author, 0, len(f.authors))
	for _, a := range f.authors {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAuthorService) FindOrCreate(_ context.Context, firstName, lastName string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.FirstName == firstName && a.LastName == lastName {
			return a, nil
		}
	}
	entity := author.New(firstName, lastName, utils.Slug(firstName, lastName))
	f.authors = append(f.authors, entity)
	return entity, nil
}

type fakeEventService struct {
	events   []*event.Event
	editions []*event.Edition
}

func (f *fakeEventService) CreateEvent(_ context.Context, req event.CreateEventRequest) (*event.Event, error) {
	entity := event.NewEvent(req.Name, utils.Slug(req.Name), nil)
	f.events = append(f.events, entity)
	return entity, nil
}

func (f *fakeEventService) GetEventByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (f *fakeEventService) GetEventBySlug(_ context.Context, slug string) (*event.Event, error) {
	for _, e := range f.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (f *fakeEventService) ListEvents(_ context.Context) ([]event.Event, error) { return nil, nil }

func (f *fakeEventService) UpdateEvent(_ context.Context, _ uuid.UUID, _ event.UpdateEventRequest) (*event.Event, error) {
	return nil, event.ErrEventNotFound
}

func (f *fakeEventService) DeleteEvent(_ context.Context, _ uuid.UUID) error {
	return event.ErrEventNotFound
}

func (f *fakeEventService) CreateEdition(_ context.Context, _ event.CreateEditionRequest) (*event.Edition, error) {
	return nil, event.ErrEventNotFound
}

func (f *fakeEventService) ListEditions(_ context.Context) ([]event.Edition, error) { return nil, nil }

func (f *fakeEventService) UpdateEdition(_ context.Context, _ uuid.UUID, _ event.UpdateEditionRequest) (*event.Edition, error) {
	return nil, event.ErrEditionNotFound
}

func (f *fakeEventService) DeleteEdition(_ context.Context, _ uuid.UUID) error {
	return event.ErrEditionNotFound
}

func (f *fakeEventService) EditionsByEventSlug(_ context.Context, _ string) ([]event.Edition, error) {
	return nil, nil
}

func (f *fakeEventService) EditionByEventSlugYear(_ context.Context, _ string, _ int) (*event.Edition, error) {
	return nil, event.ErrEditionNotFound
}

func (f *fakeEventService) FindOrCreateEventByName(_ context.Context, name string) (*event.Event, error) {
	for _, e := range f.events {
		if strings.Contains(strings.ToLower(e.Name), strings.ToLower(name)) {
			return e, nil
		}
	}
	entity := event.NewEvent(name, utils.Slug(name), nil)
	f.events = append(f.events, entity)
	return entity, nil
}

func (f *fakeEventService) FindOrCreateEdition(_ context.Context, eventID uuid.UUID, year int) (*event.Edition, bool, error) {
	for _, e := range f.editions {
		if e.EventID == eventID && e.Year == year {
			return e, false, nil
		}
	}

	var parentSlug string
	for _, e := range f.events {
		if e.ID == eventID {
			parentSlug = e.Slug
		}
	}
	entity := event.NewEdition(eventID, year, fmt.Sprintf("%s-%d", parentSlug, year))
	f.editions = append(f.editions, entity)
	return entity, true, nil
}

func (f *fakeEventService) FirstEdition(_ context.Context) (*event.Edition, error) {
	if len(f.editions) == 0 {
		return nil, event.ErrEditionNotFound
	}
	return f.editions[0], nil
}

type fakeStore struct {
	saved map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{saved: map[string][]byte{}} }

func (f *fakeStore) Save(name string, content []byte) (string, error) {
	f.saved[name] = content
	return "/uploads/" + name, nil
}

func (f *fakeStore) Remove(publicPath string) error {
	delete(f.saved, strings.TrimPrefix(publicPath, "/uploads/"))
	return nil
}

type fakeNotifier struct {
	notified []uuid.UUID
}

func (f *fakeNotifier) NotifyArticlePublished(_ context.Context, articleID uuid.UUID) {
	f.notified = append(f.notified, articleID)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

const importBib = `
@inproceedings{silva2024,
  title     = {Dados Abertos no Setor Publico},
  author    = {Silva, Joao and Souza, Ana},
  booktitle = {Congresso Brasileiro de Software},
  year      = {2024}
}

@inproceedings{souza2024,
  title     = {Qualidade de Dados},
  author    = {Souza, Ana},
  booktitle = {Congresso Brasileiro de Software},
  year      = {2024}
}
`

func newImporter() (article.Importer, *fakeArticleRepo, *fakeAuthorService, *fakeEventService, *fakeStore, *fakeNotifier) {
	repo := newFakeArticleRepo()
	authors := &fakeAuthorService{}
	events := &fakeEventService{}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	return NewImportService(repo, authors, events, store, notifier), repo, authors, events, store, notifier
}

func TestImportSaveCreatesArticlesAndEditions(t *testing.T) {
	importer, repo, authors, events, _, notifier := newImporter()

	report, err := importer.Save(context.Background(), strings.NewReader(importBib), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Created)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)
	assert.Equal(t, []string{"congresso-brasileiro-de-software-2024"}, report.EditionsCreated)

	// Ana Souza appears in both entries but becomes one author row.
	assert.Len(t, authors.authors, 2)
	assert.Len(t, events.events, 1)
	assert.Len(t, repo.articles, 2)
	assert.Len(t, notifier.notified, 2)
}

func TestImportSaveSkipsExistingArticles(t *testing.T) {
	importer, _, _, _, _, notifier := newImporter()

	_, err := importer.Save(context.Background(), strings.NewReader(importBib), nil)
	require.NoError(t, err)

	report, err := importer.Save(context.Background(), strings.NewReader(importBib), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 0, report.Created)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "artigo já existe nesta edição", report.Skipped[0].Reason)
	assert.Empty(t, report.EditionsCreated)
	assert.Len(t, notifier.notified, 2)
}

func TestImportSaveSkipsEntriesMissingRequiredFields(t *testing.T) {
	importer, repo, _, _, _, _ := newImporter()

	const bib = `
@misc{semautor,
  title = {Sem Autor},
  year  = {2024}
}
`
	report, err := importer.Save(context.Background(), strings.NewReader(bib), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 0, report.Created)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "semautor", report.Skipped[0].CiteKey)
	assert.Empty(t, repo.articles)
}

func TestImportSaveFallsBackToFirstEdition(t *testing.T) {
	importer, repo, _, events, _, _ := newImporter()

	const bib = `
@misc{avulso,
  title  = {Nota Avulsa},
  author = {Lima, Pedro}
}
`

	// No editions anywhere: the entry has nowhere to land.
	report, err := importer.Save(context.Background(), strings.NewReader(bib), nil)
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 0, report.Created)

	// With an existing edition the same entry is accepted.
	parent, err := events.FindOrCreateEventByName(context.Background(), "Evento Base")
	require.NoError(t, err)
	edition, _, err := events.FindOrCreateEdition(context.Background(), parent.ID, 2020)
	require.NoError(t, err)

	report, err = importer.Save(context.Background(), strings.NewReader(bib), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	require.Len(t, repo.articles, 1)
	assert.Equal(t, edition.ID, repo.articles[0].EditionID)
}

func TestImportSaveWithPDFs(t *testing.T) {
	importer, repo, _, _, store, _ := newImporter()

	const bib = `
@inproceedings{comvenue,
  title     = {Com Venue},
  author    = {Silva, Joao},
  booktitle = {Congresso X},
  year      = {2024}
}

@misc{semvenue,
  title  = {Sem Venue},
  author = {Souza, Ana}
}
`
	pdfs := map[string][]byte{
		"comvenue.pdf": []byte("%PDF-1.4"),
	}

	report, err := importer.Save(context.Background(), strings.NewReader(bib), pdfs)
	require.NoError(t, err)

	// With PDFs in play, venue fields become mandatory.
	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "semvenue", report.Skipped[0].CiteKey)

	require.Len(t, repo.articles, 1)
	assert.Equal(t, "/uploads/comvenue.pdf", repo.articles[0].PDFPath)
	assert.Contains(t, store.saved, "comvenue.pdf")
}

func TestImportPreviewDoesNotPersist(t *testing.T) {
	importer, repo, authors, events, _, notifier := newImporter()

	entries, err := importer.Preview(context.Background(), strings.NewReader(importBib))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "silva2024", entries[0].CiteKey)
	assert.Empty(t, repo.articles)
	assert.Empty(t, authors.authors)
	assert.Empty(t, events.events)
	assert.Empty(t, notifier.notified)
}
