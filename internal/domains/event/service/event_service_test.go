package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/event"
)

type fakeRepo struct {
	events       []*event.Event
	editions     []*event.Edition
	articleCount map[uuid.UUID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articleCount: map[uuid.UUID]int{}}
}

func (f *fakeRepo) CreateEvent(_ context.Context, entity *event.Event) error {
	for _, e := range f.events {
		if e.Slug == entity.Slug {
			return event.ErrDuplicateSlug
		}
	}
	f.events = append(f.events, entity)
	return nil
}

func (f *fakeRepo) GetEventByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (f *fakeRepo) GetEventBySlug(_ context.Context, slug string) (*event.Event, error) {
	for _, e := range f.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (f *fakeRepo) ListEvents(_ context.Context) ([]event.Event, error) {
	out := make([]event.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) UpdateEvent(_ context.Context, entity *event.Event) error {
	for i, e := range f.events {
		if e.ID == entity.ID {
			f.events[i] = entity
			return nil
		}
	}
	return event.ErrEventNotFound
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return event.ErrEventNotFound
}

func (f *fakeRepo) EventSlugExists(_ context.Context, slug string) (bool, error) {
	for _, e := range f.events {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FindEventByName(_ context.Context, name string, fuzzy bool) (*event.Event, error) {
	for _, e := range f.events {
		if fuzzy && strings.Contains(strings.ToLower(e.Name), strings.ToLower(name)) {
			return e, nil
		}
		if !fuzzy && strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (f *fakeRepo) CountArticlesUnderEvent(_ context.Context, id uuid.UUID) (int, error) {
	return f.articleCount[id], nil
}

func (f *fakeRepo) CreateEdition(_ context.Context, entity *event.Edition) error {
	for _, e := range f.editions {
		if e.EventID == entity.EventID && e.Year == entity.Year {
			return event.ErrDuplicateEdition
		}
		if e.Slug == entity.Slug {
			return event.ErrDuplicateSlug
		}
	}
	f.editions = append(f.editions, entity)
	return nil
}

func (f *fakeRepo) GetEditionByID(_ context.Context, id uuid.UUID) (*event.Edition, error) {
	for _, e := range f.editions {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, event.ErrEditionNotFound
}

func (f *fakeRepo) ListEditions(_ context.Context) ([]event.Edition, error) {
	out := make([]event.Edition, 0, len(f.editions))
	for _, e := range f.editions {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) ListEditionsByEvent(_ context.Context, eventID uuid.UUID) ([]event.Edition, error) {
	var out []event.Edition
	for _, e := range f.editions {
		if e.EventID == eventID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetEditionByEventYear(_ context.Context, eventID uuid.UUID, year int) (*event.Edition, error) {
	for _, e := range f.editions {
		if e.EventID == eventID && e.Year == year {
			return e, nil
		}
	}
	return nil, event.ErrEditionNotFound
}

func (f *fakeRepo) FirstEdition(_ context.Context) (*event.Edition, error) {
	if len(f.editions) == 0 {
		return nil, event.ErrEditionNotFound
	}
	first := f.editions[0]
	for _, e := range f.editions[1:] {
		if e.Year < first.Year {
			first = e
		}
	}
	return first, nil
}

func (f *fakeRepo) UpdateEdition(_ context.Context, entity *event.Edition) error {
	for i, e := range f.editions {
		if e.ID == entity.ID {
			f.editions[i] = entity
			return nil
		}
	}
	return event.ErrEditionNotFound
}

func (f *fakeRepo) DeleteEdition(_ context.Context, id uuid.UUID) error {
	for i, e := range f.editions {
		if e.ID == id {
			f.editions = append(f.editions[:i], f.editions[i+1:]...)
			return nil
		}
	}
	return event.ErrEditionNotFound
}

func TestCreateEventDerivesSlugFromName(t *testing.T) {
	svc := NewEventService(newFakeRepo(), true)

	created, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{
		Name: "Congresso Brasileiro de Software",
	})
	require.NoError(t, err)
	assert.Equal(t, "congresso-brasileiro-de-software", created.Slug)
}

func TestCreateEventExplicitSiglaConflicts(t *testing.T) {
	svc := NewEventService(newFakeRepo(), true)

	_, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{Name: "First", Slug: "CBSOFT"})
	require.NoError(t, err)

	_, err = svc.CreateEvent(context.Background(), event.CreateEventRequest{Name: "Second", Slug: "cbsoft"})
	assert.ErrorIs(t, err, event.ErrDuplicateSlug)
}

func TestCreateEventDerivedSlugIsUniqued(t *testing.T) {
	svc := NewEventService(newFakeRepo(), true)

	first, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{Name: "Workshop X"})
	require.NoError(t, err)
	second, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{Name: "Workshop X!"})
	require.NoError(t, err)

	assert.Equal(t, "workshop-x", first.Slug)
	assert.Equal(t, "workshop-x-1", second.Slug)
}

func TestDeleteEventBlockedByArticles(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEventService(repo, true)

	created, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{Name: "SBES"})
	require.NoError(t, err)

	repo.articleCount[created.ID] = 3
	err = svc.DeleteEvent(context.Background(), created.ID)
	assert.ErrorIs(t, err, event.ErrEventHasArticles)

	repo.articleCount[created.ID] = 0
	require.NoError(t, svc.DeleteEvent(context.Background(), created.ID))
	assert.Empty(t, repo.events)
}

func TestFindOrCreateEventFuzzyMatch(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEventService(repo, true)

	created, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{
		Name: "Simpósio Brasileiro de Engenharia de Software",
	})
	require.NoError(t, err)

	found, err := svc.FindOrCreateEventByName(context.Background(), "Engenharia de Software")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Len(t, repo.events, 1)
}

func TestFindOrCreateEventExactMatchOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEventService(repo, false)

	_, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{
		Name: "Simpósio Brasileiro de Engenharia de Software",
	})
	require.NoError(t, err)

	created, err := svc.FindOrCreateEventByName(context.Background(), "Engenharia de Software")
	require.NoError(t, err)
	assert.Len(t, repo.events, 2)
	assert.Equal(t, "engenharia-de-software", created.Slug)
}

func TestFindOrCreateEditionDerivesSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEventService(repo, true)

	parent, err := svc.CreateEvent(context.Background(), event.CreateEventRequest{Name: "SBES"})
	require.NoError(t, err)

	edition, created, err := svc.FindOrCreateEdition(context.Background(), parent.ID, 2024)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "sbes-2024", edition.Slug)

	again, created, err := svc.FindOrCreateEdition(context.Background(), parent.ID, 2024)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, edition.ID, again.ID)
	assert.Len(t, repo.editions, 1)
}
