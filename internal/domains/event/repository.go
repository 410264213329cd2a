package event

import (
	"context"

	"github.com/google/uuid"
)

// Repository covers persistence for events and their editions. They live in
// one package because an edition is meaningless without its event.
type Repository interface {
	CreateEvent(ctx context.Context, entity *Event) error
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, entity *Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	EventSlugExists(ctx context.Context, slug string) (bool, error)

	// FindEventByName resolves an event from a free-form name. With fuzzy
	// enabled the match is a case-insensitive substring search; otherwise it
	// is a case-insensitive exact match. Returns ErrEventNotFound on miss.
	FindEventByName(ctx context.Context, name string, fuzzy bool) (*Event, error)

	// CountArticlesUnderEvent counts articles across all editions of the
	// event. A non-zero count blocks event deletion.
	CountArticlesUnderEvent(ctx context.Context, id uuid.UUID) (int, error)

	CreateEdition(ctx context.Context, entity *Edition) error
	GetEditionByID(ctx context.Context, id uuid.UUID) (*Edition, error)
	ListEditions(ctx context.Context) ([]Edition, error)
	ListEditionsByEvent(ctx context.Context, eventID uuid.UUID) ([]Edition, error)
	GetEditionByEventYear(ctx context.Context, eventID uuid.UUID, year int) (*Edition, error)
	// FirstEdition returns the oldest edition in the store, used as the
	// fallback target for imported entries that carry no venue information.
	FirstEdition(ctx context.Context) (*Edition, error)
	UpdateEdition(ctx context.Context, entity *Edition) error
	DeleteEdition(ctx context.Context, id uuid.UUID) error
}
