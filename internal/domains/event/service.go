package event

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// CreateEvent derives the slug from the name when no sigla is given; an
	// explicit sigla that collides is a conflict, a derived one is uniqued.
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error)
	// DeleteEvent fails with ErrEventHasArticles while any article exists
	// under the event; empty editions are removed by cascade.
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	CreateEdition(ctx context.Context, req CreateEditionRequest) (*Edition, error)
	ListEditions(ctx context.Context) ([]Edition, error)
	UpdateEdition(ctx context.Context, id uuid.UUID, req UpdateEditionRequest) (*Edition, error)
	DeleteEdition(ctx context.Context, id uuid.UUID) error
	EditionsByEventSlug(ctx context.Context, slug string) ([]Edition, error)
	EditionByEventSlugYear(ctx context.Context, slug string, year int) (*Edition, error)

	// Ingestion helpers: reuse matching rows, create on miss. The bool
	// reports whether a new edition row was created.
	FindOrCreateEventByName(ctx context.Context, name string) (*Event, error)
	FindOrCreateEdition(ctx context.Context, eventID uuid.UUID, year int) (*Edition, bool, error)
	FirstEdition(ctx context.Context) (*Edition, error)
}
