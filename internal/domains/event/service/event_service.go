package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/event"
	"library-backend/internal/shared/utils"
)

type eventService struct {
	repo       event.Repository
	fuzzyMatch bool
}

// NewEventService wires the event business rules. fuzzyMatch controls whether
// ingestion resolves venue names by substring instead of exact match.
func NewEventService(repo event.Repository, fuzzyMatch bool) event.Service {
	return &eventService{
		repo:       repo,
		fuzzyMatch: fuzzyMatch,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req event.CreateEventRequest) (*event.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var slug string
	if req.Slug != "" {
		// An explicit sigla is the caller's identifier: collisions are an
		// error, not something to suffix away.
		slug = utils.Slug(req.Slug)
	} else {
		derived, err := s.uniqueEventSlug(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		slug = derived
	}

	entity := event.NewEvent(req.Name, slug, req.AdminID)
	if err := s.repo.CreateEvent(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return s.repo.GetEventByID(ctx, id)
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*event.Event, error) {
	return s.repo.GetEventBySlug(ctx, slug)
}

func (s *eventService) ListEvents(ctx context.Context) ([]event.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req event.UpdateEventRequest) (*event.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		entity.Name = req.Name
	}
	if req.Slug != "" {
		entity.Slug = utils.Slug(req.Slug)
	}

	if err := s.repo.UpdateEvent(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountArticlesUnderEvent(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return event.ErrEventHasArticles
	}

	return s.repo.DeleteEvent(ctx, id)
}

func (s *eventService) CreateEdition(ctx context.Context, req event.CreateEditionRequest) (*event.Edition, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.repo.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	entity := event.NewEdition(parent.ID, req.Year, editionSlug(parent.Slug, req.Year))
	entity.Description = req.Description
	entity.Location = req.Location
	entity.SiteURL = req.SiteURL

	if entity.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, err
	}
	if entity.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEdition(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *eventService) ListEditions(ctx context.Context) ([]event.Edition, error) {
	return s.repo.ListEditions(ctx)
}

func (s *eventService) UpdateEdition(ctx context.Context, id uuid.UUID, req event.UpdateEditionRequest) (*event.Edition, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetEditionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		entity.Description = req.Description
	}
	if req.Location != "" {
		entity.Location = req.Location
	}
	if req.SiteURL != "" {
		entity.SiteURL = req.SiteURL
	}
	if req.StartDate != "" {
		if entity.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != "" {
		if entity.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateEdition(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *eventService) DeleteEdition(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEdition(ctx, id)
}

func (s *eventService) EditionsByEventSlug(ctx context.Context, slug string) ([]event.Edition, error) {
	parent, err := s.repo.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEditionsByEvent(ctx, parent.ID)
}

func (s *eventService) EditionByEventSlugYear(ctx context.Context, slug string, year int) (*event.Edition, error) {
	parent, err := s.repo.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.GetEditionByEventYear(ctx, parent.ID, year)
}

func (s *eventService) FindOrCreateEventByName(ctx context.Context, name string) (*event.Event, error) {
	existing, err := s.repo.FindEventByName(ctx, name, s.fuzzyMatch)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, event.ErrEventNotFound) {
		return nil, fmt.Errorf("find event: %w", err)
	}

	slug, err := s.uniqueEventSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	entity := event.NewEvent(name, slug, nil)
	if err := s.repo.CreateEvent(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *eventService) FindOrCreateEdition(ctx context.Context, eventID uuid.UUID, year int) (*event.Edition, bool, error) {
	existing, err := s.repo.GetEditionByEventYear(ctx, eventID, year)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, event.ErrEditionNotFound) {
		return nil, false, fmt.Errorf("find edition: %w", err)
	}

	parent, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, false, err
	}

	entity := event.NewEdition(parent.ID, year, editionSlug(parent.Slug, year))
	if err := s.repo.CreateEdition(ctx, entity); err != nil {
		// Lost a race with a concurrent insert: the row we wanted exists now.
		if errors.Is(err, event.ErrDuplicateEdition) {
			won, raceErr := s.repo.GetEditionByEventYear(ctx, eventID, year)
			return won, false, raceErr
		}
		return nil, false, err
	}

	return entity, true, nil
}

func (s *eventService) FirstEdition(ctx context.Context) (*event.Edition, error) {
	return s.repo.FirstEdition(ctx)
}

func (s *eventService) uniqueEventSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slug(name)
	if base == "" {
		base = "evento"
	}

	slug := base
	for i := 1; ; i++ {
		exists, err := s.repo.EventSlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func editionSlug(eventSlug string, year int) string {
	return fmt.Sprintf("%s-%d", eventSlug, year)
}

func parseOptionalDate(value string) (*utils.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
