package service

import (
	"context"
	"log/slog"
	"time"

	domainerrors "github.com/passageapp/passage-server/internal/errors"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/id"
	"github.com/passageapp/passage-server/internal/store"
)

// EventService orchestrates per-(user, paragraph) engagement events.
type EventService struct {
	store  store.Store
	logger *slog.Logger
}

// NewEventService creates a new event service.
func NewEventService(store store.Store, logger *slog.Logger) *EventService {
	return &EventService{
		store:  store,
		logger: logger,
	}
}

// Upsert records an interaction for the (user, paragraph) pair identified by
// the client-supplied identifier string and paragraph ID. The event row is
// fetched or created atomically; only the flags present in flags are
// overwritten. Returns created=true when this was the pair's first
// interaction.
func (s *EventService) Upsert(ctx context.Context, userIdentifier, paragraphID string, flags domain.EventFlags) (*domain.Event, bool, error) {
	user, err := s.store.GetUserByIdentifier(ctx, userIdentifier)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, false, domainerrors.NotFound("user not found")
		}
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeInternal, "get user")
	}

	if !id.IsValid(id.PrefixParagraph, paragraphID) {
		return nil, false, domainerrors.Validationf("malformed paragraph id %q", paragraphID)
	}
	paragraph, err := s.store.GetParagraphByID(ctx, paragraphID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, false, domainerrors.NotFound("paragraph not found")
		}
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeInternal, "get paragraph")
	}

	eventID, err := id.Generate(id.PrefixEvent)
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate event id")
	}

	now := time.Now()
	candidate := &domain.Event{
		ID:          eventID,
		UserID:      user.ID,
		ParagraphID: paragraph.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	flags.Apply(candidate)

	event, created, err := s.store.FindOrCreateEvent(ctx, candidate)
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeInternal, "find or create event")
	}

	if !created {
		flags.Apply(event)
		event.UpdatedAt = time.Now()
		if err := s.store.UpdateEventFlags(ctx, event); err != nil {
			return nil, false, domainerrors.Wrap(err, domainerrors.CodeInternal, "update event flags")
		}
	}

	s.logger.Info("Event upserted",
		"event_id", event.ID,
		"user_id", user.ID,
		"paragraph_id", paragraph.ID,
		"created", created)

	return event, created, nil
}

// Get returns an event by ID.
func (s *EventService) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	e, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("event not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get event")
	}
	return e, nil
}

// UpdateFlags applies a partial flag update to an event addressed directly by
// ID. Absent flags keep their stored values.
func (s *EventService) UpdateFlags(ctx context.Context, eventID string, flags domain.EventFlags) (*domain.Event, error) {
	e, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	flags.Apply(e)
	e.UpdatedAt = time.Now()

	if err := s.store.UpdateEventFlags(ctx, e); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("event not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "update event flags")
	}

	return e, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, eventID string) error {
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("event not found")
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "delete event")
	}
	return nil
}

// List returns all events.
func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "list events")
	}
	return events, nil
}

// GetForUserParagraph returns the stored event for the pair, or a synthetic
// all-false event when the user has not interacted with the paragraph yet.
// Absence of an interaction is a valid state, never an error; a synthetic
// result has an empty ID and zero timestamps.
func (s *EventService) GetForUserParagraph(ctx context.Context, userIdentifier, paragraphID string) (*domain.Event, error) {
	user, err := s.store.GetUserByIdentifier(ctx, userIdentifier)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get user")
	}

	if !id.IsValid(id.PrefixParagraph, paragraphID) {
		return nil, domainerrors.Validationf("malformed paragraph id %q", paragraphID)
	}
	paragraph, err := s.store.GetParagraphByID(ctx, paragraphID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("paragraph not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get paragraph")
	}

	e, err := s.store.GetEventByUserParagraph(ctx, user.ID, paragraph.ID)
	if err == nil {
		return e, nil
	}
	if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get event")
	}

	return &domain.Event{
		UserID:      user.ID,
		ParagraphID: paragraph.ID,
	}, nil
}
