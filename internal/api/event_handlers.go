package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/passageapp/passage-server/internal/domain"
)

func (s *Server) registerEventRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEvents",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "List events",
		Description: "Returns all engagement events",
		Tags:        []string{"Events"},
	}, s.handleListEvents)

	huma.Register(s.api, huma.Operation{
		OperationID: "upsertEvent",
		Method:      http.MethodPost,
		Path:        "/events",
		Summary:     "Upsert event",
		Description: "Records an interaction for a (user, paragraph) pair. " +
			"Creates the event on first interaction (201) and patches the " +
			"supplied flags on subsequent ones (200).",
		Tags: []string{"Events"},
	}, s.handleUpsertEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserParagraphEvent",
		Method:      http.MethodGet,
		Path:        "/events/user/{user_id}/paragraph/{paragraph_id}",
		Summary:     "Get user-paragraph interaction",
		Description: "Returns the user's interaction with a paragraph, or an " +
			"all-false default when no interaction exists yet",
		Tags: []string{"Events"},
	}, s.handleGetUserParagraphEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEvent",
		Method:      http.MethodGet,
		Path:        "/events/{id}",
		Summary:     "Get event",
		Description: "Returns an event by ID",
		Tags:        []string{"Events"},
	}, s.handleGetEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEvent",
		Method:      http.MethodPut,
		Path:        "/events/{id}",
		Summary:     "Update event",
		Description: "Partially updates an event's flags; absent flags keep their values",
		Tags:        []string{"Events"},
	}, s.handleUpdateEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEvent",
		Method:      http.MethodDelete,
		Path:        "/events/{id}",
		Summary:     "Delete event",
		Description: "Deletes an event",
		Tags:        []string{"Events"},
	}, s.handleDeleteEvent)
}

// === DTOs ===

// EventResponse contains event data in API responses.
type EventResponse struct {
	ID           string    `json:"id" doc:"Event ID"`
	UserID       string    `json:"user_id" doc:"User ID"`
	ParagraphID  string    `json:"paragraph_id" doc:"Paragraph ID"`
	IsLiked      bool      `json:"is_liked" doc:"Liked flag"`
	IsDisliked   bool      `json:"is_disliked" doc:"Disliked flag"`
	IsHearted    bool      `json:"is_hearted" doc:"Hearted flag"`
	IsBookmarked bool      `json:"is_bookmarked" doc:"Bookmarked flag"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

func eventToResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		ParagraphID:  e.ParagraphID,
		IsLiked:      e.IsLiked,
		IsDisliked:   e.IsDisliked,
		IsHearted:    e.IsHearted,
		IsBookmarked: e.IsBookmarked,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ListEventsResponse contains a list of events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events" doc:"All events"`
}

// ListEventsOutput wraps the list events response for Huma.
type ListEventsOutput struct {
	Body ListEventsResponse
}

// EventFlagsRequest carries a partial flag update. Absent flags keep their
// stored values.
type EventFlagsRequest struct {
	IsLiked      *bool `json:"is_liked,omitempty" doc:"Liked flag"`
	IsDisliked   *bool `json:"is_disliked,omitempty" doc:"Disliked flag"`
	IsHearted    *bool `json:"is_hearted,omitempty" doc:"Hearted flag"`
	IsBookmarked *bool `json:"is_bookmarked,omitempty" doc:"Bookmarked flag"`
}

func (r EventFlagsRequest) toFlags() domain.EventFlags {
	return domain.EventFlags{
		IsLiked:      r.IsLiked,
		IsDisliked:   r.IsDisliked,
		IsHearted:    r.IsHearted,
		IsBookmarked: r.IsBookmarked,
	}
}

// UpsertEventRequest is the request body for the event upsert.
type UpsertEventRequest struct {
	UserID      string `json:"user_id" validate:"required" doc:"Client-supplied user identifier string"`
	ParagraphID string `json:"paragraph_id" validate:"required" doc:"Paragraph ID"`
	EventFlagsRequest
}

// UpsertEventInput wraps the upsert request for Huma.
type UpsertEventInput struct {
	Body UpsertEventRequest
}

// UpsertEventResponse is the upsert result, including whether the row was
// newly created.
type UpsertEventResponse struct {
	EventResponse
	Created bool `json:"created" doc:"True when this was the pair's first interaction"`
}

// UpsertEventOutput wraps the upsert response for Huma. Status is 201 for a
// newly created event and 200 for an update.
type UpsertEventOutput struct {
	Status int
	Body   UpsertEventResponse
}

// EventOutput wraps a single event response for Huma.
type EventOutput struct {
	Body EventResponse
}

// GetEventInput contains parameters for getting an event.
type GetEventInput struct {
	ID string `path:"id" doc:"Event ID"`
}

// UpdateEventInput wraps the update event request for Huma.
type UpdateEventInput struct {
	ID   string `path:"id" doc:"Event ID"`
	Body EventFlagsRequest
}

// DeleteEventInput contains parameters for deleting an event.
type DeleteEventInput struct {
	ID string `path:"id" doc:"Event ID"`
}

// GetUserParagraphEventInput contains parameters for the interaction lookup.
type GetUserParagraphEventInput struct {
	UserID      string `path:"user_id" doc:"Client-supplied user identifier string"`
	ParagraphID string `path:"paragraph_id" doc:"Paragraph ID"`
}

// InteractionResponse is the get-or-default interaction lookup result. ID and
// timestamps are omitted when no stored interaction exists.
type InteractionResponse struct {
	ID           string     `json:"id,omitempty" doc:"Event ID (absent for the synthetic default)"`
	UserID       string     `json:"user_id" doc:"Client-supplied user identifier string"`
	ParagraphID  string     `json:"paragraph_id" doc:"Paragraph ID"`
	IsLiked      bool       `json:"is_liked" doc:"Liked flag"`
	IsDisliked   bool       `json:"is_disliked" doc:"Disliked flag"`
	IsHearted    bool       `json:"is_hearted" doc:"Hearted flag"`
	IsBookmarked bool       `json:"is_bookmarked" doc:"Bookmarked flag"`
	CreatedAt    *time.Time `json:"created_at,omitempty" doc:"Creation time"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" doc:"Last update time"`
}

// InteractionOutput wraps the interaction response for Huma.
type InteractionOutput struct {
	Body InteractionResponse
}

// === Handlers ===

func (s *Server) handleListEvents(ctx context.Context, _ *struct{}) (*ListEventsOutput, error) {
	events, err := s.services.Event.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EventResponse, len(events))
	for i, e := range events {
		resp[i] = eventToResponse(e)
	}

	return &ListEventsOutput{Body: ListEventsResponse{Events: resp}}, nil
}

func (s *Server) handleUpsertEvent(ctx context.Context, input *UpsertEventInput) (*UpsertEventOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	e, created, err := s.services.Event.Upsert(ctx,
		input.Body.UserID,
		input.Body.ParagraphID,
		input.Body.toFlags(),
	)
	if err != nil {
		return nil, err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return &UpsertEventOutput{
		Status: status,
		Body: UpsertEventResponse{
			EventResponse: eventToResponse(e),
			Created:       created,
		},
	}, nil
}

func (s *Server) handleGetEvent(ctx context.Context, input *GetEventInput) (*EventOutput, error) {
	e, err := s.services.Event.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &EventOutput{Body: eventToResponse(e)}, nil
}

func (s *Server) handleUpdateEvent(ctx context.Context, input *UpdateEventInput) (*EventOutput, error) {
	e, err := s.services.Event.UpdateFlags(ctx, input.ID, input.Body.toFlags())
	if err != nil {
		return nil, err
	}
	return &EventOutput{Body: eventToResponse(e)}, nil
}

func (s *Server) handleDeleteEvent(ctx context.Context, input *DeleteEventInput) (*DeletedOutput, error) {
	if err := s.services.Event.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeletedOutput{Body: DeletedResponse{Deleted: true}}, nil
}

func (s *Server) handleGetUserParagraphEvent(ctx context.Context, input *GetUserParagraphEventInput) (*InteractionOutput, error) {
	e, err := s.services.Event.GetForUserParagraph(ctx, input.UserID, input.ParagraphID)
	if err != nil {
		return nil, err
	}

	resp := InteractionResponse{
		ID:           e.ID,
		UserID:       input.UserID,
		ParagraphID:  input.ParagraphID,
		IsLiked:      e.IsLiked,
		IsDisliked:   e.IsDisliked,
		IsHearted:    e.IsHearted,
		IsBookmarked: e.IsBookmarked,
	}
	if e.ID != "" {
		resp.CreatedAt = &e.CreatedAt
		resp.UpdatedAt = &e.UpdatedAt
	}

	return &InteractionOutput{Body: resp}, nil
}
