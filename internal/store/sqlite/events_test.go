package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// makeTestEvent creates a domain.Event with all flags false.
func makeTestEvent(id, userID, paragraphID string) *domain.Event {
	now := time.Now()
	return &domain.Event{
		ID:          id,
		UserID:      userID,
		ParagraphID: paragraphID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// seedInteraction inserts a book, paragraph, and user to hang events off.
func seedInteraction(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	seedBook(t, s, "bk-1")
	if err := s.CreateParagraph(ctx, makeTestParagraph("par-1", "bk-1", "text")); err != nil {
		t.Fatalf("seed paragraph: %v", err)
	}
	if err := s.CreateUser(ctx, makeTestUser("usr-1", "dev123")); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	e := makeTestEvent("evt-1", "usr-1", "par-1")
	e.IsLiked = true
	if err := s.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	got, err := s.GetEventByID(ctx, "evt-1")
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if !got.IsLiked {
		t.Error("IsLiked should round-trip as true")
	}
	if got.IsDisliked || got.IsHearted || got.IsBookmarked {
		t.Error("unset flags should round-trip as false")
	}

	got, err = s.GetEventByUserParagraph(ctx, "usr-1", "par-1")
	if err != nil {
		t.Fatalf("GetEventByUserParagraph: %v", err)
	}
	if got.ID != "evt-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "evt-1")
	}
}

func TestCreateEvent_DuplicatePair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	if err := s.CreateEvent(ctx, makeTestEvent("evt-1", "usr-1", "par-1")); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	err := s.CreateEvent(ctx, makeTestEvent("evt-2", "usr-1", "par-1"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateEvent_DanglingReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	err := s.CreateEvent(ctx, makeTestEvent("evt-1", "usr-missing", "par-1"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing user: expected ErrNotFound, got %v", err)
	}

	err = s.CreateEvent(ctx, makeTestEvent("evt-2", "usr-1", "par-missing"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing paragraph: expected ErrNotFound, got %v", err)
	}
}

func TestFindOrCreateEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	first := makeTestEvent("evt-1", "usr-1", "par-1")
	got, created, err := s.FindOrCreateEvent(ctx, first)
	if err != nil {
		t.Fatalf("FindOrCreateEvent: %v", err)
	}
	if !created {
		t.Error("first interaction should report created")
	}
	if got.ID != "evt-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "evt-1")
	}

	// Second call for the same pair returns the existing row.
	second := makeTestEvent("evt-2", "usr-1", "par-1")
	got, created, err = s.FindOrCreateEvent(ctx, second)
	if err != nil {
		t.Fatalf("FindOrCreateEvent: %v", err)
	}
	if created {
		t.Error("second interaction should not report created")
	}
	if got.ID != "evt-1" {
		t.Errorf("ID: got %q, want %q (existing row)", got.ID, "evt-1")
	}

	// Still exactly one row for the pair.
	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestUpdateEventFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	e := makeTestEvent("evt-1", "usr-1", "par-1")
	e.IsLiked = true
	if err := s.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	e.IsDisliked = true
	e.UpdatedAt = time.Now().Add(time.Second)
	if err := s.UpdateEventFlags(ctx, e); err != nil {
		t.Fatalf("UpdateEventFlags: %v", err)
	}

	got, err := s.GetEventByID(ctx, "evt-1")
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if !got.IsLiked || !got.IsDisliked {
		t.Errorf("flags: got liked=%v disliked=%v, want both true", got.IsLiked, got.IsDisliked)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("UpdatedAt should advance past CreatedAt")
	}

	missing := makeTestEvent("evt-missing", "usr-1", "par-1")
	if err := s.UpdateEventFlags(ctx, missing); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteParagraph_CascadesEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	if err := s.CreateEvent(ctx, makeTestEvent("evt-1", "usr-1", "par-1")); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := s.DeleteParagraph(ctx, "par-1"); err != nil {
		t.Fatalf("DeleteParagraph: %v", err)
	}

	_, err := s.GetEventByID(ctx, "evt-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("event should cascade with paragraph, got %v", err)
	}
}

func TestDeleteUser_CascadesEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	if err := s.CreateEvent(ctx, makeTestEvent("evt-1", "usr-1", "par-1")); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := s.DeleteUser(ctx, "usr-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	_, err := s.GetEventByID(ctx, "evt-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("event should cascade with user, got %v", err)
	}
}

func TestDeleteBook_CascadesTransitively(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedInteraction(t, s)

	if err := s.CreateEvent(ctx, makeTestEvent("evt-1", "usr-1", "par-1")); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// Book -> paragraph -> event.
	if err := s.DeleteBook(ctx, "bk-1"); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}

	if _, err := s.GetParagraphByID(ctx, "par-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("paragraph should be gone, got %v", err)
	}
	if _, err := s.GetEventByID(ctx, "evt-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("event should be gone, got %v", err)
	}

	// The user survives the cascade.
	if _, err := s.GetUserByID(ctx, "usr-1"); err != nil {
		t.Errorf("user should survive, got %v", err)
	}
}
