package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// makeTestUser creates a domain.UserIdentifier with sensible defaults.
func makeTestUser(id, identifier string) *domain.UserIdentifier {
	return &domain.UserIdentifier{
		ID:         id,
		Identifier: identifier,
		CreatedAt:  time.Now(),
	}
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("usr-1", "dev123")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByID(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Identifier != "dev123" {
		t.Errorf("Identifier: got %q, want %q", got.Identifier, "dev123")
	}

	got, err = s.GetUserByIdentifier(ctx, "dev123")
	if err != nil {
		t.Fatalf("GetUserByIdentifier: %v", err)
	}
	if got.ID != "usr-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "usr-1")
	}
}

func TestCreateUser_DuplicateIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("usr-1", "dev123")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := s.CreateUser(ctx, makeTestUser("usr-2", "dev123"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateUserIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("usr-1", "dev123")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, makeTestUser("usr-2", "dev456")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := s.UpdateUserIdentifier(ctx, "usr-1", "dev789"); err != nil {
		t.Fatalf("UpdateUserIdentifier: %v", err)
	}

	got, err := s.GetUserByID(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Identifier != "dev789" {
		t.Errorf("Identifier: got %q, want %q", got.Identifier, "dev789")
	}

	// Colliding with a different user's identifier fails.
	err = s.UpdateUserIdentifier(ctx, "usr-1", "dev456")
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	err = s.UpdateUserIdentifier(ctx, "usr-missing", "devX")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("usr-1", "dev123")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := s.DeleteUser(ctx, "usr-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	_, err := s.GetUserByID(ctx, "usr-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty list, got %d users", len(users))
	}

	if err := s.CreateUser(ctx, makeTestUser("usr-1", "dev123")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	users, err = s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}
