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

// UserService orchestrates anonymous user identifier operations.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// Create registers a new client-supplied identifier string.
func (s *UserService) Create(ctx context.Context, identifier string) (*domain.UserIdentifier, error) {
	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate user id")
	}

	u := &domain.UserIdentifier{
		ID:         userID,
		Identifier: identifier,
		CreatedAt:  time.Now(),
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Duplicatef("identifier %q is already registered", identifier)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create user")
	}

	s.logger.Info("User created", "user_id", u.ID)

	return u, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.UserIdentifier, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get user")
	}
	return u, nil
}

// UpdateIdentifier changes a user's identifier string. The new string must
// not belong to a different user.
func (s *UserService) UpdateIdentifier(ctx context.Context, userID, identifier string) (*domain.UserIdentifier, error) {
	if err := s.store.UpdateUserIdentifier(ctx, userID, identifier); err != nil {
		switch {
		case domainerrors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.Duplicatef("identifier %q is already registered", identifier)
		case domainerrors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("user not found")
		default:
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "update user")
		}
	}
	return s.Get(ctx, userID)
}

// Delete removes a user; their events cascade.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "delete user")
	}

	s.logger.Info("User deleted", "user_id", userID)

	return nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.UserIdentifier, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "list users")
	}
	return users, nil
}
