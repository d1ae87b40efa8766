package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/passageapp/passage-server/internal/domain"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List users",
		Description: "Returns all registered user identifiers",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/users",
		Summary:       "Create user",
		Description:   "Registers a new client-supplied identifier string",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Update user",
		Description: "Changes a user's identifier string",
		Tags:        []string{"Users"},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes a user and cascades to their events",
		Tags:        []string{"Users"},
	}, s.handleDeleteUser)
}

// === DTOs ===

// UserResponse contains user identifier data in API responses.
type UserResponse struct {
	ID         string    `json:"id" doc:"User ID"`
	Identifier string    `json:"identifier" doc:"Client-supplied identifier string"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
}

func userToResponse(u *domain.UserIdentifier) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Identifier: u.Identifier,
		CreatedAt:  u.CreatedAt,
	}
}

// ListUsersResponse contains a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"All users"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// CreateUserRequest is the request body for registering a user identifier.
type CreateUserRequest struct {
	Identifier string `json:"identifier" validate:"required,max=200" doc:"Client-supplied identifier string"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserOutput wraps a single user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// GetUserInput contains parameters for getting a user.
type GetUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UpdateUserRequest is the request body for changing a user's identifier.
type UpdateUserRequest struct {
	Identifier string `json:"identifier" validate:"required,max=200" doc:"New identifier string"`
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body UpdateUserRequest
}

// DeleteUserInput contains parameters for deleting a user.
type DeleteUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.User.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = userToResponse(u)
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	u, err := s.services.User.Create(ctx, input.Body.Identifier)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: userToResponse(u)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	u, err := s.services.User.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: userToResponse(u)}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	u, err := s.services.User.UpdateIdentifier(ctx, input.ID, input.Body.Identifier)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: userToResponse(u)}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *DeleteUserInput) (*DeletedOutput, error) {
	if err := s.services.User.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeletedOutput{Body: DeletedResponse{Deleted: true}}, nil
}
