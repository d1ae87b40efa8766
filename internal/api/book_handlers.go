package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/books",
		Summary:     "List books",
		Description: "Returns all books",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/books",
		Summary:       "Create book",
		Description:   "Creates a new book; the (title, author) pair must be unique",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/books/{id}",
		Summary:     "Update book",
		Description: "Partially updates a book; omitted fields keep their values",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book and cascades to its paragraphs and events",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID            string    `json:"id" doc:"Book ID"`
	Title         string    `json:"title" doc:"Title"`
	Author        string    `json:"author" doc:"Author"`
	PublishedDate string    `json:"published_date" doc:"Publication date (YYYY-MM-DD)"`
	Language      string    `json:"language" doc:"Language code"`
	Source        string    `json:"source" doc:"Source URL"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation time"`
}

func bookToResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: b.PublishedDate,
		Language:      b.Language,
		Source:        b.Source,
		CreatedAt:     b.CreatedAt,
	}
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"All books"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// CreateBookRequest is the request body for creating a book.
type CreateBookRequest struct {
	Title         string `json:"title" validate:"required,max=500" doc:"Title"`
	Author        string `json:"author" validate:"required,max=200" doc:"Author"`
	PublishedDate string `json:"published_date" validate:"required,datetime=2006-01-02" doc:"Publication date (YYYY-MM-DD)"`
	Language      string `json:"language" validate:"required,max=50" doc:"Language code"`
	Source        string `json:"source" validate:"required,url" doc:"Source URL"`
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Body CreateBookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookRequest is the request body for partially updating a book.
// Absent fields keep their stored values.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=1,max=500" doc:"Title"`
	Author        *string `json:"author,omitempty" validate:"omitempty,min=1,max=200" doc:"Author"`
	PublishedDate *string `json:"published_date,omitempty" validate:"omitempty,datetime=2006-01-02" doc:"Publication date (YYYY-MM-DD)"`
	Language      *string `json:"language,omitempty" validate:"omitempty,min=1,max=50" doc:"Language code"`
	Source        *string `json:"source,omitempty" validate:"omitempty,url" doc:"Source URL"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// DeletedResponse confirms a deletion.
type DeletedResponse struct {
	Deleted bool `json:"deleted" doc:"Whether the resource was deleted"`
}

// DeletedOutput wraps the deletion confirmation for Huma.
type DeletedOutput struct {
	Body DeletedResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Book.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = bookToResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: resp}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	b, err := s.services.Book.Create(ctx,
		input.Body.Title,
		input.Body.Author,
		input.Body.PublishedDate,
		input.Body.Language,
		input.Body.Source,
	)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: bookToResponse(b)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	b, err := s.services.Book.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookToResponse(b)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	b, err := s.services.Book.Update(ctx, input.ID, service.BookUpdate{
		Title:         input.Body.Title,
		Author:        input.Body.Author,
		PublishedDate: input.Body.PublishedDate,
		Language:      input.Body.Language,
		Source:        input.Body.Source,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: bookToResponse(b)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*DeletedOutput, error) {
	if err := s.services.Book.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeletedOutput{Body: DeletedResponse{Deleted: true}}, nil
}
