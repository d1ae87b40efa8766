package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/passageapp/passage-server/internal/domain"
)

func (s *Server) registerParagraphRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listParagraphs",
		Method:      http.MethodGet,
		Path:        "/paragraphs",
		Summary:     "List paragraphs",
		Description: "Returns all paragraphs",
		Tags:        []string{"Paragraphs"},
	}, s.handleListParagraphs)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createParagraph",
		Method:        http.MethodPost,
		Path:          "/paragraphs",
		Summary:       "Create paragraph",
		Description:   "Creates a paragraph under an existing book",
		Tags:          []string{"Paragraphs"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateParagraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "getParagraph",
		Method:      http.MethodGet,
		Path:        "/paragraphs/{id}",
		Summary:     "Get paragraph",
		Description: "Returns a paragraph by ID",
		Tags:        []string{"Paragraphs"},
	}, s.handleGetParagraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateParagraph",
		Method:      http.MethodPut,
		Path:        "/paragraphs/{id}",
		Summary:     "Update paragraph",
		Description: "Replaces a paragraph's content; the owning book never changes",
		Tags:        []string{"Paragraphs"},
	}, s.handleUpdateParagraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteParagraph",
		Method:      http.MethodDelete,
		Path:        "/paragraphs/{id}",
		Summary:     "Delete paragraph",
		Description: "Deletes a paragraph and cascades to its events",
		Tags:        []string{"Paragraphs"},
	}, s.handleDeleteParagraph)
}

// === DTOs ===

// ParagraphResponse contains paragraph data in API responses.
type ParagraphResponse struct {
	ID        string    `json:"id" doc:"Paragraph ID"`
	BookID    string    `json:"book_id" doc:"Owning book ID"`
	Content   string    `json:"content" doc:"Paragraph text"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

func paragraphToResponse(p *domain.Paragraph) ParagraphResponse {
	return ParagraphResponse{
		ID:        p.ID,
		BookID:    p.BookID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

// ListParagraphsResponse contains a list of paragraphs.
type ListParagraphsResponse struct {
	Paragraphs []ParagraphResponse `json:"paragraphs" doc:"All paragraphs"`
}

// ListParagraphsOutput wraps the list paragraphs response for Huma.
type ListParagraphsOutput struct {
	Body ListParagraphsResponse
}

// CreateParagraphRequest is the request body for creating a paragraph.
type CreateParagraphRequest struct {
	BookID  string `json:"book_id" validate:"required" doc:"Owning book ID"`
	Content string `json:"content" validate:"required" doc:"Paragraph text"`
}

// CreateParagraphInput wraps the create paragraph request for Huma.
type CreateParagraphInput struct {
	Body CreateParagraphRequest
}

// ParagraphOutput wraps a single paragraph response for Huma.
type ParagraphOutput struct {
	Body ParagraphResponse
}

// GetParagraphInput contains parameters for getting a paragraph.
type GetParagraphInput struct {
	ID string `path:"id" doc:"Paragraph ID"`
}

// UpdateParagraphRequest is the request body for updating a paragraph.
type UpdateParagraphRequest struct {
	Content string `json:"content" validate:"required" doc:"New paragraph text"`
}

// UpdateParagraphInput wraps the update paragraph request for Huma.
type UpdateParagraphInput struct {
	ID   string `path:"id" doc:"Paragraph ID"`
	Body UpdateParagraphRequest
}

// DeleteParagraphInput contains parameters for deleting a paragraph.
type DeleteParagraphInput struct {
	ID string `path:"id" doc:"Paragraph ID"`
}

// === Handlers ===

func (s *Server) handleListParagraphs(ctx context.Context, _ *struct{}) (*ListParagraphsOutput, error) {
	paragraphs, err := s.services.Paragraph.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ParagraphResponse, len(paragraphs))
	for i, p := range paragraphs {
		resp[i] = paragraphToResponse(p)
	}

	return &ListParagraphsOutput{Body: ListParagraphsResponse{Paragraphs: resp}}, nil
}

func (s *Server) handleCreateParagraph(ctx context.Context, input *CreateParagraphInput) (*ParagraphOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	p, err := s.services.Paragraph.Create(ctx, input.Body.BookID, input.Body.Content)
	if err != nil {
		return nil, err
	}

	return &ParagraphOutput{Body: paragraphToResponse(p)}, nil
}

func (s *Server) handleGetParagraph(ctx context.Context, input *GetParagraphInput) (*ParagraphOutput, error) {
	p, err := s.services.Paragraph.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ParagraphOutput{Body: paragraphToResponse(p)}, nil
}

func (s *Server) handleUpdateParagraph(ctx context.Context, input *UpdateParagraphInput) (*ParagraphOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	p, err := s.services.Paragraph.UpdateContent(ctx, input.ID, input.Body.Content)
	if err != nil {
		return nil, err
	}

	return &ParagraphOutput{Body: paragraphToResponse(p)}, nil
}

func (s *Server) handleDeleteParagraph(ctx context.Context, input *DeleteParagraphInput) (*DeletedOutput, error) {
	if err := s.services.Paragraph.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeletedOutput{Body: DeletedResponse{Deleted: true}}, nil
}
