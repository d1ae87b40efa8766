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

// ParagraphService orchestrates paragraph operations.
type ParagraphService struct {
	store  store.Store
	logger *slog.Logger
}

// NewParagraphService creates a new paragraph service.
func NewParagraphService(store store.Store, logger *slog.Logger) *ParagraphService {
	return &ParagraphService{
		store:  store,
		logger: logger,
	}
}

// Create inserts a new paragraph under an existing book.
func (s *ParagraphService) Create(ctx context.Context, bookID, content string) (*domain.Paragraph, error) {
	// Resolve the book first for a precise error; the foreign key still
	// backs this up against a concurrent book delete.
	if _, err := s.store.GetBookByID(ctx, bookID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get book")
	}

	paragraphID, err := id.Generate(id.PrefixParagraph)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate paragraph id")
	}

	p := &domain.Paragraph{
		ID:        paragraphID,
		BookID:    bookID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateParagraph(ctx, p); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create paragraph")
	}

	s.logger.Info("Paragraph created", "paragraph_id", p.ID, "book_id", bookID)

	return p, nil
}

// Get returns a paragraph by ID.
func (s *ParagraphService) Get(ctx context.Context, paragraphID string) (*domain.Paragraph, error) {
	p, err := s.store.GetParagraphByID(ctx, paragraphID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("paragraph not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get paragraph")
	}
	return p, nil
}

// UpdateContent replaces a paragraph's content. The owning book never
// changes.
func (s *ParagraphService) UpdateContent(ctx context.Context, paragraphID, content string) (*domain.Paragraph, error) {
	if err := s.store.UpdateParagraphContent(ctx, paragraphID, content); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("paragraph not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "update paragraph")
	}
	return s.Get(ctx, paragraphID)
}

// Delete removes a paragraph; its events cascade.
func (s *ParagraphService) Delete(ctx context.Context, paragraphID string) error {
	if err := s.store.DeleteParagraph(ctx, paragraphID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("paragraph not found")
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "delete paragraph")
	}

	s.logger.Info("Paragraph deleted", "paragraph_id", paragraphID)

	return nil
}

// List returns all paragraphs.
func (s *ParagraphService) List(ctx context.Context) ([]*domain.Paragraph, error) {
	paragraphs, err := s.store.ListParagraphs(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "list paragraphs")
	}
	return paragraphs, nil
}
