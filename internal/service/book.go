// Package service contains the business logic between the API layer and the
// store.
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

// BookService orchestrates book operations.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// BookUpdate carries a partial book update. Nil fields keep their stored
// value.
type BookUpdate struct {
	Title         *string
	Author        *string
	PublishedDate *string
	Language      *string
	Source        *string
}

// Create inserts a new book. The (title, author) pair must be unique.
func (s *BookService) Create(ctx context.Context, title, author, publishedDate, language, source string) (*domain.Book, error) {
	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate book id")
	}

	b := &domain.Book{
		ID:            bookID,
		Title:         title,
		Author:        author,
		PublishedDate: publishedDate,
		Language:      language,
		Source:        source,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateBook(ctx, b); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Duplicatef("book %q by %q already exists", title, author)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create book")
	}

	s.logger.Info("Book created", "book_id", b.ID, "title", title, "author", author)

	return b, nil
}

// Get returns a book by ID.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	b, err := s.store.GetBookByID(ctx, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get book")
	}
	return b, nil
}

// Update applies a partial update to a book. Omitted fields keep their
// current values; a resulting (title, author) collision with a different book
// is rejected.
func (s *BookService) Update(ctx context.Context, bookID string, upd BookUpdate) (*domain.Book, error) {
	b, err := s.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Author != nil {
		b.Author = *upd.Author
	}
	if upd.PublishedDate != nil {
		b.PublishedDate = *upd.PublishedDate
	}
	if upd.Language != nil {
		b.Language = *upd.Language
	}
	if upd.Source != nil {
		b.Source = *upd.Source
	}

	if err := s.store.UpdateBook(ctx, b); err != nil {
		switch {
		case domainerrors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.Duplicatef("book %q by %q already exists", b.Title, b.Author)
		case domainerrors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("book not found")
		default:
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "update book")
		}
	}

	return b, nil
}

// Delete removes a book; its paragraphs and their events cascade.
func (s *BookService) Delete(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("book not found")
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "delete book")
	}

	s.logger.Info("Book deleted", "book_id", bookID)

	return nil
}

// List returns all books.
func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "list books")
	}
	return books, nil
}
