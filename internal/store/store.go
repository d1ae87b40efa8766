// Package store defines the persistence interface and storage error
// taxonomy for the Passage server.
package store

import (
	"context"

	"github.com/passageapp/passage-server/internal/domain"
)

// Store is the persistence interface consumed by the service layer.
// The canonical implementation is internal/store/sqlite.
type Store interface {
	// Books.
	CreateBook(ctx context.Context, b *domain.Book) error
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	GetBookByTitleAuthor(ctx context.Context, title, author string) (*domain.Book, error)
	UpdateBook(ctx context.Context, b *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
	ListBooks(ctx context.Context) ([]*domain.Book, error)

	// Paragraphs.
	CreateParagraph(ctx context.Context, p *domain.Paragraph) error
	GetParagraphByID(ctx context.Context, paragraphID string) (*domain.Paragraph, error)
	UpdateParagraphContent(ctx context.Context, paragraphID, content string) error
	DeleteParagraph(ctx context.Context, paragraphID string) error
	ListParagraphs(ctx context.Context) ([]*domain.Paragraph, error)
	ListParagraphsByBook(ctx context.Context, bookID string) ([]*domain.Paragraph, error)
	CountParagraphs(ctx context.Context) (int64, error)

	// Users.
	CreateUser(ctx context.Context, u *domain.UserIdentifier) error
	GetUserByID(ctx context.Context, userID string) (*domain.UserIdentifier, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*domain.UserIdentifier, error)
	UpdateUserIdentifier(ctx context.Context, userID, identifier string) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]*domain.UserIdentifier, error)

	// Events.
	CreateEvent(ctx context.Context, e *domain.Event) error
	GetEventByID(ctx context.Context, eventID string) (*domain.Event, error)
	GetEventByUserParagraph(ctx context.Context, userID, paragraphID string) (*domain.Event, error)
	FindOrCreateEvent(ctx context.Context, candidate *domain.Event) (*domain.Event, bool, error)
	UpdateEventFlags(ctx context.Context, e *domain.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context) ([]*domain.Event, error)

	// Feed.
	RandomParagraphs(ctx context.Context, limit int) ([]*domain.Paragraph, error)
	ParagraphEngagementCounts(ctx context.Context, paragraphIDs []string) (map[string]domain.EngagementCounts, error)
	UserEventsForParagraphs(ctx context.Context, userID string, paragraphIDs []string) (map[string]*domain.Event, error)

	Close() error
}
