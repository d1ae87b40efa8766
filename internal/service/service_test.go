package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
	"github.com/passageapp/passage-server/internal/store/sqlite"
)

// testServices bundles all services over one temporary SQLite store.
type testServices struct {
	Books      *BookService
	Paragraphs *ParagraphService
	Users      *UserService
	Events     *EventService
	Feed       *FeedService
	Store      store.Store
}

// setupTest creates the full service stack over a temp-dir store.
func setupTest(t *testing.T) *testServices {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.DiscardHandler)

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return &testServices{
		Books:      NewBookService(s, logger),
		Paragraphs: NewParagraphService(s, logger),
		Users:      NewUserService(s, logger),
		Events:     NewEventService(s, logger),
		Feed:       NewFeedService(s, logger),
		Store:      s,
	}
}

// seedBook inserts a book through the service layer.
func seedBook(t *testing.T, books *BookService, title, author string) *domain.Book {
	t.Helper()
	b, err := books.Create(context.Background(), title, author, "1965-08-01", "en", "https://example.com/book")
	require.NoError(t, err)
	return b
}

// seedParagraph inserts a paragraph through the service layer.
func seedParagraph(t *testing.T, paragraphs *ParagraphService, bookID, content string) *domain.Paragraph {
	t.Helper()
	p, err := paragraphs.Create(context.Background(), bookID, content)
	require.NoError(t, err)
	return p
}

// seedUser registers a user identifier through the service layer.
func seedUser(t *testing.T, users *UserService, identifier string) *domain.UserIdentifier {
	t.Helper()
	u, err := users.Create(context.Background(), identifier)
	require.NoError(t, err)
	return u
}
