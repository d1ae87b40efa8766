package api

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/passageapp/passage-server/internal/config"
	"github.com/passageapp/passage-server/internal/service"
	"github.com/passageapp/passage-server/internal/store/sqlite"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a fully wired server over a temp-dir store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{
			// Generous limits so tests never trip the limiter.
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
	}

	services := &Services{
		Book:      service.NewBookService(st, logger),
		Paragraph: service.NewParagraphService(st, logger),
		User:      service.NewUserService(st, logger),
		Event:     service.NewEventService(st, logger),
		Feed:      service.NewFeedService(st, logger),
	}

	s := NewServer(cfg, st, services, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// decode unmarshals a response body into an envelope of T.
func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

// createBook creates a book via the API and returns its ID.
func (ts *testServer) createBook(t *testing.T, title, author string) string {
	t.Helper()

	resp := ts.api.Post("/books", map[string]any{
		"title":          title,
		"author":         author,
		"published_date": "1965-08-01",
		"language":       "en",
		"source":         "https://example.com/" + title,
	})
	require.Equal(t, 201, resp.Code, "create book failed: %s", resp.Body.String())

	env := decode[BookResponse](t, resp.Body.Bytes())
	return env.Data.ID
}

// createParagraph creates a paragraph via the API and returns its ID.
func (ts *testServer) createParagraph(t *testing.T, bookID, content string) string {
	t.Helper()

	resp := ts.api.Post("/paragraphs", map[string]any{
		"book_id": bookID,
		"content": content,
	})
	require.Equal(t, 201, resp.Code, "create paragraph failed: %s", resp.Body.String())

	env := decode[ParagraphResponse](t, resp.Body.Bytes())
	return env.Data.ID
}

// createUser registers an identifier via the API and returns the user ID.
func (ts *testServer) createUser(t *testing.T, identifier string) string {
	t.Helper()

	resp := ts.api.Post("/users", map[string]any{"identifier": identifier})
	require.Equal(t, 201, resp.Code, "create user failed: %s", resp.Body.String())

	env := decode[UserResponse](t, resp.Body.Bytes())
	return env.Data.ID
}
