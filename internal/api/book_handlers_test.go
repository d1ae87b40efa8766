package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/books", map[string]any{
		"title":          "Dune",
		"author":         "Herbert",
		"published_date": "1965-08-01",
		"language":       "en",
		"source":         "https://example.com/dune",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	env := decode[BookResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.ID)
	assert.Equal(t, "Dune", env.Data.Title)
	assert.Equal(t, "Herbert", env.Data.Author)
}

func TestCreateBook_Duplicate(t *testing.T) {
	ts := setupTestServer(t)
	ts.createBook(t, "Dune", "Herbert")

	resp := ts.api.Post("/books", map[string]any{
		"title":          "Dune",
		"author":         "Herbert",
		"published_date": "1965-08-01",
		"language":       "en",
		"source":         "https://example.com/dune",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	env := decode[struct{}](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "DUPLICATE", env.Code)
}

func TestCreateBook_ValidationFailure(t *testing.T) {
	ts := setupTestServer(t)

	// Missing title, malformed date and URL.
	resp := ts.api.Post("/books", map[string]any{
		"author":         "Herbert",
		"published_date": "not-a-date",
		"language":       "en",
		"source":         "not-a-url",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	env := decode[struct{}](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestGetBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/books/bk-missing")
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decode[struct{}](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestUpdateBook_Partial(t *testing.T) {
	ts := setupTestServer(t)
	bookID := ts.createBook(t, "Dune", "Herbert")

	resp := ts.api.Put("/books/"+bookID, map[string]any{
		"language": "fr",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[BookResponse](t, resp.Body.Bytes())
	assert.Equal(t, "fr", env.Data.Language)
	assert.Equal(t, "Dune", env.Data.Title, "omitted fields keep their values")
	assert.Equal(t, "Herbert", env.Data.Author)
}

func TestUpdateBook_DuplicatePair(t *testing.T) {
	ts := setupTestServer(t)
	ts.createBook(t, "Dune", "Herbert")
	otherID := ts.createBook(t, "Foundation", "Asimov")

	resp := ts.api.Put("/books/"+otherID, map[string]any{
		"title":  "Dune",
		"author": "Herbert",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)
	bookID := ts.createBook(t, "Dune", "Herbert")

	resp := ts.api.Delete("/books/" + bookID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/books/" + bookID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListBooks(t *testing.T) {
	ts := setupTestServer(t)
	ts.createBook(t, "Dune", "Herbert")
	ts.createBook(t, "Foundation", "Asimov")

	resp := ts.api.Get("/books")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[ListBooksResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Len(t, env.Data.Books, 2)
}

func TestBooks_TrailingSlashAccepted(t *testing.T) {
	ts := setupTestServer(t)
	ts.createBook(t, "Dune", "Herbert")

	// Trailing-slash paths are stripped by middleware.
	resp := ts.api.Get("/books/")
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}
