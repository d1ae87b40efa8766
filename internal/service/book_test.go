package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/passageapp/passage-server/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestBookCreate_DuplicatePair(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	seedBook(t, svc.Books, "Dune", "Herbert")

	_, err := svc.Books.Create(ctx, "Dune", "Herbert", "1965-08-01", "en", "https://example.com/dune")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicate))

	// Changing either half of the pair succeeds.
	_, err = svc.Books.Create(ctx, "Dune", "Villeneuve", "2021-10-22", "en", "https://example.com/dune-film")
	assert.NoError(t, err)
	_, err = svc.Books.Create(ctx, "Dune Messiah", "Herbert", "1969-07-01", "en", "https://example.com/messiah")
	assert.NoError(t, err)
}

func TestBookGet_NotFound(t *testing.T) {
	svc := setupTest(t)

	_, err := svc.Books.Get(context.Background(), "bk-missing")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestBookUpdate_Partial(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	b := seedBook(t, svc.Books, "Dune", "Herbert")

	got, err := svc.Books.Update(ctx, b.ID, BookUpdate{Language: strPtr("fr")})
	require.NoError(t, err)

	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, "Dune", got.Title, "omitted fields keep their values")
	assert.Equal(t, "Herbert", got.Author)
}

func TestBookUpdate_DuplicatePair(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	seedBook(t, svc.Books, "Dune", "Herbert")
	other := seedBook(t, svc.Books, "Foundation", "Asimov")

	// Moving other onto the existing pair collides with a different book.
	_, err := svc.Books.Update(ctx, other.ID, BookUpdate{
		Title:  strPtr("Dune"),
		Author: strPtr("Herbert"),
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicate))

	// A no-op update of a book onto its own pair is fine.
	_, err = svc.Books.Update(ctx, other.ID, BookUpdate{Title: strPtr("Foundation")})
	assert.NoError(t, err)
}

func TestBookDelete_CascadesToEvents(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	b := seedBook(t, svc.Books, "Dune", "Herbert")
	p := seedParagraph(t, svc.Paragraphs, b.ID, "It is by will alone I set my mind in motion.")
	seedUser(t, svc.Users, "dev123")

	liked := true
	e, _, err := svc.Events.Upsert(ctx, "dev123", p.ID, eventFlags(&liked, nil, nil, nil))
	require.NoError(t, err)

	require.NoError(t, svc.Books.Delete(ctx, b.ID))

	_, err = svc.Paragraphs.Get(ctx, p.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "paragraph should cascade")

	_, err = svc.Events.Get(ctx, e.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "event should cascade")
}

func TestParagraphCreate_MissingBook(t *testing.T) {
	svc := setupTest(t)

	_, err := svc.Paragraphs.Create(context.Background(), "bk-missing", "text")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestUserCreate_DuplicateIdentifier(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	seedUser(t, svc.Users, "dev123")

	_, err := svc.Users.Create(ctx, "dev123")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicate))
}

func TestUserUpdateIdentifier_Collision(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	u := seedUser(t, svc.Users, "dev123")
	seedUser(t, svc.Users, "dev456")

	_, err := svc.Users.UpdateIdentifier(ctx, u.ID, "dev456")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicate))

	got, err := svc.Users.UpdateIdentifier(ctx, u.ID, "dev789")
	require.NoError(t, err)
	assert.Equal(t, "dev789", got.Identifier)
}
