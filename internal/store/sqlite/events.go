package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// eventColumns is the ordered list of columns selected in event queries.
// Must match the scan order in scanEvent.
const eventColumns = `id, user_id, paragraph_id,
	is_liked, is_disliked, is_hearted, is_bookmarked,
	created_at, updated_at`

// scanEvent scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Event.
func scanEvent(scanner interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	var e domain.Event

	var (
		liked      int
		disliked   int
		hearted    int
		bookmarked int
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&e.ID,
		&e.UserID,
		&e.ParagraphID,
		&liked,
		&disliked,
		&hearted,
		&bookmarked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.IsLiked = liked != 0
	e.IsDisliked = disliked != 0
	e.IsHearted = hearted != 0
	e.IsBookmarked = bookmarked != 0

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CreateEvent inserts a new engagement event.
// Returns store.ErrAlreadyExists if an event for the (user, paragraph) pair
// already exists and store.ErrNotFound if either reference is dangling.
func (s *Store) CreateEvent(ctx context.Context, e *domain.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, user_id, paragraph_id,
			is_liked, is_disliked, is_hearted, is_bookmarked,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.UserID,
		e.ParagraphID,
		boolToInt(e.IsLiked),
		boolToInt(e.IsDisliked),
		boolToInt(e.IsHearted),
		boolToInt(e.IsBookmarked),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

// GetEventByID retrieves an event by its ID.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEventByUserParagraph retrieves the event for a (user, paragraph) pair.
// Returns store.ErrNotFound if no event exists for the pair.
func (s *Store) GetEventByUserParagraph(ctx context.Context, userID, paragraphID string) (*domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = ? AND paragraph_id = ?`,
		userID, paragraphID)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindOrCreateEvent finds the event for candidate's (user, paragraph) pair or
// inserts candidate as the first interaction. A concurrent first interaction
// losing the insert race falls back to retrieving the winner's row.
// Returns (event, created, error) where created is true if a new row was made.
func (s *Store) FindOrCreateEvent(ctx context.Context, candidate *domain.Event) (*domain.Event, bool, error) {
	// Try to find an existing event first.
	existing, err := s.GetEventByUserParagraph(ctx, candidate.UserID, candidate.ParagraphID)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	err = s.CreateEvent(ctx, candidate)
	if err == store.ErrAlreadyExists {
		// Lost the race; the pair now exists.
		existing, err = s.GetEventByUserParagraph(ctx, candidate.UserID, candidate.ParagraphID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return candidate, true, nil
}

// UpdateEventFlags persists the full flag set and updated timestamp of an
// existing event.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) UpdateEventFlags(ctx context.Context, e *domain.Event) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET is_liked = ?, is_disliked = ?, is_hearted = ?, is_bookmarked = ?, updated_at = ?
		WHERE id = ?`,
		boolToInt(e.IsLiked),
		boolToInt(e.IsDisliked),
		boolToInt(e.IsHearted),
		boolToInt(e.IsBookmarked),
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) DeleteEvent(ctx context.Context, eventID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListEvents returns all events ordered by creation time.
func (s *Store) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		events = []*domain.Event{}
	}

	return events, nil
}
