package sqlite

import (
	"context"

	"github.com/passageapp/passage-server/internal/domain"
)

// RandomParagraphs returns a uniform sample without replacement of up to
// limit paragraphs. Fewer than limit paragraphs in the store yields all of
// them in random order.
func (s *Store) RandomParagraphs(ctx context.Context, limit int) ([]*domain.Paragraph, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paragraphColumns+` FROM paragraphs ORDER BY RANDOM() LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectParagraphs(rows)
}

// ParagraphEngagementCounts returns per-paragraph aggregate flag counts for
// the given paragraph IDs. Paragraphs with no events are absent from the map;
// callers treat absence as all-zero.
func (s *Store) ParagraphEngagementCounts(ctx context.Context, paragraphIDs []string) (map[string]domain.EngagementCounts, error) {
	counts := make(map[string]domain.EngagementCounts, len(paragraphIDs))
	if len(paragraphIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT paragraph_id,
			SUM(is_liked), SUM(is_disliked), SUM(is_hearted), SUM(is_bookmarked)
		FROM events
		WHERE paragraph_id IN (` + placeholders(len(paragraphIDs)) + `)
		GROUP BY paragraph_id`

	rows, err := s.db.QueryContext(ctx, query, toAnySlice(paragraphIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var c domain.EngagementCounts
		if err := rows.Scan(&id, &c.Likes, &c.Dislikes, &c.Hearts, &c.Bookmarks); err != nil {
			return nil, err
		}
		counts[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// UserEventsForParagraphs returns the user's events for the given paragraph
// IDs, keyed by paragraph ID. Paragraphs the user never interacted with are
// absent from the map.
func (s *Store) UserEventsForParagraphs(ctx context.Context, userID string, paragraphIDs []string) (map[string]*domain.Event, error) {
	events := make(map[string]*domain.Event, len(paragraphIDs))
	if len(paragraphIDs) == 0 {
		return events, nil
	}

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE user_id = ? AND paragraph_id IN (` + placeholders(len(paragraphIDs)) + `)`

	args := append([]any{userID}, toAnySlice(paragraphIDs)...)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events[e.ParagraphID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := range n {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
