package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// paragraphColumns is the ordered list of columns selected in paragraph
// queries. Must match the scan order in scanParagraph.
const paragraphColumns = `id, book_id, content, created_at`

// scanParagraph scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Paragraph.
func scanParagraph(scanner interface{ Scan(dest ...any) error }) (*domain.Paragraph, error) {
	var p domain.Paragraph
	var createdAt string

	err := scanner.Scan(
		&p.ID,
		&p.BookID,
		&p.Content,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateParagraph inserts a new paragraph.
// Returns store.ErrNotFound if the referenced book does not exist.
func (s *Store) CreateParagraph(ctx context.Context, p *domain.Paragraph) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO paragraphs (id, book_id, content, created_at)
		VALUES (?, ?, ?, ?)`,
		p.ID,
		p.BookID,
		p.Content,
		formatTime(p.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

// GetParagraphByID retrieves a paragraph by its ID.
// Returns store.ErrNotFound if the paragraph does not exist.
func (s *Store) GetParagraphByID(ctx context.Context, paragraphID string) (*domain.Paragraph, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paragraphColumns+` FROM paragraphs WHERE id = ?`, paragraphID)

	p, err := scanParagraph(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateParagraphContent updates the content of an existing paragraph.
// The owning book never changes after creation.
// Returns store.ErrNotFound if the paragraph does not exist.
func (s *Store) UpdateParagraphContent(ctx context.Context, paragraphID, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE paragraphs SET content = ? WHERE id = ?`, content, paragraphID)
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

// DeleteParagraph removes a paragraph. Event rows cascade at the database
// level.
// Returns store.ErrNotFound if the paragraph does not exist.
func (s *Store) DeleteParagraph(ctx context.Context, paragraphID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM paragraphs WHERE id = ?`, paragraphID)
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

// ListParagraphs returns all paragraphs ordered by creation time.
func (s *Store) ListParagraphs(ctx context.Context) ([]*domain.Paragraph, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paragraphColumns+` FROM paragraphs ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectParagraphs(rows)
}

// ListParagraphsByBook returns all paragraphs belonging to a book.
func (s *Store) ListParagraphsByBook(ctx context.Context, bookID string) ([]*domain.Paragraph, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paragraphColumns+` FROM paragraphs WHERE book_id = ? ORDER BY created_at ASC`,
		bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectParagraphs(rows)
}

// CountParagraphs returns the total number of paragraphs in the store.
func (s *Store) CountParagraphs(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM paragraphs`).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func collectParagraphs(rows *sql.Rows) ([]*domain.Paragraph, error) {
	var paragraphs []*domain.Paragraph
	for rows.Next() {
		p, err := scanParagraph(rows)
		if err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if paragraphs == nil {
		paragraphs = []*domain.Paragraph{}
	}

	return paragraphs, nil
}
