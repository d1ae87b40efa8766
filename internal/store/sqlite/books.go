package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, published_date, language, source, created_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	var createdAt string

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.PublishedDate,
		&b.Language,
		&b.Source,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book.
// Returns store.ErrAlreadyExists on a duplicate (title, author) pair.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, published_date, language, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.Title,
		b.Author,
		b.PublishedDate,
		b.Language,
		b.Source,
		formatTime(b.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBookByID retrieves a book by its ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, bookID)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByTitleAuthor retrieves a book by its (title, author) pair.
// Returns store.ErrNotFound if no such book exists.
func (s *Store) GetBookByTitleAuthor(ctx context.Context, title, author string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title = ? AND author = ?`, title, author)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook persists all mutable fields of an existing book.
// Returns store.ErrNotFound if the book does not exist and
// store.ErrAlreadyExists if the new (title, author) pair collides.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, author = ?, published_date = ?, language = ?, source = ?
		WHERE id = ?`,
		b.Title,
		b.Author,
		b.PublishedDate,
		b.Language,
		b.Source,
		b.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
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

// DeleteBook removes a book. Paragraph and event rows cascade at the
// database level.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, bookID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
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

// ListBooks returns all books ordered by creation time.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if books == nil {
		books = []*domain.Book{}
	}

	return books, nil
}
