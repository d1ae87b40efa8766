package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, identifier, created_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.UserIdentifier.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.UserIdentifier, error) {
	var u domain.UserIdentifier
	var createdAt string

	err := scanner.Scan(
		&u.ID,
		&u.Identifier,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user identifier.
// Returns store.ErrAlreadyExists if the identifier string is taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.UserIdentifier) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, identifier, created_at)
		VALUES (?, ?, ?)`,
		u.ID,
		u.Identifier,
		formatTime(u.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetUserByID retrieves a user by its ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.UserIdentifier, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, userID)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByIdentifier retrieves a user by its client-supplied identifier
// string.
// Returns store.ErrNotFound if no such user exists.
func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*domain.UserIdentifier, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE identifier = ?`, identifier)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserIdentifier changes a user's identifier string.
// Returns store.ErrNotFound if the user does not exist and
// store.ErrAlreadyExists if the new string belongs to another user.
func (s *Store) UpdateUserIdentifier(ctx context.Context, userID, identifier string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET identifier = ? WHERE id = ?`, identifier, userID)
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

// DeleteUser removes a user. Event rows cascade at the database level.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
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

// ListUsers returns all users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.UserIdentifier, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.UserIdentifier
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if users == nil {
		users = []*domain.UserIdentifier{}
	}

	return users, nil
}
