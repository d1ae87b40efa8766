package domain

import "time"

// UserIdentifier is an anonymous device/session handle, not an authenticated
// account. Identifier is the client-supplied string, unique across all users.
type UserIdentifier struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	CreatedAt  time.Time `json:"created_at"`
}
