package domain

import "time"

// Paragraph is a unit of book text served in the feed.
// A paragraph belongs to exactly one book for its lifetime and is removed
// when that book is deleted.
type Paragraph struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
