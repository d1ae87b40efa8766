// Package domain contains the core business entities for the Passage reading backend.
package domain

import "time"

// DateLayout is the calendar-date format used for Book.PublishedDate.
const DateLayout = "2006-01-02"

// Book represents a source work that paragraphs are drawn from.
// The (Title, Author) pair is unique across all books; published date and
// language deliberately do not participate in duplicate detection.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedDate string    `json:"published_date"` // Calendar date, DateLayout form
	Language      string    `json:"language"`
	Source        string    `json:"source"` // URL the text was sourced from
	CreatedAt     time.Time `json:"created_at"`
}

// BookSummary is the book detail embedded in feed items.
type BookSummary struct {
	ID     string `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
