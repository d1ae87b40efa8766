package domain

import "time"

// EngagementCounts aggregates flag totals for a paragraph across all users.
// Each counter is the number of events with that flag currently true.
type EngagementCounts struct {
	Likes     int64 `json:"likes"`
	Dislikes  int64 `json:"dislikes"`
	Hearts    int64 `json:"hearts"`
	Bookmarks int64 `json:"bookmarks"`
}

// FeedItem is one randomly selected paragraph enriched with its book,
// aggregate engagement, and the requesting user's own flags.
type FeedItem struct {
	ParagraphID      string           `json:"paragraph_id"`
	Content          string           `json:"content"`
	CreatedAt        time.Time        `json:"created_at"`
	Book             BookSummary      `json:"book"`
	Stats            EngagementCounts `json:"stats"`
	UserInteractions FlagState        `json:"user_interactions"`
}
