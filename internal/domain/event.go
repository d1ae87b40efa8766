package domain

import "time"

// Event records one user's engagement with one paragraph. There is at most
// one event per (UserID, ParagraphID) pair; flags toggle in place on the
// existing row rather than accumulating history.
type Event struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ParagraphID  string    `json:"paragraph_id"`
	IsLiked      bool      `json:"is_liked"`
	IsDisliked   bool      `json:"is_disliked"`
	IsHearted    bool      `json:"is_hearted"`
	IsBookmarked bool      `json:"is_bookmarked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventFlags carries a partial flag update. A nil field means "leave the
// stored value alone"; only the flags a caller explicitly sent are applied.
type EventFlags struct {
	IsLiked      *bool `json:"is_liked,omitempty"`
	IsDisliked   *bool `json:"is_disliked,omitempty"`
	IsHearted    *bool `json:"is_hearted,omitempty"`
	IsBookmarked *bool `json:"is_bookmarked,omitempty"`
}

// Apply copies the present flags onto e and reports whether anything changed.
func (f EventFlags) Apply(e *Event) bool {
	changed := false
	if f.IsLiked != nil && e.IsLiked != *f.IsLiked {
		e.IsLiked = *f.IsLiked
		changed = true
	}
	if f.IsDisliked != nil && e.IsDisliked != *f.IsDisliked {
		e.IsDisliked = *f.IsDisliked
		changed = true
	}
	if f.IsHearted != nil && e.IsHearted != *f.IsHearted {
		e.IsHearted = *f.IsHearted
		changed = true
	}
	if f.IsBookmarked != nil && e.IsBookmarked != *f.IsBookmarked {
		e.IsBookmarked = *f.IsBookmarked
		changed = true
	}
	return changed
}

// Empty reports whether no flag at all was supplied.
func (f EventFlags) Empty() bool {
	return f.IsLiked == nil && f.IsDisliked == nil && f.IsHearted == nil && f.IsBookmarked == nil
}

// FlagState is the per-user flag snapshot embedded in feed items. Users with
// no stored event for a paragraph get the zero value (all false).
type FlagState struct {
	IsLiked      bool `json:"is_liked"`
	IsDisliked   bool `json:"is_disliked"`
	IsHearted    bool `json:"is_hearted"`
	IsBookmarked bool `json:"is_bookmarked"`
}

// Flags returns the event's current flag snapshot.
func (e *Event) Flags() FlagState {
	return FlagState{
		IsLiked:      e.IsLiked,
		IsDisliked:   e.IsDisliked,
		IsHearted:    e.IsHearted,
		IsBookmarked: e.IsBookmarked,
	}
}
