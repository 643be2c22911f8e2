package service

import "time"

// ReactionState is the like/dislike state of a (user, film) pair after a toggle.
type ReactionState string

const (
	ReactionLiked    ReactionState = "liked"
	ReactionDisliked ReactionState = "disliked"
	ReactionNeutral  ReactionState = "neutral"
)

// ReactionResult is returned by the like/dislike toggles.
type ReactionResult struct {
	State     ReactionState `json:"state"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BookmarkResult distinguishes a state change from a non-fatal informational
// outcome (e.g. the film was already bookmarked).
type BookmarkResult struct {
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message"`
}

// CategorySummary is the category projection embedded in film summaries.
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FilmSummary is the film projection returned by list queries and
// recommendations. Category is nil when the film's category was deleted.
type FilmSummary struct {
	ID               uint             `json:"id"`
	Title            string           `json:"title"`
	ReleaseDate      *time.Time       `json:"release_date,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	ShortDescription string           `json:"short_description,omitempty"`
	LongDescription  string           `json:"long_description,omitempty"`
	Category         *CategorySummary `json:"category,omitempty"`
}

// UserSummary is the public user projection.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FriendRequestSummary is a pending friend request as seen by its receiver.
type FriendRequestSummary struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
