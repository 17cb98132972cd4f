package entity

import "time"

// Feedback type values accepted from submitters.
const (
	TypeReview     = "review"
	TypeSuggestion = "suggestion"
)

// Feedback is a user-submitted review or suggestion. IsApproved is computed
// at creation from the moderation policy and only ever flips false -> true.
type Feedback struct {
	ID         int64     `db:"id" json:"id"`
	Type       string    `db:"type" json:"type"`
	Rating     int       `db:"rating" json:"rating"`
	Text       string    `db:"text" json:"text"`
	Name       string    `db:"name" json:"name"`
	Contact    string    `db:"contact" json:"contact"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	Source     *string   `db:"source" json:"source"`
}
