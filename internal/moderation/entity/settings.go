package entity

// Settings is the persisted auto-approval policy for incoming feedback.
// Exactly one logical row exists; the lowest-id row is authoritative.
type Settings struct {
	ID                          int64 `db:"id" json:"-"`
	AutoApproveEnabled          bool  `db:"auto_approve_enabled" json:"auto_approve_enabled"`
	ManualReviewRatingThreshold int   `db:"manual_review_rating_threshold" json:"manual_review_rating_threshold"`
}
