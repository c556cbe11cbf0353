package models

import "time"

// Review is one appended review outcome for a saved word. Rows are never
// updated or deleted; the latest row per word (by reviewed_at, then id)
// carries the word's current schedule state.
type Review struct {
	ID             int64     `json:"id" db:"id"`
	WordID         int64     `json:"word_id" db:"word_id"`
	Correct        bool      `json:"correct" db:"correct"`
	ReviewedAt     time.Time `json:"reviewed_at" db:"reviewed_at"`
	NextReviewDate time.Time `json:"next_review_date" db:"next_review_date"`
}
