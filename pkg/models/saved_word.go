package models

import "time"

// SavedWord is a word a user is learning, identified by the
// (user, word, language) triple. Marking it known excludes it from
// scheduling without deleting the row.
type SavedWord struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Word      string    `json:"word" db:"word"`
	Language  string    `json:"language" db:"language"`
	IsKnown   bool      `json:"is_known" db:"is_known"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
