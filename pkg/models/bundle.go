package models

import "time"

// BundleWord tags a word into a named vocabulary bundle (e.g. an exam-prep
// tier or the general-purpose set). Membership is keyed by word text and
// language, not by saved-word id.
type BundleWord struct {
	ID        int64     `json:"id" db:"id"`
	Bundle    string    `json:"bundle" db:"bundle"`
	Word      string    `json:"word" db:"word"`
	Language  string    `json:"language" db:"language"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
