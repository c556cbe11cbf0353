package models

import "time"

// Sources a batch entry can come from, in tier order.
const (
	SourceDue       = "due"
	SourceNewBundle = "new_bundle"
	SourceFallback  = "fallback"
)

// Projection is the result of simulating retention decay forward from an
// anchor date: the date retention crosses the review threshold, the
// retention reached on that date, and how many days the simulation ran.
// Converged is false when the simulation hit its day cap before crossing
// the threshold; callers must treat that retention as best-effort.
type Projection struct {
	NextReviewDate time.Time `json:"next_review_date"`
	Retention      float64   `json:"retention"`
	DaysElapsed    int       `json:"days_elapsed"`
	Converged      bool      `json:"converged"`
}

// StudyWord is one entry of a practice batch. For the due tier WordID is
// the saved-word id. New-tier entries have no saved-word id yet, so
// WordID is zero and reviews for them are keyed by word and language.
type StudyWord struct {
	WordID   int64  `json:"word_id"`
	Word     string `json:"word"`
	Language string `json:"language"`
	Source   string `json:"source"`
}

// ReviewPoint is one historical review on a word's forgetting curve: the
// interval since the previous anchor and the modeled retention at the
// moment the review happened.
type ReviewPoint struct {
	ReviewedAt   time.Time `json:"reviewed_at"`
	Correct      bool      `json:"correct"`
	IntervalDays int       `json:"interval_days"`
	Retention    float64   `json:"retention"`
}

// ForgettingCurve is a word's full curve: the backward-looking trajectory
// over its actual review history plus the forward projection for the next
// review.
type ForgettingCurve struct {
	WordID  int64         `json:"word_id"`
	Word    string        `json:"word"`
	History []ReviewPoint `json:"history"`
	Next    Projection    `json:"next"`
}
