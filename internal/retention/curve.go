package retention

import (
	"math"
	"time"

	"github.com/example/vocabhub/pkg/models"
)

// Curve rebuilds a word's forgetting curve from its creation date and its
// review history (oldest first): one trajectory point per historical
// review, plus the projection for the next review seeded from the most
// recent event. An empty history means "never reviewed" and yields only
// the projection from the creation date.
//
// The reference date walks the same way live scheduling does: it starts at
// creation and jumps forward only on failed reviews.
func Curve(word models.SavedWord, history []models.Review) models.ForgettingCurve {
	anchor := DateOnly(word.CreatedAt)
	reference := anchor

	points := make([]models.ReviewPoint, 0, len(history))
	for _, rv := range history {
		day := DateOnly(rv.ReviewedAt)
		points = append(points, models.ReviewPoint{
			ReviewedAt:   rv.ReviewedAt,
			Correct:      rv.Correct,
			IntervalDays: DaysBetween(anchor, day),
			Retention:    decayAcross(anchor, day, reference),
		})
		anchor = day
		if !rv.Correct {
			reference = day
		}
	}

	return models.ForgettingCurve{
		WordID:  word.ID,
		Word:    word.Word,
		History: points,
		Next:    Project(anchor, reference),
	}
}

// decayAcross decays retention from 1.0 at from until to, rate-indexed by
// elapsed days since reference. Returns 1.0 when to is not after from
// (same-day re-reviews).
func decayAcross(from, to, reference time.Time) float64 {
	retention := 1.0
	for day := from.AddDate(0, 0, 1); !day.After(to); day = day.AddDate(0, 0, 1) {
		retention *= math.Exp(-DecayRate(DaysBetween(reference, day)))
	}
	return retention
}
