package retention

import (
	"math"
	"time"

	"github.com/example/vocabhub/pkg/models"
)

const (
	// ReviewThreshold is the retention level at which a word is due again.
	ReviewThreshold = 0.40
	// MaxProjectionDays bounds the forward simulation.
	MaxProjectionDays = 730
)

// DateOnly truncates t to midnight UTC. All scheduling math runs on whole
// calendar days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b (date parts only).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// Project simulates retention decay forward from anchor until it crosses
// ReviewThreshold, one day at a time. Retention starts at 1.0 on the anchor
// date; each simulated day looks up the decay rate by elapsed days since
// reference and multiplies retention by exp(-rate).
//
// On the all-success path reference stays pinned at the word's creation
// date, so older words land in slower decay buckets and their intervals
// stretch. A failed review resets reference to the failure date, restarting
// the elapsed-time clock. The failure reset is intended behavior pending
// product confirmation; do not change the convention silently.
//
// If the threshold is not crossed within MaxProjectionDays the result has
// Converged false and carries whatever retention was reached at the cap.
func Project(anchor, reference time.Time) models.Projection {
	anchor = DateOnly(anchor)
	reference = DateOnly(reference)

	retention := 1.0
	day := anchor
	for n := 1; n <= MaxProjectionDays; n++ {
		day = day.AddDate(0, 0, 1)
		retention *= math.Exp(-DecayRate(DaysBetween(reference, day)))
		if retention <= ReviewThreshold {
			return models.Projection{
				NextReviewDate: day,
				Retention:      retention,
				DaysElapsed:    n,
				Converged:      true,
			}
		}
	}
	return models.Projection{
		NextReviewDate: day,
		Retention:      retention,
		DaysElapsed:    MaxProjectionDays,
		Converged:      false,
	}
}
