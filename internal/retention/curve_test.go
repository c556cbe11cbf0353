package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabhub/pkg/models"
)

func savedWord(created time.Time) models.SavedWord {
	return models.SavedWord{ID: 7, Word: "serendipity", Language: "en", CreatedAt: created}
}

func TestCurveNeverReviewed(t *testing.T) {
	t.Parallel()

	c := Curve(savedWord(t0), nil)
	assert.Empty(t, c.History)
	assert.Equal(t, int64(7), c.WordID)
	assert.Equal(t, t0.AddDate(0, 0, 3), c.Next.NextReviewDate)
}

func TestCurveSuccessHistory(t *testing.T) {
	t.Parallel()

	history := []models.Review{
		{WordID: 7, Correct: true, ReviewedAt: t0.AddDate(0, 0, 3)},
		{WordID: 7, Correct: true, ReviewedAt: t0.AddDate(0, 0, 6)},
	}
	c := Curve(savedWord(t0), history)
	require.Len(t, c.History, 2)

	assert.Equal(t, 3, c.History[0].IntervalDays)
	assert.InDelta(t, 0.2592, c.History[0].Retention, 0.0005)
	assert.Equal(t, 3, c.History[1].IntervalDays)
	assert.InDelta(t, 0.2592, c.History[1].Retention, 0.0005)

	// next projection seeds from the last review, reference still creation
	assert.Equal(t, t0.AddDate(0, 0, 12), c.Next.NextReviewDate)
	assert.Equal(t, 6, c.Next.DaysElapsed)
}

// A failure restarts the decay clock: even though the word is months old,
// the review after the failure projects at the first-week rate.
func TestCurveFailureResetsReference(t *testing.T) {
	t.Parallel()

	fail := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	pass := time.Date(2026, time.June, 4, 0, 0, 0, 0, time.UTC)
	history := []models.Review{
		{WordID: 7, Correct: false, ReviewedAt: fail},
		{WordID: 7, Correct: true, ReviewedAt: pass},
	}

	c := Curve(savedWord(t0), history)
	require.Len(t, c.History, 2)

	assert.Equal(t, 151, c.History[0].IntervalDays)
	assert.False(t, c.History[0].Correct)

	// retention at the post-failure review ran on the restarted clock
	assert.Equal(t, 3, c.History[1].IntervalDays)
	assert.InDelta(t, 0.2592, c.History[1].Retention, 0.0005)

	// and the next interval is first-week length, not months-old length
	assert.Equal(t, time.Date(2026, time.June, 7, 0, 0, 0, 0, time.UTC), c.Next.NextReviewDate)
	assert.Equal(t, 3, c.Next.DaysElapsed)
}

func TestCurveSameDayReviews(t *testing.T) {
	t.Parallel()

	day := t0.AddDate(0, 0, 3)
	history := []models.Review{
		{WordID: 7, Correct: true, ReviewedAt: day.Add(9 * time.Hour)},
		{WordID: 7, Correct: true, ReviewedAt: day.Add(10 * time.Hour)},
	}
	c := Curve(savedWord(t0), history)
	require.Len(t, c.History, 2)
	assert.Equal(t, 0, c.History[1].IntervalDays)
	assert.Equal(t, 1.0, c.History[1].Retention)
}
