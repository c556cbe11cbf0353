package study

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabhub/pkg/models"
)

func TestStreakNoReviews(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{})

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

// Reviews today and yesterday, then a gap: streak is exactly 2.
func TestStreakTodayAndYesterday(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{})
	w := seedWord(t, db, user.ID, "ephemeral", t0.AddDate(0, 0, -30), false)

	next := t0.AddDate(0, 0, 3)
	seedReview(t, db, w.ID, true, t0.Add(-2*time.Hour), next)
	seedReview(t, db, w.ID, true, t0.AddDate(0, 0, -1), next)
	// two days before yesterday: outside the run
	seedReview(t, db, w.ID, true, t0.AddDate(0, 0, -3), next)

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

// No review today yet is tolerated as long as yesterday has one.
func TestStreakYesterdayOnly(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{})
	w := seedWord(t, db, user.ID, "ephemeral", t0.AddDate(0, 0, -30), false)

	next := t0.AddDate(0, 0, 3)
	seedReview(t, db, w.ID, true, t0.AddDate(0, 0, -1), next)
	seedReview(t, db, w.ID, true, t0.AddDate(0, 0, -2), next)

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

// A full missed day breaks the streak to zero no matter how long the
// earlier run was.
func TestStreakBrokenByMissedDay(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{})
	w := seedWord(t, db, user.ID, "ephemeral", t0.AddDate(0, 0, -30), false)

	next := t0.AddDate(0, 0, 3)
	for d := 2; d <= 8; d++ {
		seedReview(t, db, w.ID, true, t0.AddDate(0, 0, -d), next)
	}

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

// Multiple reviews on the same day count once.
func TestStreakDistinctDays(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{})
	w := seedWord(t, db, user.ID, "ephemeral", t0.AddDate(0, 0, -30), false)

	next := t0.AddDate(0, 0, 3)
	seedReview(t, db, w.ID, true, t0.Add(-1*time.Hour), next)
	seedReview(t, db, w.ID, false, t0.Add(-2*time.Hour), next)
	seedReview(t, db, w.ID, true, t0.Add(-3*time.Hour), next)

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

// A review late at night UTC belongs to the previous day in a western
// timezone; streak math follows the user's calendar.
func TestStreakUserTimezone(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{Timezone: "America/New_York"})
	w := seedWord(t, db, user.ID, "ephemeral", t0.AddDate(0, 0, -30), false)

	// 02:00 UTC Aug 31 is 22:00 Aug 30 in New York. t0 (12:00 UTC) is
	// 08:00 Aug 31 local, so this is "yesterday" and the streak holds.
	reviewedAt := time.Date(2026, time.August, 31, 2, 0, 0, 0, time.UTC)
	seedReview(t, db, w.ID, true, reviewedAt, t0.AddDate(0, 0, 3))

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakInvalidTimezoneFallsBackUTC(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := testService(t, db)
	user := seedUser(t, db, models.User{Timezone: "Mars/Olympus_Mons"})
	w := seedWord(t, db, user.ID, "ephemeral", t0.AddDate(0, 0, -30), false)
	seedReview(t, db, w.ID, true, t0.Add(-1*time.Hour), t0.AddDate(0, 0, 3))

	streak, err := svc.Streak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}
