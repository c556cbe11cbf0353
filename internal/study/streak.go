package study

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Streak returns the user's consecutive-day review streak: the number of
// consecutive calendar days, in the user's timezone, ending today or
// yesterday, on which at least one review happened. Not having reviewed
// yet today is tolerated; a whole missed day breaks the streak to 0.
func (s *Service) Streak(ctx context.Context, userID int64) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	loc := time.UTC
	if user.Timezone != "" {
		l, err := time.LoadLocation(user.Timezone)
		if err != nil {
			s.log.Warn("invalid user timezone, using UTC",
				zap.Int64("user_id", userID),
				zap.String("timezone", user.Timezone))
		} else {
			loc = l
		}
	}

	reviews, err := s.reviews.ReviewTimesForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}

	// Distinct local calendar dates, newest first. Input is already
	// time-descending, so local dates come out non-increasing.
	var dates []time.Time
	for _, rv := range reviews {
		d := localDate(rv.ReviewedAt, loc)
		if len(dates) == 0 || !d.Equal(dates[len(dates)-1]) {
			dates = append(dates, d)
		}
	}

	today := localDate(s.now(), loc)
	if dayDiff(dates[0], today) > 1 {
		return 0, nil
	}

	streak := 0
	expected := dates[0]
	for _, d := range dates {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// localDate reduces t to its calendar date in loc, normalized to UTC
// midnight so dates compare with Equal and subtract cleanly.
func localDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayDiff returns b - a in whole days for two localDate values.
func dayDiff(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
