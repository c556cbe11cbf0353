package study

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/pkg/models"
)

var t0 = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testService(t *testing.T, db *sqlx.DB) *Service {
	t.Helper()
	return New(db, zap.NewNop()).
		WithClock(func() time.Time { return t0 }).
		WithRand(rand.New(rand.NewSource(1)))
}

func seedUser(t *testing.T, db *sqlx.DB, user models.User) models.User {
	t.Helper()
	if user.Username == "" {
		user.Username = "tester"
	}
	require.NoError(t, database.NewUserRepository(db).Create(context.Background(), &user))
	return user
}

func seedWord(t *testing.T, db *sqlx.DB, userID int64, word string, createdAt time.Time, known bool) models.SavedWord {
	t.Helper()
	sw := models.SavedWord{
		UserID:    userID,
		Word:      word,
		Language:  "en",
		IsKnown:   known,
		CreatedAt: createdAt,
	}
	require.NoError(t, database.NewSavedWordRepository(db).Create(context.Background(), &sw))
	return sw
}

func seedReview(t *testing.T, db *sqlx.DB, wordID int64, correct bool, reviewedAt, nextReview time.Time) models.Review {
	t.Helper()
	rv := models.Review{
		WordID:         wordID,
		Correct:        correct,
		ReviewedAt:     reviewedAt,
		NextReviewDate: nextReview,
	}
	require.NoError(t, database.NewReviewRepository(db).Append(context.Background(), &rv))
	return rv
}

func seedBundleWord(t *testing.T, db *sqlx.DB, bundle, word string) {
	t.Helper()
	require.NoError(t, database.NewBundleRepository(db).Upsert(context.Background(), &models.BundleWord{
		Bundle:   bundle,
		Word:     word,
		Language: "en",
	}))
}
