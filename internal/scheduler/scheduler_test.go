package scheduler

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/pkg/models"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTopUpAllUsersIdempotent(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()

	user := models.User{Username: "tester", ActiveBundle: "exam", WordsPerDay: 3}
	require.NoError(t, database.NewUserRepository(db).Create(ctx, &user))

	bundles := database.NewBundleRepository(db)
	for _, w := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		require.NoError(t, bundles.Upsert(ctx, &models.BundleWord{Bundle: "exam", Word: w, Language: "en"}))
	}

	sched := New(db, zap.NewNop(), 3)
	require.NoError(t, sched.TopUpAllUsers(ctx))

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM saved_words WHERE user_id = ?", user.ID))
	assert.Equal(t, 3, n, "top-up honors words_per_day")

	// second run picks the remaining unsaved words, never duplicates
	require.NoError(t, sched.TopUpAllUsers(ctx))
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM saved_words WHERE user_id = ?", user.ID))
	assert.Equal(t, 5, n)

	require.NoError(t, sched.TopUpAllUsers(ctx))
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM saved_words WHERE user_id = ?", user.ID))
	assert.Equal(t, 5, n)
}

func TestTopUpSkipsUsersWithoutBundle(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()

	user := models.User{Username: "tester", ActiveBundle: "missing-bundle"}
	require.NoError(t, database.NewUserRepository(db).Create(ctx, &user))

	sched := New(db, zap.NewNop(), 3)
	require.NoError(t, sched.TopUpAllUsers(ctx))

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM saved_words WHERE user_id = ?", user.ID))
	assert.Equal(t, 0, n)
}
