// Package study is the scheduling service: review submission, practice
// batch selection, streak computation, and forgetting-curve reporting,
// built on the retention model and the sqlx repositories.
package study

import (
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/database"
)

// Service wires the repositories to the retention core. All operations are
// synchronous request/response computations; the only state is what the
// store persists.
type Service struct {
	words   *database.SavedWordRepository
	reviews *database.ReviewRepository
	bundles *database.BundleRepository
	users   *database.UserRepository
	log     *zap.Logger

	// now is injectable so date-sensitive logic (due-ness, streaks) is
	// testable against fixed days.
	now func() time.Time
	rng *rand.Rand
}

// New creates a Service over db.
func New(db *sqlx.DB, log *zap.Logger) *Service {
	return &Service{
		words:   database.NewSavedWordRepository(db),
		reviews: database.NewReviewRepository(db),
		bundles: database.NewBundleRepository(db),
		users:   database.NewUserRepository(db),
		log:     log,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock overrides the service clock. Test helper.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand overrides the shuffle source. Test helper.
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rng = rng
	return s
}
