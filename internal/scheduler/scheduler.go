// Package scheduler runs the periodic bulk tasks that sit outside the
// synchronous scheduling core, currently the nightly bundle top-up.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/pkg/models"
)

// Scheduler manages scheduled tasks for the application.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     *database.UserRepository
	bundles   *database.BundleRepository
	words     *database.SavedWordRepository
	log       *zap.Logger
	topUpAt   string // "HH:MM", UTC
}

// New creates a scheduler instance. topUpHour is the UTC hour (0-23) the
// nightly top-up runs at; out-of-range values fall back to 03:00.
func New(db *sqlx.DB, log *zap.Logger, topUpHour int) *Scheduler {
	if topUpHour < 0 || topUpHour > 23 {
		topUpHour = 3
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     database.NewUserRepository(db),
		bundles:   database.NewBundleRepository(db),
		words:     database.NewSavedWordRepository(db),
		log:       log,
		topUpAt:   fmt.Sprintf("%02d:00", topUpHour),
	}
}

// Start begins running all scheduled tasks in a non-blocking manner.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At(s.topUpAt).Do(s.runTopUp)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runTopUp() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := s.TopUpAllUsers(ctx); err != nil {
		s.log.Error("bundle top-up failed", zap.Error(err))
	}
}

// TopUpAllUsers upserts up to words_per_day not-yet-saved active-bundle
// words into every user's vocabulary. The upsert ignores duplicate
// triples, so re-running after a partial failure is safe.
func (s *Scheduler) TopUpAllUsers(ctx context.Context) error {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		added, err := s.topUpUser(ctx, user)
		if err != nil {
			s.log.Warn("top-up skipped user",
				zap.Int64("user_id", user.ID), zap.Error(err))
			continue
		}
		if added > 0 {
			s.log.Info("topped up user vocabulary",
				zap.Int64("user_id", user.ID),
				zap.String("bundle", user.ActiveBundle),
				zap.Int("added", added))
		}
	}
	return nil
}

func (s *Scheduler) topUpUser(ctx context.Context, user models.User) (int, error) {
	if user.ActiveBundle == "" || user.WordsPerDay <= 0 {
		return 0, nil
	}
	candidates, err := s.bundles.UnsavedWords(ctx, user.ActiveBundle,
		user.LearningLanguage, user.ID, user.WordsPerDay)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, c := range candidates {
		err := s.words.Upsert(ctx, &models.SavedWord{
			UserID:   user.ID,
			Word:     c.Word,
			Language: c.Language,
		})
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
