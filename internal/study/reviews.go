package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/internal/retention"
	"github.com/example/vocabhub/pkg/models"
)

// ErrWordKnown is returned when a review is submitted for a word the user
// has marked known; known words are out of scheduling permanently.
var ErrWordKnown = errors.New("word is marked known")

// SaveWord adds a word to the user's vocabulary. The creation timestamp
// becomes the word's initial scheduling anchor and decay reference.
func (s *Service) SaveWord(ctx context.Context, userID int64, word, language string) (*models.SavedWord, error) {
	sw := &models.SavedWord{
		UserID:    userID,
		Word:      word,
		Language:  language,
		CreatedAt: s.now().UTC(),
	}
	if err := s.words.Create(ctx, sw); err != nil {
		return nil, err
	}
	s.log.Info("word saved",
		zap.Int64("user_id", userID),
		zap.String("word", word),
		zap.String("language", language))
	return sw, nil
}

// MarkKnown soft-excludes a word from scheduling.
func (s *Service) MarkKnown(ctx context.Context, wordID int64) error {
	return s.words.MarkKnown(ctx, wordID)
}

// SubmitReview appends a review outcome for a word and computes its next
// review date.
//
// Retention restarts at 1.0 after any review. The projection anchor is the
// review date. The decay reference is the word's creation date unless the
// word has ever been failed, in which case it is the most recent failure
// date; a failing review resets the reference to the review date itself.
func (s *Service) SubmitReview(ctx context.Context, wordID int64, correct bool) (*models.Review, models.Projection, error) {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, models.Projection{}, err
	}
	if word.IsKnown {
		return nil, models.Projection{}, ErrWordKnown
	}

	now := s.now().UTC()
	anchor := now
	reference, err := s.decayReference(ctx, word, now, correct)
	if err != nil {
		return nil, models.Projection{}, err
	}

	proj := retention.Project(anchor, reference)
	if !proj.Converged {
		s.log.Warn("projection hit simulation cap",
			zap.Int64("word_id", wordID),
			zap.Float64("retention", proj.Retention))
	}

	review := &models.Review{
		WordID:         wordID,
		Correct:        correct,
		ReviewedAt:     now,
		NextReviewDate: proj.NextReviewDate,
	}
	if err := s.reviews.Append(ctx, review); err != nil {
		return nil, models.Projection{}, err
	}

	s.log.Info("review recorded",
		zap.Int64("word_id", wordID),
		zap.Bool("correct", correct),
		zap.Time("next_review", proj.NextReviewDate),
		zap.Float64("retention_at_review", proj.Retention))
	return review, proj, nil
}

// SubmitReviewByWord records a review keyed by the (user, word, language)
// triple instead of a saved-word id. When the user has not saved the word
// yet, the first review saves it, so practice-batch entries drawn from the
// bundle tiers enter the schedule the moment they are answered.
func (s *Service) SubmitReviewByWord(ctx context.Context, userID int64, word, language string, correct bool) (*models.Review, models.Projection, error) {
	sw, err := s.words.GetByTriple(ctx, userID, word, language)
	if errors.Is(err, database.ErrNotFound) {
		sw, err = s.SaveWord(ctx, userID, word, language)
	}
	if err != nil {
		return nil, models.Projection{}, err
	}
	return s.SubmitReview(ctx, sw.ID, correct)
}

// decayReference resolves the date the decay clock runs from. Successes
// never move it; failures pin it to the failure date.
func (s *Service) decayReference(ctx context.Context, word *models.SavedWord, reviewedAt time.Time, correct bool) (time.Time, error) {
	if !correct {
		return reviewedAt, nil
	}
	failure, err := s.reviews.LatestFailure(ctx, word.ID)
	if errors.Is(err, database.ErrNotFound) {
		return word.CreatedAt, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to resolve decay reference: %w", err)
	}
	return failure.ReviewedAt, nil
}
