package study

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/vocabhub/pkg/models"
)

// SelectBatch composes a practice batch of up to count words for a user,
// filling three tiers in order until count is satisfied or everything is
// exhausted:
//
//  1. due: saved words whose stored next review date has arrived (falling
//     back to creation + 1 day for never-reviewed words);
//  2. new_bundle: words from the user's active bundle not yet saved;
//  3. fallback: words from the user's fallback bundle not yet saved.
//
// Order within each tier is an explicit shuffle over the full eligibility
// set, not store scan order. Exhausting all tiers yields a short batch,
// never an error. No word appears twice: the new tiers exclude saved
// words in SQL, so they cannot collide with the due tier, and tier 3
// skips word texts tier 2 already picked.
//
// Due-tier entries carry the saved-word id in WordID. New-tier entries
// are not saved yet and carry WordID 0; they are reviewed by the (user,
// word, language) triple, which saves them on first review.
func (s *Service) SelectBatch(ctx context.Context, userID int64, count int) ([]models.StudyWord, error) {
	if count <= 0 {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	batch := make([]models.StudyWord, 0, count)

	due, err := s.words.DueWords(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	s.rng.Shuffle(len(due), func(i, j int) { due[i], due[j] = due[j], due[i] })
	for _, w := range due {
		if len(batch) == count {
			break
		}
		batch = append(batch, models.StudyWord{
			WordID:   w.ID,
			Word:     w.Word,
			Language: w.Language,
			Source:   models.SourceDue,
		})
	}

	seen := make(map[string]bool)
	if len(batch) < count {
		if err := s.fillFromBundle(ctx, user, user.ActiveBundle,
			models.SourceNewBundle, count-len(batch), seen, &batch); err != nil {
			return nil, err
		}
	}
	if len(batch) < count && user.FallbackBundle != "" && user.FallbackBundle != user.ActiveBundle {
		if err := s.fillFromBundle(ctx, user, user.FallbackBundle,
			models.SourceFallback, count-len(batch), seen, &batch); err != nil {
			return nil, err
		}
	}

	s.log.Debug("practice batch composed",
		zap.Int64("user_id", userID),
		zap.Int("requested", count),
		zap.Int("returned", len(batch)),
		zap.Int("due", len(due)))
	return batch, nil
}

func (s *Service) fillFromBundle(ctx context.Context, user *models.User, bundle, source string, want int, seen map[string]bool, batch *[]models.StudyWord) error {
	if bundle == "" || want <= 0 {
		return nil
	}
	candidates, err := s.bundles.UnsavedWords(ctx, bundle, user.LearningLanguage, user.ID, 0)
	if err != nil {
		return err
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	added := 0
	for _, c := range candidates {
		if added == want {
			break
		}
		key := c.Word + "\x00" + c.Language
		if seen[key] {
			continue
		}
		seen[key] = true
		*batch = append(*batch, models.StudyWord{
			Word:     c.Word,
			Language: c.Language,
			Source:   source,
		})
		added++
	}
	return nil
}
