package study

import (
	"context"

	"github.com/example/vocabhub/internal/retention"
	"github.com/example/vocabhub/pkg/models"
)

// Curve rebuilds one word's forgetting curve from its raw review history.
// A word that has never been reviewed gets an empty trajectory and a
// projection from its creation date.
func (s *Service) Curve(ctx context.Context, wordID int64) (models.ForgettingCurve, error) {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return models.ForgettingCurve{}, err
	}
	history, err := s.reviews.History(ctx, wordID)
	if err != nil {
		return models.ForgettingCurve{}, err
	}
	return retention.Curve(*word, history), nil
}

// Curves computes forgetting curves for many of a user's words in one
// pass: one query for the words, one grouped query for all their
// histories. Requested ids that do not exist or belong to someone else
// come back in the second return value; they are data, not an error.
func (s *Service) Curves(ctx context.Context, userID int64, wordIDs []int64) ([]models.ForgettingCurve, []int64, error) {
	words, err := s.words.GetByUserAndIDs(ctx, userID, wordIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[int64]models.SavedWord, len(words))
	foundIDs := make([]int64, 0, len(words))
	for _, w := range words {
		byID[w.ID] = w
		foundIDs = append(foundIDs, w.ID)
	}

	histories, err := s.reviews.HistoryByWordIDs(ctx, foundIDs)
	if err != nil {
		return nil, nil, err
	}

	curves := make([]models.ForgettingCurve, 0, len(words))
	var notFound []int64
	requested := make(map[int64]bool, len(wordIDs))
	for _, id := range wordIDs {
		if requested[id] {
			continue
		}
		requested[id] = true
		word, ok := byID[id]
		if !ok {
			notFound = append(notFound, id)
			continue
		}
		curves = append(curves, retention.Curve(word, histories[id]))
	}
	return curves, notFound, nil
}
