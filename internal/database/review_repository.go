package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabhub/pkg/models"
)

// ReviewRepository handles the append-only review log. Rows are inserted
// and read, never updated or deleted; duplicate submissions land as two
// valid rows and the latest one wins for schedule state.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new repository instance.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Append inserts a review row.
func (r *ReviewRepository) Append(ctx context.Context, review *models.Review) error {
	if r.db.DriverName() == "postgres" {
		return r.db.QueryRowContext(ctx, `
			INSERT INTO word_reviews (word_id, correct, reviewed_at, next_review_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			review.WordID, review.Correct, review.ReviewedAt, review.NextReviewDate,
		).Scan(&review.ID)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO word_reviews (word_id, correct, reviewed_at, next_review_date)
		VALUES (?, ?, ?, ?)`,
		review.WordID, review.Correct, review.ReviewedAt, review.NextReviewDate,
	)
	if err != nil {
		return fmt.Errorf("failed to append review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	review.ID = id
	return nil
}

// History returns a word's reviews oldest first.
func (r *ReviewRepository) History(ctx context.Context, wordID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(`
		SELECT * FROM word_reviews
		WHERE word_id = ?
		ORDER BY reviewed_at ASC, id ASC`), wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review history: %w", err)
	}
	return reviews, nil
}

// HistoryByWordIDs returns reviews for all given words in one query,
// grouped by word id, each group oldest first.
func (r *ReviewRepository) HistoryByWordIDs(ctx context.Context, wordIDs []int64) (map[int64][]models.Review, error) {
	grouped := make(map[int64][]models.Review, len(wordIDs))
	if len(wordIDs) == 0 {
		return grouped, nil
	}
	query, args, err := sqlx.In(`
		SELECT * FROM word_reviews
		WHERE word_id IN (?)
		ORDER BY reviewed_at ASC, id ASC`, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build review history query: %w", err)
	}
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get review histories: %w", err)
	}
	for _, rv := range reviews {
		grouped[rv.WordID] = append(grouped[rv.WordID], rv)
	}
	return grouped, nil
}

// LatestFailure returns the most recent failed review for a word, or
// ErrNotFound when the word has never been failed.
func (r *ReviewRepository) LatestFailure(ctx context.Context, wordID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, r.db.Rebind(`
		SELECT * FROM word_reviews
		WHERE word_id = ? AND correct = FALSE
		ORDER BY reviewed_at DESC, id DESC
		LIMIT 1`), wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest failure: %w", err)
	}
	return &review, nil
}

// Latest returns the most recent review for a word, or ErrNotFound when
// the word has never been reviewed.
func (r *ReviewRepository) Latest(ctx context.Context, wordID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, r.db.Rebind(`
		SELECT * FROM word_reviews
		WHERE word_id = ?
		ORDER BY reviewed_at DESC, id DESC
		LIMIT 1`), wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest review: %w", err)
	}
	return &review, nil
}

// ReviewTimesForUser returns the timestamps of every review the user has
// ever submitted, newest first. Streak computation reduces these to
// distinct calendar dates in the user's timezone.
func (r *ReviewRepository) ReviewTimesForUser(ctx context.Context, userID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(`
		SELECT r.* FROM word_reviews r
		JOIN saved_words w ON w.id = r.word_id
		WHERE w.user_id = ?
		ORDER BY r.reviewed_at DESC, r.id DESC`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user review times: %w", err)
	}
	return reviews, nil
}
