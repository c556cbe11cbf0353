package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabhub/pkg/models"
)

// BundleRepository handles bundle membership: which words belong to which
// named vocabulary bundle. Read-only to the scheduler; written by import
// tooling.
type BundleRepository struct {
	db *sqlx.DB
}

// NewBundleRepository creates a new repository instance.
func NewBundleRepository(db *sqlx.DB) *BundleRepository {
	return &BundleRepository{db: db}
}

// Upsert adds a word to a bundle, ignoring duplicates.
func (r *BundleRepository) Upsert(ctx context.Context, bw *models.BundleWord) error {
	if bw.CreatedAt.IsZero() {
		bw.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO bundle_words (bundle, word, language, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (bundle, word, language) DO NOTHING`),
		bw.Bundle, bw.Word, bw.Language, bw.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bundle word: %w", err)
	}
	return nil
}

// UnsavedWords returns bundle members the user has not yet saved.
// Saved-word exclusion is by word text and language, so a word saved from
// any source never reappears as "new". A limit <= 0 returns the whole
// eligibility set; batch selection wants that, since it shuffles before
// taking.
func (r *BundleRepository) UnsavedWords(ctx context.Context, bundle, language string, userID int64, limit int) ([]models.BundleWord, error) {
	query := `
		SELECT b.* FROM bundle_words b
		WHERE b.bundle = ? AND b.language = ?
		  AND NOT EXISTS (
			SELECT 1 FROM saved_words w
			WHERE w.user_id = ? AND w.word = b.word AND w.language = b.language
		  )
		ORDER BY b.id`
	args := []interface{}{bundle, language, userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var words []models.BundleWord
	err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get unsaved bundle words: %w", err)
	}
	return words, nil
}

// Count returns the number of words in a bundle for a language.
func (r *BundleRepository) Count(ctx context.Context, bundle, language string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(
		"SELECT COUNT(*) FROM bundle_words WHERE bundle = ? AND language = ?"),
		bundle, language)
	if err != nil {
		return 0, fmt.Errorf("failed to count bundle words: %w", err)
	}
	return n, nil
}
