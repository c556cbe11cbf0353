package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabhub/pkg/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SavedWordRepository handles database operations for a user's vocabulary.
type SavedWordRepository struct {
	db *sqlx.DB
}

// NewSavedWordRepository creates a new repository instance.
func NewSavedWordRepository(db *sqlx.DB) *SavedWordRepository {
	return &SavedWordRepository{db: db}
}

// GetByID returns a saved word by id.
func (r *SavedWordRepository) GetByID(ctx context.Context, id int64) (*models.SavedWord, error) {
	var word models.SavedWord
	err := r.db.GetContext(ctx, &word,
		r.db.Rebind("SELECT * FROM saved_words WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved word: %w", err)
	}
	return &word, nil
}

// GetByTriple returns the saved word identified by the (user, word,
// language) triple, or ErrNotFound when the user has not saved it.
func (r *SavedWordRepository) GetByTriple(ctx context.Context, userID int64, word, language string) (*models.SavedWord, error) {
	var sw models.SavedWord
	err := r.db.GetContext(ctx, &sw, r.db.Rebind(
		"SELECT * FROM saved_words WHERE user_id = ? AND word = ? AND language = ?"),
		userID, word, language)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved word by triple: %w", err)
	}
	return &sw, nil
}

// GetByUserAndIDs returns, in one query, the subset of ids that exist and
// belong to userID.
func (r *SavedWordRepository) GetByUserAndIDs(ctx context.Context, userID int64, ids []int64) ([]models.SavedWord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM saved_words WHERE user_id = ? AND id IN (?)", userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build saved words query: %w", err)
	}
	var words []models.SavedWord
	if err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get saved words: %w", err)
	}
	return words, nil
}

// Create inserts a new saved word. Duplicate (user, word, language) triples
// are rejected by the unique constraint.
func (r *SavedWordRepository) Create(ctx context.Context, word *models.SavedWord) error {
	if word.CreatedAt.IsZero() {
		word.CreatedAt = time.Now().UTC()
	}
	if r.db.DriverName() == "postgres" {
		return r.db.QueryRowContext(ctx, `
			INSERT INTO saved_words (user_id, word, language, is_known, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			word.UserID, word.Word, word.Language, word.IsKnown, word.CreatedAt,
		).Scan(&word.ID)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_words (user_id, word, language, is_known, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		word.UserID, word.Word, word.Language, word.IsKnown, word.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create saved word: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	word.ID = id
	return nil
}

// Upsert inserts the word if the (user, word, language) triple is not yet
// saved and is a no-op otherwise. Used by the nightly bundle top-up, which
// must be safe to re-run.
func (r *SavedWordRepository) Upsert(ctx context.Context, word *models.SavedWord) error {
	if word.CreatedAt.IsZero() {
		word.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO saved_words (user_id, word, language, is_known, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word, language) DO NOTHING`),
		word.UserID, word.Word, word.Language, word.IsKnown, word.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert saved word: %w", err)
	}
	return nil
}

// MarkKnown soft-excludes a word from scheduling. The row stays in place.
func (r *SavedWordRepository) MarkKnown(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE saved_words SET is_known = TRUE WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to mark word known: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DueWords returns the user's words that are due for review as of now:
// not marked known, and whose latest review's next_review_date (or
// creation + 1 day when never reviewed) is not in the future. Due-ness
// is a calendar-day comparison, so a word created yesterday evening is
// due any time today. "Latest" is the single most recent review row,
// ties broken by insertion order.
func (r *SavedWordRepository) DueWords(ctx context.Context, userID int64, now time.Time) ([]models.SavedWord, error) {
	due := "COALESCE(date(r.next_review_date), date(w.created_at, '+1 day')) <= date(?)"
	if r.db.DriverName() == "postgres" {
		due = "COALESCE(CAST(r.next_review_date AS date), CAST(w.created_at AS date) + 1) <= CAST(? AS date)"
	}
	query := fmt.Sprintf(`
		SELECT w.*
		FROM saved_words w
		LEFT JOIN word_reviews r ON r.id = (
			SELECT r2.id FROM word_reviews r2
			WHERE r2.word_id = w.id
			ORDER BY r2.reviewed_at DESC, r2.id DESC
			LIMIT 1
		)
		WHERE w.user_id = ?
		  AND w.is_known = FALSE
		  AND %s
		ORDER BY w.id`, due)

	var words []models.SavedWord
	err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), userID, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get due words: %w", err)
	}
	return words, nil
}
