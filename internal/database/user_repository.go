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

// UserRepository handles database operations for users and their
// scheduling preferences (timezone, bundle selection).
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		r.db.Rebind("SELECT * FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetAll returns every user. Used by the nightly top-up job.
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// Create inserts a new user, applying preference defaults.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ActiveBundle == "" {
		user.ActiveBundle = "general"
	}
	if user.FallbackBundle == "" {
		user.FallbackBundle = "general"
	}
	if user.EnabledBundles == "" {
		user.EnabledBundles = user.ActiveBundle
	}
	if user.LearningLanguage == "" {
		user.LearningLanguage = "en"
	}
	if user.WordsPerDay == 0 {
		user.WordsPerDay = 10
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if r.db.DriverName() == "postgres" {
		return r.db.QueryRowContext(ctx, `
			INSERT INTO users (username, timezone, learning_language, active_bundle,
				fallback_bundle, enabled_bundles, words_per_day, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			user.Username, user.Timezone, user.LearningLanguage, user.ActiveBundle,
			user.FallbackBundle, user.EnabledBundles, user.WordsPerDay,
			user.CreatedAt, user.UpdatedAt,
		).Scan(&user.ID)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, timezone, learning_language, active_bundle,
			fallback_bundle, enabled_bundles, words_per_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Timezone, user.LearningLanguage, user.ActiveBundle,
		user.FallbackBundle, user.EnabledBundles, user.WordsPerDay,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	user.ID = id
	return nil
}

// UpdatePreferences updates the settings the scheduler reads.
func (r *UserRepository) UpdatePreferences(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE users SET
			timezone = ?,
			learning_language = ?,
			active_bundle = ?,
			fallback_bundle = ?,
			enabled_bundles = ?,
			words_per_day = ?,
			updated_at = ?
		WHERE id = ?`),
		user.Timezone, user.LearningLanguage, user.ActiveBundle,
		user.FallbackBundle, user.EnabledBundles, user.WordsPerDay,
		user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user preferences: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
