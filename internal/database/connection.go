package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database selected by DB_TYPE ("postgres" or "sqlite",
// default sqlite) and creates missing tables.
func Connect() (*sqlx.DB, error) {
	if os.Getenv("DB_TYPE") == "postgres" {
		return connectPostgres()
	}
	return connectSQLite()
}

func connectPostgres() (*sqlx.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func connectSQLite() (*sqlx.DB, error) {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = filepath.Join("data", "vocabhub.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return OpenSQLite(path)
}

// OpenSQLite opens a SQLite database at path and initializes the schema.
// Tests use it with ":memory:".
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist.
func initializeSchema(db *sqlx.DB) error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		pk = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			username TEXT NOT NULL UNIQUE,
			timezone TEXT NOT NULL DEFAULT '',
			learning_language TEXT NOT NULL DEFAULT 'en',
			active_bundle TEXT NOT NULL DEFAULT 'general',
			fallback_bundle TEXT NOT NULL DEFAULT 'general',
			enabled_bundles TEXT NOT NULL DEFAULT 'general',
			words_per_day INTEGER NOT NULL DEFAULT 10,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, pk),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS saved_words (
			id %s,
			user_id INTEGER NOT NULL,
			word TEXT NOT NULL,
			language TEXT NOT NULL,
			is_known BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(user_id, word, language)
		)`, pk),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS word_reviews (
			id %s,
			word_id INTEGER NOT NULL,
			correct BOOLEAN NOT NULL,
			reviewed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			next_review_date TIMESTAMP NOT NULL,
			FOREIGN KEY (word_id) REFERENCES saved_words(id)
		)`, pk),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS bundle_words (
			id %s,
			bundle TEXT NOT NULL,
			word TEXT NOT NULL,
			language TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(bundle, word, language)
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_saved_words_user ON saved_words(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_word_reviews_word ON word_reviews(word_id, reviewed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_bundle_words_bundle ON bundle_words(bundle, language)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
