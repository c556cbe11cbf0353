package models

import "time"

// User holds the per-user preferences the scheduler reads: timezone for
// streak computation and bundle selection for new-word sourcing.
type User struct {
	ID               int64     `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Timezone         string    `json:"timezone" db:"timezone"`                   // IANA name, empty means UTC
	LearningLanguage string    `json:"learning_language" db:"learning_language"` // e.g. "en"
	ActiveBundle     string    `json:"active_bundle" db:"active_bundle"`
	FallbackBundle   string    `json:"fallback_bundle" db:"fallback_bundle"`
	EnabledBundles   string    `json:"enabled_bundles" db:"enabled_bundles"` // comma-separated bundle names
	WordsPerDay      int       `json:"words_per_day" db:"words_per_day"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
