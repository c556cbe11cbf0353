// Package excel provisions bundle membership from Excel and CSV files.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"

	"github.com/example/vocabhub/internal/database"
	"github.com/example/vocabhub/pkg/models"
)

// ImportConfig defines the import configuration.
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	BundleColumn   string // Column with the bundle name
	WordColumn     string // Column with the word
	LanguageColumn string // Column with the language code
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)

	// DefaultBundle and DefaultLanguage fill in rows whose bundle or
	// language cell is empty.
	DefaultBundle   string
	DefaultLanguage string
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		BundleColumn:    "A",
		WordColumn:      "B",
		LanguageColumn:  "C",
		SheetName:       "Sheet1",
		StartRow:        2, // start from the second row (skip header)
		DefaultBundle:   "general",
		DefaultLanguage: "en",
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportBundleWords imports bundle membership rows from an Excel or CSV
// file. Duplicate (bundle, word, language) rows are absorbed by the
// upsert; malformed rows are reported per-row and do not abort the run.
func ImportBundleWords(ctx context.Context, db *sqlx.DB, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, db, config)
	}
	return importFromExcel(ctx, db, config)
}

// importFromExcel imports bundle words from an Excel file.
func importFromExcel(ctx context.Context, db *sqlx.DB, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	bundles := database.NewBundleRepository(db)
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, bundles, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

// importFromCSV imports bundle words from a CSV file with the same column
// layout as the Excel path.
func importFromCSV(ctx context.Context, db *sqlx.DB, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // allow variable number of fields
	reader.LazyQuotes = true

	bundles := database.NewBundleRepository(db)
	result := &ImportResult{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(ctx, bundles, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow upserts a single bundle membership row.
func processRow(ctx context.Context, bundles *database.BundleRepository, row []string, config ImportConfig, result *ImportResult) error {
	var bundle, word, language string
	if idx := columnToIndex(config.BundleColumn); idx < len(row) {
		bundle = strings.TrimSpace(row[idx])
	}
	if idx := columnToIndex(config.WordColumn); idx < len(row) {
		word = strings.TrimSpace(row[idx])
	}
	if idx := columnToIndex(config.LanguageColumn); idx < len(row) {
		language = strings.TrimSpace(row[idx])
	}

	if bundle == "" {
		bundle = config.DefaultBundle
	}
	if language == "" {
		language = config.DefaultLanguage
	}
	if word == "" {
		result.Skipped++
		return nil
	}

	err := bundles.Upsert(ctx, &models.BundleWord{
		Bundle:   strings.ToLower(bundle),
		Word:     word,
		Language: strings.ToLower(language),
	})
	if err != nil {
		result.Skipped++
		return err
	}
	result.Imported++
	return nil
}

// columnToIndex converts an Excel column letter ("A", "B", ... "AA") to a
// zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return 0
		}
		index = index*26 + int(c-'A') + 1
	}
	if index == 0 {
		return 0
	}
	return index - 1
}
