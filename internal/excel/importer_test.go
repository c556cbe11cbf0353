package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/vocabhub/internal/database"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportFromExcel(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	path := filepath.Join(t.TempDir(), "bundles.xlsx")

	f := excelize.NewFile()
	rows := [][]string{
		{"bundle", "word", "language"},
		{"exam", "ephemeral", "en"},
		{"exam", "lucid", "en"},
		{"", "nascent", ""},         // defaults apply
		{"exam", "", "en"},          // empty word: skipped
		{"exam", "ephemeral", "en"}, // duplicate: absorbed
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))

	cfg := DefaultImportConfig()
	cfg.FilePath = path

	result, err := ImportBundleWords(context.Background(), db, cfg)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	bundles := database.NewBundleRepository(db)
	examCount, err := bundles.Count(context.Background(), "exam", "en")
	require.NoError(t, err)
	assert.Equal(t, 2, examCount)

	generalCount, err := bundles.Count(context.Background(), "general", "en")
	require.NoError(t, err)
	assert.Equal(t, 1, generalCount)
}

func TestImportFromCSV(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	path := filepath.Join(t.TempDir(), "bundles.csv")
	csv := "bundle,word,language\nexam,ephemeral,en\ngeneral,lucid,en\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	cfg := DefaultImportConfig()
	cfg.FilePath = path

	result, err := ImportBundleWords(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)
}

func TestColumnToIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 2, columnToIndex("C"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, 0, columnToIndex(""))
}
