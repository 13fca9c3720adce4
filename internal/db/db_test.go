package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/fewie27/ultimate/internal/models"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := ConnectDB("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	database := NewDB(sqldb, false)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, InitDB(context.Background(), database))
	return database
}

func sampleResult(id string) *models.AnalysisResult {
	rent := "750,00 EUR"
	distance := 0.12
	return &models.AnalysisResult{
		ID: id,
		Results: []models.AnalysisItem{{
			Text:           "Die monatliche Grundmiete beträgt 750,00 EUR.",
			Category:       []string{models.CategoryMatchFound, models.CategoryValid},
			SampleDistance: &distance,
			SampleMatch:    "§3 Miete: Die monatliche Grundmiete beträgt 750,00 EUR.",
		}},
		Essentials: &models.Essentials{Miete: &rent},
	}
}

func TestConnectDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "analyses.db")
	sqldb, err := ConnectDB("file:" + path)
	require.NoError(t, err)
	database := NewDB(sqldb, false)
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	require.NoError(t, InitDB(ctx, database))
	require.NoError(t, StoreAnalysis(ctx, database, sampleResult("nested"), "vertrag.pdf"))
	assert.DirExists(t, filepath.Dir(path))
}

func TestDSNDir(t *testing.T) {
	assert.Equal(t, "data", dsnDir("file:./data/analyses.db"))
	assert.Equal(t, "/var/lib/app", dsnDir("file:/var/lib/app/analyses.db?cache=shared"))
	assert.Empty(t, dsnDir("file::memory:"))
	assert.Empty(t, dsnDir(":memory:"))
	assert.Empty(t, dsnDir("file:analyses.db"))
}

func TestStoreAndGetAnalysis(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, StoreAnalysis(ctx, database, sampleResult("abc-123"), "vertrag.pdf"))

	got, err := GetAnalysis(ctx, database, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got.ID)
	require.Len(t, got.Results, 1)
	assert.Equal(t, []string{models.CategoryMatchFound, models.CategoryValid}, got.Results[0].Category)
	require.NotNil(t, got.Essentials)
	require.NotNil(t, got.Essentials.Miete)
	assert.Equal(t, "750,00 EUR", *got.Essentials.Miete)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	database := newTestDB(t)
	_, err := GetAnalysis(context.Background(), database, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAnalyses(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, StoreAnalysis(ctx, database, sampleResult("a1"), "erster.pdf"))
	require.NoError(t, StoreAnalysis(ctx, database, sampleResult("a2"), "zweiter.docx"))

	infos, err := ListAnalyses(ctx, database)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	names := []string{infos[0].Filename, infos[1].Filename}
	assert.ElementsMatch(t, []string{"erster.pdf", "zweiter.docx"}, names)
}
