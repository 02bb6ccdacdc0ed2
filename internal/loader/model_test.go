package loader

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func defaultModelColumns() ModelColumns {
	return ModelColumns{
		Region:   "region",
		Band:     "elevation_band",
		Time:     "valid_date",
		Variable: "variable",
		Level:    "level",
	}
}

const modelCSV = `region,elevation_band,valid_date,variable,level,mean_value,p05
South Rockies,alpine,2024-01-15T06:00:00Z,TMP,ISBL_500hPa,-5.0,-8.0
south-rockies,treeline,2024-01-15T12:00:00Z,TMP,ISBL_500hPa,-3.0,-6.5
south_rockies,foothills,2024-01-15T12:00:00Z,TMP,ISBL_500hPa,-2.0,-4.0
lizard_range,alpine,2024-01-15T06:00:00Z,TMP,ISBL_500hPa,1.0,0.5
`

func TestLoadModel_FiltersRegionAndCanonicalizesBands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.csv")
	writeFile(t, path, modelCSV)

	data, err := LoadModel(testLogger(), []string{path}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
	require.NoError(t, err)

	// The foothills row fails band recognition; the lizard_range row fails
	// the region match. Both alias spellings of the target survive.
	require.Equal(t, 2, data.Frame.Len())
	assert.Equal(t, "valid_date", data.TimeCol)

	bands := make([]string, 0, 2)
	for _, row := range data.Frame.Rows {
		bands = append(bands, table.AsString(row[BandColumn]))
		_, isTime := row["valid_date"].(time.Time)
		assert.True(t, isTime, "timestamps are parsed in place")
	}
	assert.ElementsMatch(t, []string{"above_treeline", "treeline"}, bands)
}

func TestLoadModel_WindowBoundsInclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.csv")
	writeFile(t, path, modelCSV)

	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data, err := LoadModel(testLogger(), []string{path}, "south_rockies", defaultModelColumns(), "weather_model", Window{Start: &start})
	require.NoError(t, err)

	// Only the row exactly on the boundary survives.
	require.Equal(t, 1, data.Frame.Len())
	assert.Equal(t, "treeline", table.AsString(data.Frame.Rows[0][BandColumn]))
}

func TestLoadModel_EmptyResultStages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.csv")
	writeFile(t, path, modelCSV)

	t.Run("region mismatch", func(t *testing.T) {
		_, err := LoadModel(testLogger(), []string{path}, "purcells", defaultModelColumns(), "weather_model", Window{})
		var emptyErr *EmptyResultError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, StageRegion, emptyErr.Stage)
		assert.Equal(t, "model", emptyErr.Dataset)
	})

	t.Run("window excludes everything", func(t *testing.T) {
		end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := LoadModel(testLogger(), []string{path}, "south_rockies", defaultModelColumns(), "weather_model", Window{End: &end})
		var emptyErr *EmptyResultError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, StageWindow, emptyErr.Stage)
	})

	t.Run("no recognizable bands", func(t *testing.T) {
		unbanded := filepath.Join(dir, "unbanded.csv")
		writeFile(t, unbanded, `region,elevation_band,valid_date,variable,level,mean_value
south_rockies,foothills,2024-01-15T06:00:00Z,TMP,ISBL_500hPa,1.0
`)
		_, err := LoadModel(testLogger(), []string{unbanded}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
		var emptyErr *EmptyResultError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, StageBand, emptyErr.Stage)
	})
}

func TestLoadModel_BandSynonymFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.csv")
	writeFile(t, path, `region,band,valid_date,variable,level,mean_value
south_rockies,alpine,2024-01-15T06:00:00Z,TMP,ISBL_500hPa,-5.0
`)

	// The configured elevation_band column is absent; the band synonym is
	// picked up instead.
	data, err := LoadModel(testLogger(), []string{path}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
	require.NoError(t, err)
	assert.Equal(t, 1, data.Frame.Len())
	assert.Equal(t, "above_treeline", table.AsString(data.Frame.Rows[0][BandColumn]))
}

func TestLoadModel_MissingRegionColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.csv")
	writeFile(t, path, `area,elevation_band,valid_date,variable,level,mean_value
south_rockies,alpine,2024-01-15T06:00:00Z,TMP,ISBL_500hPa,-5.0
`)

	_, err := LoadModel(testLogger(), []string{path}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
	var schemaErr *table.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "model", schemaErr.Dataset)
	assert.Contains(t, schemaErr.Wanted, "region")
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel(testLogger(), []string{filepath.Join(t.TempDir(), "absent.csv")}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadModel_MergesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	writeFile(t, first, `region,elevation_band,valid_date,variable,level,mean_value
south_rockies,alpine,2024-01-15T06:00:00Z,TMP,ISBL_500hPa,-5.0
`)
	writeFile(t, second, `region,elevation_band,valid_date,variable,level,p95
south_rockies,treeline,2024-01-15T12:00:00Z,TMP,ISBL_500hPa,2.5
`)

	data, err := LoadModel(testLogger(), []string{first, second}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
	require.NoError(t, err)
	assert.Equal(t, 2, data.Frame.Len())
	assert.True(t, data.Frame.HasColumn("mean_value"))
	assert.True(t, data.Frame.HasColumn("p95"))
}
