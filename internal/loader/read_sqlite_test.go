package loader

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSQLitePath(t *testing.T) {
	assert.True(t, IsSQLitePath("model.sqlite"))
	assert.True(t, IsSQLitePath("model.sqlite3"))
	assert.True(t, IsSQLitePath("data/Model.DB"))
	assert.False(t, IsSQLitePath("model.csv"))
	assert.False(t, IsSQLitePath("model"))
}

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE weather_model (
		region TEXT, elevation_band TEXT, valid_date TEXT,
		variable TEXT, level TEXT, mean_value REAL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO weather_model VALUES
		('south_rockies', 'alpine', '2024-01-15T06:00:00Z', 'TMP', 'ISBL_500hPa', -5.0),
		('lizard_range', 'alpine', '2024-01-15T06:00:00Z', 'TMP', 'ISBL_500hPa', 1.0)`)
	require.NoError(t, err)
	return path
}

func TestReadSQLite(t *testing.T) {
	path := newTestDB(t)

	frame, err := ReadSQLite(path, "weather_model", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"region", "elevation_band", "valid_date", "variable", "level", "mean_value"}, frame.Columns)
	assert.Equal(t, 2, frame.Len())
}

func TestReadSQLite_RegionFilterPushedToQuery(t *testing.T) {
	path := newTestDB(t)

	frame, err := ReadSQLite(path, "weather_model", "region", []string{"south_rockies", "south rockies", "south-rockies"})
	require.NoError(t, err)
	require.Equal(t, 1, frame.Len())
	assert.Equal(t, "south_rockies", frame.Rows[0]["region"])
}

func TestReadSQLite_MissingFile(t *testing.T) {
	_, err := ReadSQLite(filepath.Join(t.TempDir(), "absent.sqlite"), "weather_model", "", nil)
	require.Error(t, err)
}

func TestLoadModel_SQLiteSource(t *testing.T) {
	path := newTestDB(t)

	data, err := LoadModel(testLogger(), []string{path}, "south_rockies", defaultModelColumns(), "weather_model", Window{})
	require.NoError(t, err)
	require.Equal(t, 1, data.Frame.Len())
	assert.Equal(t, "above_treeline", data.Frame.Rows[0][BandColumn])
}
