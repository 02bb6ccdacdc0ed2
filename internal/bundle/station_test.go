package bundle_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/bundle"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/loader"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

func stationRow(band string, ts time.Time, id, name, temp string) table.Row {
	return table.Row{
		"band":         band,
		"obs_time":     ts,
		"station_id":   id,
		"station_name": name,
		"temp_c":       temp,
	}
}

func testStationData() *loader.StationData {
	frame := table.NewFrame("region", "band", "obs_time", "station_id", "station_name", "temp_c")
	frame.Append(
		stationRow("above_treeline", t1, "S1", "Camp One", "-5.5"),
		stationRow("above_treeline", t3, "S1", "Camp One", "-4.8"),
		stationRow("above_treeline", t2, "S2", "", "-3.9"),
	)
	return &loader.StationData{Frame: frame, TimeCol: "obs_time"}
}

func TestBuildStationPayload_SummaryLatestPerStation(t *testing.T) {
	payload := bundle.BuildStationPayload(testStationData(), []string{"temp_c", "hs_cm"}, "station_id", "station_name")

	above := payload.Summary["above_treeline"]
	require.Len(t, above, 1)

	// hs_cm is absent from the data and dropped from the column list.
	assert.Equal(t, []string{"station_id", "station_name", "obs_time", "temp_c"}, above[0].Columns)
	assert.Equal(t, 2, above[0].Metadata["count"])

	require.Len(t, above[0].Rows, 2)
	want := []map[string]any{
		{"station_id": "S2", "station_name": nil, "obs_time": "2024-01-15T12:00:00Z", "temp_c": -3.9},
		{"station_id": "S1", "station_name": "Camp One", "obs_time": "2024-01-15T18:00:00Z", "temp_c": -4.8},
	}
	if diff := cmp.Diff(want, above[0].Rows); diff != "" {
		t.Errorf("summary rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStationPayload_TimeseriesGroupsByStation(t *testing.T) {
	payload := bundle.BuildStationPayload(testStationData(), []string{"temp_c"}, "station_id", "station_name")

	above := payload.Timeseries["above_treeline"]
	require.Len(t, above, 2)

	s1 := above[0]
	assert.Equal(t, "S1", s1.StationID)
	assert.Equal(t, "Camp One", s1.StationName)
	assert.Equal(t, []string{"2024-01-15T06:00:00Z", "2024-01-15T18:00:00Z"}, s1.X)
	require.Len(t, s1.Series, 1)
	assert.Equal(t, []any{-5.5, -4.8}, s1.Series[0].Values)
	assert.Equal(t, "y", s1.Series[0].YAxis)

	// S2 has a blank name, so the id is used in its place.
	s2 := above[1]
	assert.Equal(t, "S2", s2.StationID)
	assert.Equal(t, "S2", s2.StationName)
}

func TestBuildStationPayload_NoIDColumn(t *testing.T) {
	frame := table.NewFrame("band", "obs_time", "temp_c")
	frame.Append(
		table.Row{"band": "treeline", "obs_time": t1, "temp_c": "-2.0"},
		table.Row{"band": "treeline", "obs_time": t2, "temp_c": "-1.5"},
	)
	data := &loader.StationData{Frame: frame, TimeCol: "obs_time"}

	payload := bundle.BuildStationPayload(data, []string{"temp_c"}, "station_id", "station_name")

	// All rows collapse onto one placeholder station; the summary keeps
	// only the latest reading.
	summary := payload.Summary["treeline"]
	require.Len(t, summary, 1)
	require.Len(t, summary[0].Rows, 1)
	assert.Equal(t, "station", summary[0].Rows[0]["station_id"])
	assert.Equal(t, -1.5, summary[0].Rows[0]["temp_c"])

	series := payload.Timeseries["treeline"]
	require.Len(t, series, 1)
	assert.Equal(t, "station", series[0].StationID)
	assert.Equal(t, []any{-2.0, -1.5}, series[0].Series[0].Values)
}

func TestBuildStationPayload_StationWithoutMetricsSkipped(t *testing.T) {
	frame := table.NewFrame("band", "obs_time", "station_id", "humidity")
	frame.Append(table.Row{"band": "treeline", "obs_time": t1, "station_id": "S9", "humidity": "80"})
	data := &loader.StationData{Frame: frame, TimeCol: "obs_time"}

	payload := bundle.BuildStationPayload(data, []string{"temp_c"}, "station_id", "station_name")

	assert.Empty(t, payload.Timeseries["treeline"])
	// The summary table still lists the station, with no metric columns.
	require.Len(t, payload.Summary["treeline"], 1)
	assert.Equal(t, []string{"station_id", "obs_time"}, payload.Summary["treeline"][0].Columns)
}
