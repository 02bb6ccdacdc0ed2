// Package bundle shapes filtered datasets into the two per-region output
// documents: a point-in-time summary and a multi-series time history.
package bundle

import "github.com/mbrandonhurd/slopelabs-bundler/internal/domain"

// Table is one summary block: a column list, the rows carrying those
// columns, and block-level metadata.
type Table struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	Metadata map[string]any   `json:"metadata"`
}

// Series is one named value sequence within a series group. Values are
// 4-decimal rounded floats or null. The first metric of a group plots on the
// primary axis ("y"), subsequent metrics on the secondary axis ("y2").
type Series struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
	YAxis  string `json:"yAxis"`
}

// ModelSeriesGroup is the time history for one (variable, level) pair within
// one band.
type ModelSeriesGroup struct {
	Variable string         `json:"variable"`
	Level    string         `json:"level"`
	X        []string       `json:"x"`
	Series   []Series       `json:"series"`
	Metadata map[string]any `json:"metadata"`
}

// StationSeriesGroup is the time history for one station within one band.
type StationSeriesGroup struct {
	StationID   string   `json:"station_id"`
	StationName any      `json:"station_name"`
	X           []string `json:"x"`
	Series      []Series `json:"series"`
}

// ModelPayload holds the per-band model sections of both documents.
type ModelPayload struct {
	Summary    map[string][]Table
	Timeseries map[string][]ModelSeriesGroup
}

// StationPayload holds the per-band station sections of both documents.
type StationPayload struct {
	Summary    map[string][]Table
	Timeseries map[string][]StationSeriesGroup
}

// EmptyModelPayload returns a payload with every canonical band mapped to an
// empty section. Model sections are emitted as fully empty structures, never
// omitted, when no specs are available.
func EmptyModelPayload() *ModelPayload {
	p := &ModelPayload{
		Summary:    make(map[string][]Table, len(domain.Bands)),
		Timeseries: make(map[string][]ModelSeriesGroup, len(domain.Bands)),
	}
	for _, band := range domain.Bands {
		p.Summary[band] = []Table{}
		p.Timeseries[band] = []ModelSeriesGroup{}
	}
	return p
}

// EmptyStationPayload returns a payload with every canonical band mapped to
// an empty section, used when a region proceeds without station data.
func EmptyStationPayload() *StationPayload {
	p := &StationPayload{
		Summary:    make(map[string][]Table, len(domain.Bands)),
		Timeseries: make(map[string][]StationSeriesGroup, len(domain.Bands)),
	}
	for _, band := range domain.Bands {
		p.Summary[band] = []Table{}
		p.Timeseries[band] = []StationSeriesGroup{}
	}
	return p
}

// SummaryDoc is the summary.json document.
type SummaryDoc struct {
	Region       string             `json:"region"`
	RunTimeUTC   string             `json:"run_time_utc"`
	Version      string             `json:"version"`
	TilesBase    string             `json:"tiles_base"`
	QuicklookPNG string             `json:"quicklook_png,omitempty"`
	Stations     map[string][]Table `json:"stations"`
	Model        map[string][]Table `json:"model"`
}

// TimeseriesDoc is the timeseries.json document.
type TimeseriesDoc struct {
	Region      string                          `json:"region"`
	GeneratedAt string                          `json:"generated_at"`
	Stations    map[string][]StationSeriesGroup `json:"stations"`
	Model       map[string][]ModelSeriesGroup   `json:"model"`
}
