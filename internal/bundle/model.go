package bundle

import (
	"time"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/loader"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// BuildModelPayload converts filtered model rows into per-band summary rows
// (latest observation per band) and per-band time histories, one series
// group per (variable, level) spec. Specs matching no rows are skipped;
// bands with no rows are left as empty sections.
func BuildModelPayload(data *loader.ModelData, specs []domain.ModelSpec) *ModelPayload {
	payload := EmptyModelPayload()
	timeCol := data.TimeCol

	for _, spec := range specs {
		subset := data.Frame.Filter(func(row table.Row) bool {
			return table.AsString(row[loader.VariableColumn]) == spec.Variable &&
				table.AsString(row[loader.LevelColumn]) == spec.Level
		})
		if subset.Len() == 0 {
			continue
		}
		subset.SortByTime(timeCol)

		buildModelSummary(payload, subset, spec, timeCol)
		buildModelTimeseries(payload, subset, spec, timeCol)
	}
	return payload
}

// buildModelSummary emits one single-row summary block per band holding the
// chronologically latest record of the spec's partition.
func buildModelSummary(payload *ModelPayload, subset *table.Frame, spec domain.ModelSpec, timeCol string) {
	latest := make(map[string]table.Row, len(domain.Bands))
	for _, row := range subset.Rows {
		latest[table.AsString(row[loader.BandColumn])] = row
	}

	columns := append([]string{timeCol}, spec.Metrics...)
	for _, band := range domain.Bands {
		row, ok := latest[band]
		if !ok {
			continue
		}
		summaryRow := make(map[string]any, len(columns))
		for _, col := range columns {
			if col == timeCol {
				if t, ok := row[timeCol].(time.Time); ok {
					summaryRow[col] = table.FormatTime(t)
				} else {
					summaryRow[col] = nil
				}
				continue
			}
				if v, ok := table.Numeric(row[col]); ok {
					summaryRow[col] = v
				} else {
					summaryRow[col] = table.Jsonable(row[col])
				}
			}
		payload.Summary[band] = append(payload.Summary[band], Table{
			Columns: columns,
			Rows:    []map[string]any{summaryRow},
			Metadata: map[string]any{
				"variable": spec.Variable,
				"level":    spec.Level,
				"metrics":  spec.Metrics,
			},
		})
	}
}

// buildModelTimeseries emits one series group per band with the full
// ascending-time sequence and one series per metric present in the data.
func buildModelTimeseries(payload *ModelPayload, subset *table.Frame, spec domain.ModelSpec, timeCol string) {
	for _, band := range domain.Bands {
		bandRows := subset.Filter(func(row table.Row) bool {
			return table.AsString(row[loader.BandColumn]) == band
		})
		if bandRows.Len() == 0 {
			continue
		}

		x := make([]string, 0, bandRows.Len())
		for _, row := range bandRows.Rows {
			if t, ok := row[timeCol].(time.Time); ok {
				x = append(x, table.FormatTime(t))
			} else {
				x = append(x, "")
			}
		}

		var series []Series
		for idx, metric := range spec.Metrics {
			if !subset.HasColumn(metric) {
				continue
			}
			values := make([]any, 0, bandRows.Len())
			for _, row := range bandRows.Rows {
				if v, ok := table.Numeric(row[metric]); ok {
					values = append(values, table.Round4(v))
				} else {
					values = append(values, nil)
				}
			}
			axis := "y"
			if idx > 0 {
				axis = "y2"
			}
			series = append(series, Series{
				Name:   spec.Variable + " " + metric,
				Values: values,
				YAxis:  axis,
			})
		}
		if len(series) == 0 {
			continue
		}
		payload.Timeseries[band] = append(payload.Timeseries[band], ModelSeriesGroup{
			Variable: spec.Variable,
			Level:    spec.Level,
			X:        x,
			Series:   series,
			Metadata: map[string]any{"metrics": spec.Metrics},
		})
	}
}
