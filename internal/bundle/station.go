package bundle

import (
	"sort"
	"time"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/loader"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// placeholderStationID labels rows from files that carry no station id
// column.
const placeholderStationID = "station"

// BuildStationPayload converts filtered station rows into per-band summary
// tables (latest reading per station) and per-station time series. metrics
// is the externally supplied station metric list; metrics absent from the
// data are dropped from the output.
func BuildStationPayload(data *loader.StationData, metrics []string, idCol, nameCol string) *StationPayload {
	payload := EmptyStationPayload()
	frame := data.Frame
	timeCol := data.TimeCol
	hasID := frame.HasColumn(idCol)
	hasName := frame.HasColumn(nameCol)

	rowID := func(row table.Row) string {
		if !hasID {
			return placeholderStationID
		}
		return table.AsString(row[idCol])
	}

	for _, band := range domain.Bands {
		bandRows := frame.Filter(func(row table.Row) bool {
			return table.AsString(row[loader.BandColumn]) == band
		})
		if bandRows.Len() == 0 {
			continue
		}
		bandRows.SortByTime(timeCol)

		payload.Summary[band] = append(payload.Summary[band],
			buildStationSummary(bandRows, metrics, idCol, nameCol, timeCol, hasName, rowID))

		payload.Timeseries[band] = append(payload.Timeseries[band],
			buildStationTimeseries(bandRows, metrics, nameCol, timeCol, hasName, rowID)...)
	}
	return payload
}

// buildStationSummary takes the latest row per station id (ties broken by
// input order) and emits one table covering the whole band.
func buildStationSummary(bandRows *table.Frame, metrics []string, idCol, nameCol, timeCol string, hasName bool, rowID func(table.Row) string) Table {
	latestIdx := make(map[string]int)
	for i, row := range bandRows.Rows {
		latestIdx[rowID(row)] = i
	}
	indices := make([]int, 0, len(latestIdx))
	for _, i := range latestIdx {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	columns := []string{idCol}
	if hasName {
		columns = append(columns, nameCol)
	}
	columns = append(columns, timeCol)
	for _, m := range metrics {
		if bandRows.HasColumn(m) {
			columns = append(columns, m)
		}
	}

	metricSet := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		metricSet[m] = true
	}

	rows := make([]map[string]any, 0, len(indices))
	for _, i := range indices {
		row := bandRows.Rows[i]
		entry := make(map[string]any, len(columns))
		for _, col := range columns {
			switch {
			case col == timeCol:
				if t, ok := row[timeCol].(time.Time); ok {
					entry[col] = table.FormatTime(t)
				} else {
					entry[col] = nil
				}
			case col == idCol:
				entry[col] = rowID(row)
			case metricSet[col]:
				if v, ok := table.Numeric(row[col]); ok {
					entry[col] = v
				} else {
					entry[col] = nil
				}
			default:
				entry[col] = table.Jsonable(row[col])
			}
		}
		rows = append(rows, entry)
	}

	return Table{
		Columns:  columns,
		Rows:     rows,
		Metadata: map[string]any{"count": len(rows)},
	}
}

// buildStationTimeseries groups a band's rows by station id (ascending id
// order) and emits one series group per station. Stations contributing zero
// usable metric series are skipped.
func buildStationTimeseries(bandRows *table.Frame, metrics []string, nameCol, timeCol string, hasName bool, rowID func(table.Row) string) []StationSeriesGroup {
	groups := make(map[string][]table.Row)
	var ids []string
	for _, row := range bandRows.Rows {
		id := rowID(row)
		if _, seen := groups[id]; !seen {
			ids = append(ids, id)
		}
		groups[id] = append(groups[id], row)
	}
	sort.Strings(ids)

	var out []StationSeriesGroup
	for _, id := range ids {
		rows := groups[id]

		var series []Series
		for _, metric := range metrics {
			if !bandRows.HasColumn(metric) {
				continue
			}
			values := make([]any, 0, len(rows))
			for _, row := range rows {
				if v, ok := table.Numeric(row[metric]); ok {
					values = append(values, table.Round4(v))
				} else {
					values = append(values, nil)
				}
			}
			series = append(series, Series{Name: metric, Values: values, YAxis: "y"})
		}
		if len(series) == 0 {
			continue
		}

		x := make([]string, 0, len(rows))
		for _, row := range rows {
			if t, ok := row[timeCol].(time.Time); ok {
				x = append(x, table.FormatTime(t))
			} else {
				x = append(x, "")
			}
		}

		name := any(id)
		if hasName {
			if v := table.Jsonable(rows[0][nameCol]); v != nil && v != "" {
				name = v
			}
		}
		out = append(out, StationSeriesGroup{
			StationID:   id,
			StationName: name,
			X:           x,
			Series:      series,
		})
	}
	return out
}
