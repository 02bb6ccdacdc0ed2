package loader

import (
	"log/slog"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// StationColumns holds the configured station column names. Region and band
// are matched exactly; time falls back through accepted synonyms. ID and
// Name are optional in the data.
type StationColumns struct {
	Region string
	Band   string
	Time   string
	ID     string
	Name   string
}

func (c StationColumns) timeCandidates() []string {
	return table.Candidates(c.Time, "obs_time", "timestamp", "UTC_DATE", "utc_date")
}

// StationData is the filtered, canonicalized station dataset for one region.
type StationData struct {
	Frame   *table.Frame
	TimeCol string
}

// LoadStations loads a station CSV file or a directory of them, restricts
// rows to the target region by exact slug equality, and canonicalizes bands
// and timestamps. Files lacking a region column fall back to inferring
// region (and band) from the file name; a file that also fails inference is
// a hard error only when it is the sole candidate source, otherwise it is
// skipped with a warning.
func LoadStations(logger *slog.Logger, path, region string, cols StationColumns, window Window) (*StationData, error) {
	paths, err := resolveStationPaths(path)
	if err != nil {
		return nil, err
	}
	targetSlug := domain.SlugifyRegion(region)

	var surviving []*table.Frame
	for _, p := range paths {
		frame, err := ReadCSV(p)
		if err != nil {
			return nil, err
		}
		if err := fillRegionBand(frame, p, cols); err != nil {
			if len(paths) == 1 {
				return nil, err
			}
			logger.Warn("skipping station file without region information", "path", p, "error", err)
			continue
		}
		matched := frame.Filter(func(row table.Row) bool {
			return domain.SlugifyRegion(table.AsString(row[cols.Region])) == targetSlug
		})
		if matched.Len() == 0 {
			continue
		}
		surviving = append(surviving, matched)
	}
	if len(surviving) == 0 {
		return nil, &EmptyResultError{Dataset: "station", Region: region, Stage: StageRegion}
	}
	merged := mergeFrames(surviving)

	if !merged.HasColumn(cols.Band) {
		return nil, &table.SchemaError{Dataset: "station", Wanted: []string{cols.Band}, Available: merged.Columns}
	}
	timeCol, err := table.ResolveColumn("station", merged.Columns, cols.timeCandidates())
	if err != nil {
		return nil, err
	}

	banded := merged.Filter(func(row table.Row) bool {
		band, ok := domain.CanonicalBand(table.AsString(row[cols.Band]))
		if !ok {
			return false
		}
		row[cols.Band] = band
		return true
	})
	if banded.Len() == 0 {
		return nil, &EmptyResultError{Dataset: "station", Region: region, Stage: StageBand}
	}

	windowed := banded.Filter(func(row table.Row) bool {
		t, ok := table.ParseTimestamp(row[timeCol])
		if !ok {
			return false
		}
		row[timeCol] = t
		return window.Contains(t)
	})
	if windowed.Len() == 0 {
		return nil, &EmptyResultError{Dataset: "station", Region: region, Stage: StageWindow}
	}

	windowed.RenameColumn(cols.Band, BandColumn)
	if timeCol != cols.Time {
		windowed.RenameColumn(timeCol, cols.Time)
	}

	logger.Debug("station data loaded", "region", region, "files", len(surviving), "rows", windowed.Len())
	return &StationData{Frame: windowed, TimeCol: cols.Time}, nil
}

// fillRegionBand backfills missing region/band columns from the file name.
// With the region column present it only tries to backfill a missing band.
func fillRegionBand(frame *table.Frame, path string, cols StationColumns) error {
	if frame.HasColumn(cols.Region) {
		if !frame.HasColumn(cols.Band) {
			if _, bandHint, ok := domain.InferRegionBand(path); ok {
				setConstantColumn(frame, cols.Band, bandHint)
			}
		}
		return nil
	}

	regionHint, bandHint, ok := domain.InferRegionBand(path)
	if !ok {
		return &table.SchemaError{Dataset: "station", Wanted: []string{cols.Region}, Available: frame.Columns}
	}
	setConstantColumn(frame, cols.Region, regionHint)
	if !frame.HasColumn(cols.Band) && bandHint != "" {
		setConstantColumn(frame, cols.Band, bandHint)
	}
	return nil
}

func setConstantColumn(frame *table.Frame, name, value string) {
	frame.AddColumn(name)
	for _, row := range frame.Rows {
		row[name] = value
	}
}
