// Package loader reads the model and station datasets, reconciles their
// schemas against the configured column names, and filters rows down to one
// target region with canonical bands and parsed UTC timestamps.
package loader

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// BandColumn is the canonical column name rows carry their band under after
// loading. VariableColumn and LevelColumn likewise.
const (
	BandColumn     = "band"
	VariableColumn = "variable"
	LevelColumn    = "level"
)

// Window is an optional inclusive UTC time window applied to both datasets.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// ModelColumns holds the configured model column names. Region is matched
// exactly; band and time fall back through accepted synonyms when the
// configured name is absent.
type ModelColumns struct {
	Region   string
	Band     string
	Time     string
	Variable string
	Level    string
}

func (c ModelColumns) bandCandidates() []string {
	return table.Candidates(c.Band, "elevation_band", "elevation", "band")
}

func (c ModelColumns) timeCandidates() []string {
	return table.Candidates(c.Time, "valid_date", "timestamp", "time")
}

// ModelData is the filtered, canonicalized model dataset for one region.
// Rows carry parsed time.Time values under TimeCol, canonical bands under
// BandColumn, and variable/level under their canonical names.
type ModelData struct {
	Frame   *table.Frame
	TimeCol string
}

// LoadModel loads one or more model files (CSV or SQLite), restricts rows to
// the aliases of the target region, applies the optional date window, and
// canonicalizes band labels, dropping rows that fail to map.
func LoadModel(logger *slog.Logger, paths []string, region string, cols ModelColumns, sqliteTable string, window Window) (*ModelData, error) {
	aliases := domain.RegionAliases(region)

	frames := make([]*table.Frame, 0, len(paths))
	for _, path := range paths {
		var frame *table.Frame
		var err error
		if IsSQLitePath(path) {
			frame, err = ReadSQLite(path, sqliteTable, cols.Region, aliases)
		} else {
			frame, err = ReadCSV(path)
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	merged := mergeFrames(frames)

	regionCol, err := table.ResolveColumn("model", merged.Columns, table.Candidates(cols.Region))
	if err != nil {
		return nil, err
	}
	bandCol, err := table.ResolveColumn("model", merged.Columns, cols.bandCandidates())
	if err != nil {
		return nil, err
	}
	timeCol, err := table.ResolveColumn("model", merged.Columns, cols.timeCandidates())
	if err != nil {
		return nil, err
	}
	variableCol, err := table.ResolveColumn("model", merged.Columns, table.Candidates(cols.Variable, "variable"))
	if err != nil {
		return nil, err
	}
	levelCol, err := table.ResolveColumn("model", merged.Columns, table.Candidates(cols.Level, "level"))
	if err != nil {
		return nil, err
	}

	aliasSet := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		aliasSet[a] = true
	}
	matched := merged.Filter(func(row table.Row) bool {
		return aliasSet[strings.ToLower(table.AsString(row[regionCol]))]
	})
	if matched.Len() == 0 {
		return nil, &EmptyResultError{Dataset: "model", Region: region, Stage: StageRegion}
	}

	windowed := matched.Filter(func(row table.Row) bool {
		t, ok := table.ParseTimestamp(row[timeCol])
		if !ok {
			return false
		}
		row[timeCol] = t
		return window.Contains(t)
	})
	if windowed.Len() == 0 {
		return nil, &EmptyResultError{Dataset: "model", Region: region, Stage: StageWindow}
	}

	banded := windowed.Filter(func(row table.Row) bool {
		band, ok := domain.CanonicalBand(table.AsString(row[bandCol]))
		if !ok {
			return false
		}
		row[bandCol] = band
		return true
	})
	if banded.Len() == 0 {
		return nil, &EmptyResultError{Dataset: "model", Region: region, Stage: StageBand}
	}

	banded.RenameColumn(variableCol, VariableColumn)
	banded.RenameColumn(levelCol, LevelColumn)
	banded.RenameColumn(bandCol, BandColumn)
	if timeCol != cols.Time {
		banded.RenameColumn(timeCol, cols.Time)
	}

	logger.Debug("model data loaded",
		"region", region,
		"rows", banded.Len(),
		"region_matched", matched.Len(),
		"within_window", windowed.Len(),
	)
	return &ModelData{Frame: banded, TimeCol: cols.Time}, nil
}
