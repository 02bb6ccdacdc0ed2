package loader

import (
	"log/slog"
	"sort"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// DiscoverSpecs infers (variable, level) specs from loaded model data. The
// candidate metric columns are the numeric columns excluding time, variable,
// level and band bookkeeping (plus any extra identity columns the caller
// names); a metric is retained for a pair only if at least one row of that
// partition carries a non-missing value. Pairs with no retained metrics are
// skipped. Spec order follows first appearance of the pair in the input.
func DiscoverSpecs(data *ModelData, exclude ...string) []domain.ModelSpec {
	frame := data.Frame

	excluded := map[string]bool{
		data.TimeCol:   true,
		VariableColumn: true,
		LevelColumn:    true,
		BandColumn:     true,
	}
	for _, c := range exclude {
		excluded[c] = true
	}

	numericCols := make([]string, 0, len(frame.Columns))
	for _, col := range frame.Columns {
		if excluded[col] {
			continue
		}
		if isNumericColumn(frame, col) {
			numericCols = append(numericCols, col)
		}
	}

	type pairKey struct{ variable, level string }
	var order []pairKey
	partitions := make(map[pairKey][]table.Row)
	for _, row := range frame.Rows {
		key := pairKey{table.AsString(row[VariableColumn]), table.AsString(row[LevelColumn])}
		if _, seen := partitions[key]; !seen {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], row)
	}

	var specs []domain.ModelSpec
	for _, key := range order {
		rows := partitions[key]
		var metrics []string
		for _, col := range numericCols {
			for _, row := range rows {
				if !table.IsMissing(row[col]) {
					metrics = append(metrics, col)
					break
				}
			}
		}
		if len(metrics) == 0 {
			continue
		}
		specs = append(specs, domain.ModelSpec{Variable: key.variable, Level: key.level, Metrics: metrics})
	}
	return specs
}

// isNumericColumn reports whether every non-missing value in the column is
// numeric and at least one such value exists.
func isNumericColumn(frame *table.Frame, col string) bool {
	found := false
	for _, row := range frame.Rows {
		v, ok := row[col]
		if !ok || table.IsMissing(v) {
			continue
		}
		if _, numeric := table.Numeric(v); !numeric {
			return false
		}
		found = true
	}
	return found
}

// DiscoverRegions scans both datasets for the region slugs they contain.
// It returns the sorted model-side and station-side slugs; regions present
// in the model data but missing station data are reported as a warning and
// left for the caller to process with an empty station payload.
func DiscoverRegions(logger *slog.Logger, modelPaths []string, stationPath, modelRegionCol, stationRegionCol, sqliteTable string) (modelRegions, stationRegions []string, err error) {
	modelSet := make(map[string]bool)
	for _, path := range modelPaths {
		var frame *table.Frame
		if IsSQLitePath(path) {
			frame, err = ReadSQLite(path, sqliteTable, "", nil)
		} else {
			frame, err = ReadCSV(path)
		}
		if err != nil {
			return nil, nil, err
		}
		col, err := table.ResolveColumn("model", frame.Columns, table.Candidates(modelRegionCol))
		if err != nil {
			return nil, nil, err
		}
		for _, row := range frame.Rows {
			if raw := table.AsString(row[col]); raw != "" {
				modelSet[domain.SlugifyRegion(raw)] = true
			}
		}
	}

	stationPaths, err := resolveStationPaths(stationPath)
	if err != nil {
		return nil, nil, err
	}
	stationSet := make(map[string]bool)
	for _, path := range stationPaths {
		frame, err := ReadCSV(path)
		if err != nil {
			return nil, nil, err
		}
		if !frame.HasColumn(stationRegionCol) {
			if regionHint, _, ok := domain.InferRegionBand(path); ok {
				stationSet[domain.SlugifyRegion(regionHint)] = true
			}
			continue
		}
		for _, row := range frame.Rows {
			if raw := table.AsString(row[stationRegionCol]); raw != "" {
				stationSet[domain.SlugifyRegion(raw)] = true
			}
		}
	}

	modelRegions = sortedKeys(modelSet)
	stationRegions = sortedKeys(stationSet)

	var missing []string
	for _, r := range modelRegions {
		if !stationSet[r] {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		logger.Warn("regions missing station data", "regions", missing)
	}
	return modelRegions, stationRegions, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
