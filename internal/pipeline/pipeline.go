// Package pipeline orchestrates bundle generation: region resolution, the
// per-region load-build-write cycle, and the station fallback policy.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/bundle"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/config"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/loader"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/observability"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// Runner executes one bundle generation run. Regions are processed
// sequentially and independently; a model-side failure is fatal while a
// station-side schema or empty-result failure downgrades to an empty station
// payload for that region.
type Runner struct {
	cfg     *config.Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Runner.
func New(cfg *config.Options, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{cfg: cfg, logger: logger, metrics: metrics}
}

// Run generates bundles for the configured (or discovered) regions and
// returns the number of documents written.
func (r *Runner) Run() (int, error) {
	window := loader.Window{Start: r.cfg.Start, End: r.cfg.End}

	regions, stationSet, err := r.resolveRegions()
	if err != nil {
		return 0, err
	}
	multi := len(regions) > 1
	if multi && strings.HasSuffix(r.cfg.Output, ".json") {
		return 0, errors.New("when generating multiple regions, --output must be a directory")
	}
	r.logger.Info("regions to process", "regions", regions)

	generated := 0
	for i, region := range regions {
		start := time.Now()
		r.logger.Info("processing region", "region", region, "index", i+1, "total", len(regions))

		n, err := r.processRegion(region, stationSet, window, multi)
		if err != nil {
			return generated, fmt.Errorf("region %q: %w", region, err)
		}
		generated += n

		r.metrics.RegionsProcessed.Inc()
		r.metrics.RegionBuildDuration.Observe(time.Since(start).Seconds())
	}

	r.logger.Info("bundle generation complete", "documents", generated)
	return generated, nil
}

// resolveRegions returns the region slugs to process and, in discovery mode,
// the set of regions the station data covers (nil when a region was given
// explicitly).
func (r *Runner) resolveRegions() ([]string, map[string]bool, error) {
	if r.cfg.Region != "" {
		return []string{domain.SlugifyRegion(strings.TrimSpace(r.cfg.Region))}, nil, nil
	}

	modelRegions, stationRegions, err := loader.DiscoverRegions(
		r.logger,
		r.cfg.ModelPaths,
		r.cfg.StationPath,
		r.cfg.ModelRegionColumn,
		r.cfg.StationRegionColumn,
		r.cfg.ModelTable,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("discover regions: %w", err)
	}
	if len(modelRegions) == 0 {
		return nil, nil, errors.New("no regions found in model data")
	}
	stationSet := make(map[string]bool, len(stationRegions))
	for _, s := range stationRegions {
		stationSet[s] = true
	}
	return modelRegions, stationSet, nil
}

// processRegion runs one region's load-build-write cycle and returns the
// number of documents written.
func (r *Runner) processRegion(region string, stationSet map[string]bool, window loader.Window, multi bool) (int, error) {
	modelData, err := loader.LoadModel(
		r.logger,
		r.cfg.ModelPaths,
		region,
		loader.ModelColumns{
			Region:   r.cfg.ModelRegionColumn,
			Band:     r.cfg.ModelBandColumn,
			Time:     r.cfg.ModelTimeColumn,
			Variable: r.cfg.ModelVariableColumn,
			Level:    r.cfg.ModelLevelColumn,
		},
		r.cfg.ModelTable,
		window,
	)
	if err != nil {
		return 0, fmt.Errorf("load model data: %w", err)
	}
	r.metrics.RowsLoaded.WithLabelValues("model").Add(float64(modelData.Frame.Len()))

	stationPayload, err := r.loadStationPayload(region, stationSet, window)
	if err != nil {
		return 0, err
	}

	specs := r.cfg.ModelSpecs
	if len(specs) == 0 {
		specs = loader.DiscoverSpecs(modelData, r.cfg.ModelRegionColumn)
	}

	var modelPayload *bundle.ModelPayload
	if len(specs) == 0 {
		r.logger.Warn("no model metrics discovered; emitting empty model sections", "region", region)
		modelPayload = bundle.EmptyModelPayload()
	} else {
		r.logger.Debug("model specs resolved", "region", region, "specs", len(specs))
		modelPayload = bundle.BuildModelPayload(modelData, specs)
	}

	summaryDoc, timeseriesDoc := bundle.Assemble(bundle.Meta{
		Region:    region,
		TilesBase: r.cfg.TilesBase,
		Quicklook: r.cfg.Quicklook,
	}, modelPayload, stationPayload)

	base := r.outputBase(region, multi)
	summaryPath := filepath.Join(base, "summary.json")
	timeseriesPath := filepath.Join(base, "timeseries.json")

	if err := bundle.WriteJSON(summaryPath, summaryDoc); err != nil {
		return 0, err
	}
	r.logger.Info("wrote summary", "path", summaryPath)
	if err := bundle.WriteJSON(timeseriesPath, timeseriesDoc); err != nil {
		return 1, err
	}
	r.logger.Info("wrote timeseries", "path", timeseriesPath)

	r.metrics.BundlesWritten.Add(2)
	return 2, nil
}

// loadStationPayload loads and shapes the station data for one region.
// Regions known to lack station data, and station loads failing on schema or
// empty-result grounds, proceed with an all-empty station payload; anything
// else (a missing path, unreadable file) stays fatal.
func (r *Runner) loadStationPayload(region string, stationSet map[string]bool, window loader.Window) (*bundle.StationPayload, error) {
	if stationSet != nil && !stationSet[region] {
		r.logger.Info("no station data detected for region; proceeding with model data only", "region", region)
		r.metrics.StationFallbacks.Inc()
		return bundle.EmptyStationPayload(), nil
	}

	stationData, err := loader.LoadStations(
		r.logger,
		r.cfg.StationPath,
		region,
		loader.StationColumns{
			Region: r.cfg.StationRegionColumn,
			Band:   r.cfg.StationBandColumn,
			Time:   r.cfg.StationTimeColumn,
			ID:     r.cfg.StationIDColumn,
			Name:   r.cfg.StationNameColumn,
		},
		window,
	)
	if err != nil {
		var schemaErr *table.SchemaError
		var emptyErr *loader.EmptyResultError
		if errors.As(err, &schemaErr) || errors.As(err, &emptyErr) {
			r.logger.Warn("station data unavailable for region", "region", region, "error", err)
			r.metrics.StationFallbacks.Inc()
			return bundle.EmptyStationPayload(), nil
		}
		return nil, fmt.Errorf("load station data: %w", err)
	}
	r.metrics.RowsLoaded.WithLabelValues("station").Add(float64(stationData.Frame.Len()))

	return bundle.BuildStationPayload(
		stationData,
		r.cfg.StationMetrics,
		r.cfg.StationIDColumn,
		r.cfg.StationNameColumn,
	), nil
}

// outputBase resolves the directory the two documents for a region land in.
// An explicit .json output path for a single region maps to a directory of
// the same name without the suffix, matching the historical CLI contract.
func (r *Runner) outputBase(region string, multi bool) string {
	out := r.cfg.Output
	if out == "" {
		return filepath.Join("public", "data", region)
	}
	if strings.HasSuffix(out, ".json") && !multi {
		return strings.TrimSuffix(out, ".json")
	}
	return filepath.Join(out, region)
}
