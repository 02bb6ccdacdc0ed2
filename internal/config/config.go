// Package config parses and validates the bundlegen command line into typed
// options. All argument validation happens here, before any file I/O.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
)

// Options holds all resolved command-line settings.
type Options struct {
	Region      string
	ModelPaths  []string
	StationPath string
	Output      string

	ModelSpecs     []domain.ModelSpec
	StationMetrics []string

	ModelRegionColumn   string
	ModelBandColumn     string
	ModelTimeColumn     string
	ModelVariableColumn string
	ModelLevelColumn    string
	ModelTable          string

	StationRegionColumn string
	StationBandColumn   string
	StationTimeColumn   string
	StationIDColumn     string
	StationNameColumn   string

	TilesBase string
	Quicklook string

	Start *time.Time
	End   *time.Time

	Verbose     bool
	LogFormat   string
	MetricsFile string
}

// LogLevel maps the verbosity flag onto a slog level.
func (o *Options) LogLevel() slog.Level {
	if o.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// specList is a repeatable --model-spec flag parsed eagerly so malformed
// specs fail before any I/O.
type specList []domain.ModelSpec

func (s *specList) String() string { return fmt.Sprintf("%d spec(s)", len(*s)) }

func (s *specList) Set(v string) error {
	spec, err := domain.ParseModelSpec(v)
	if err != nil {
		return err
	}
	*s = append(*s, spec)
	return nil
}

// Parse parses command-line arguments into Options.
func Parse(args []string) (*Options, error) {
	opts := &Options{}
	var models stringList
	var specs specList
	var stationMetrics, startDate, endDate string

	fs := flag.NewFlagSet("bundlegen", flag.ContinueOnError)
	fs.StringVar(&opts.Region, "region", "", "region slug (e.g. south_rockies); omit to discover all regions present in both datasets")
	fs.Var(&models, "model", "model data file, CSV or SQLite (repeatable)")
	fs.StringVar(&opts.StationPath, "stations", "", "station CSV file or directory of station CSV files")
	fs.StringVar(&opts.Output, "output", "", "output file path (single region) or directory root (multi-region); default public/data/<region>/")
	fs.Var(&specs, "model-spec", "model spec in VAR@LEVEL:metric1,metric2 form (repeatable); omit to discover from the data")
	fs.StringVar(&stationMetrics, "station-metrics", "temp_c,wind_mps,hs_cm", "comma-separated station columns to include in summaries and time series")

	fs.StringVar(&opts.ModelRegionColumn, "model-region-column", "region", "model region column")
	fs.StringVar(&opts.ModelBandColumn, "model-band-column", "elevation_band", "model elevation band column")
	fs.StringVar(&opts.ModelTimeColumn, "model-time-column", "valid_date", "model timestamp column")
	fs.StringVar(&opts.ModelVariableColumn, "model-variable-column", "variable", "model variable column")
	fs.StringVar(&opts.ModelLevelColumn, "model-level-column", "level", "model level column")
	fs.StringVar(&opts.ModelTable, "model-table", "weather_model", "table name for SQLite model inputs")

	fs.StringVar(&opts.StationRegionColumn, "station-region-column", "region", "station region column")
	fs.StringVar(&opts.StationBandColumn, "station-band-column", "elevation_band", "station elevation band column")
	fs.StringVar(&opts.StationTimeColumn, "station-time-column", "obs_time", "station timestamp column")
	fs.StringVar(&opts.StationIDColumn, "station-id-column", "station_id", "station id column")
	fs.StringVar(&opts.StationNameColumn, "station-name-column", "station_name", "station name column")

	fs.StringVar(&opts.TilesBase, "tiles-base", "https://tile.openstreetmap.org/", "base URL for map tiles")
	fs.StringVar(&opts.Quicklook, "quicklook", "", "optional quicklook PNG path recorded in the summary document")
	fs.StringVar(&startDate, "start-date", "", "inclusive UTC start date/time (e.g. 2024-01-01 or 2024-01-01T12:00Z)")
	fs.StringVar(&endDate, "end-date", "", "inclusive UTC end date/time")

	fs.BoolVar(&opts.Verbose, "verbose", false, "enable progress logging")
	fs.StringVar(&opts.LogFormat, "log-format", "text", "log output format: text or json")
	fs.StringVar(&opts.MetricsFile, "metrics-file", "", "optional path to dump run metrics in Prometheus exposition format")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.ModelPaths = models
	opts.ModelSpecs = specs
	opts.StationMetrics = domain.SplitMetrics(stationMetrics)

	if len(opts.ModelPaths) == 0 {
		return nil, errors.New("at least one --model file is required")
	}
	if opts.StationPath == "" {
		return nil, errors.New("--stations is required")
	}
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, fmt.Errorf("invalid --log-format %q: must be text or json", opts.LogFormat)
	}

	var err error
	if opts.Start, err = parseDate("start-date", startDate); err != nil {
		return nil, err
	}
	if opts.End, err = parseDate("end-date", endDate); err != nil {
		return nil, err
	}
	if opts.Start != nil && opts.End != nil && opts.Start.After(*opts.End) {
		return nil, errors.New("--start-date must be before or equal to --end-date")
	}

	return opts, nil
}

// dateLayouts are the accepted --start-date / --end-date formats. Layouts
// without a zone designator are interpreted as UTC.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04Z",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDate(label, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid --%s value %q", label, value)
}
