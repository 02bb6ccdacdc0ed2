// Command bundlegen reconciles weather-model and weather-station datasets
// against the shared region / elevation-band taxonomy and writes two
// normalized JSON documents per region: summary.json and timeseries.json.
//
// Usage (single region):
//
//	bundlegen \
//	  -region south_rockies \
//	  -model data/shared/weather_model.csv \
//	  -stations data/shared/stations/ \
//	  -output public/data/south_rockies/bundle.json \
//	  -model-spec TMP@ISBL_500hPa:mean_value,p05,p95 \
//	  -station-metrics temp_c,wind_mps,hs_cm
//
// Omitting -region discovers every region present in the model data and
// writes <output>/<region>/{summary,timeseries}.json for each.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/config"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/observability"
	"github.com/mbrandonhurd/slopelabs-bundler/internal/pipeline"
)

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "bundlegen: %v\n", err)
		os.Exit(2)
	}

	logger := observability.NewLogger(os.Stderr, opts.LogLevel(), opts.LogFormat)
	metrics := observability.NewMetrics()

	runner := pipeline.New(opts, logger, metrics)
	generated, err := runner.Run()
	if err != nil {
		logger.Error("bundle generation failed", "error", err)
		os.Exit(1)
	}

	if opts.MetricsFile != "" {
		if err := observability.WriteTextfile(opts.MetricsFile, prometheus.DefaultGatherer); err != nil {
			logger.Warn("failed to write metrics textfile", "error", err)
		}
	}

	fmt.Printf("Generated %d bundle document(s)\n", generated)
}
