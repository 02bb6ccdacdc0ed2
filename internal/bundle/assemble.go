package bundle

import (
	"github.com/mbrandonhurd/slopelabs-bundler/internal/domain"
)

// versionLayout derives the bundle version token from the generation time.
const versionLayout = "200601021504"

// Meta carries the run metadata merged into the output documents.
type Meta struct {
	Region    string
	TilesBase string
	Quicklook string
}

// Assemble merges the model and station payloads with run metadata into the
// two output documents. The generation timestamp and version token come from
// the domain clock so fixed-clock runs are reproducible.
func Assemble(meta Meta, model *ModelPayload, stations *StationPayload) (*SummaryDoc, *TimeseriesDoc) {
	now := domain.Now().UTC()

	summary := &SummaryDoc{
		Region:       meta.Region,
		RunTimeUTC:   now.Format("2006-01-02T15:04:05Z"),
		Version:      now.Format(versionLayout),
		TilesBase:    meta.TilesBase,
		QuicklookPNG: meta.Quicklook,
		Stations:     stations.Summary,
		Model:        model.Summary,
	}
	timeseries := &TimeseriesDoc{
		Region:      meta.Region,
		GeneratedAt: now.Format("2006-01-02T15:04:05Z"),
		Stations:    stations.Timeseries,
		Model:       model.Timeseries,
	}
	return summary, timeseries
}
