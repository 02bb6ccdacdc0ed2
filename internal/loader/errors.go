package loader

import "fmt"

// Filtering stages reported by EmptyResultError, so operators can tell which
// filter emptied the row set.
const (
	StageRegion = "region match"
	StageWindow = "date window"
	StageBand   = "band recognition"
)

// EmptyResultError reports that a filtering stage removed every row of a
// dataset. Model-side occurrences are fatal; station-side occurrences are
// downgraded to a warning plus an empty station payload.
type EmptyResultError struct {
	Dataset string
	Region  string
	Stage   string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no %s rows remaining for region %q after the %s filter", e.Dataset, e.Region, e.Stage)
}
