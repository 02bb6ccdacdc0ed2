package domain

import (
	"fmt"
	"strings"
)

// ModelSpec names one measured quantity to extract from the model dataset:
// a (variable, level) pair plus the ordered metric columns attached to it.
type ModelSpec struct {
	Variable string   `json:"variable"`
	Level    string   `json:"level"`
	Metrics  []string `json:"metrics"`
}

// ParseModelSpec parses a spec string of the form VAR@LEVEL:metric1,metric2.
// The legacy VAR:LEVEL:metric1,metric2 form is also accepted. At least one
// metric is required.
func ParseModelSpec(raw string) (ModelSpec, error) {
	raw = strings.TrimSpace(raw)

	var variable, level, metrics string
	if strings.Contains(raw, "@") {
		head, rest, ok := strings.Cut(raw, ":")
		if !ok {
			return ModelSpec{}, fmt.Errorf("model spec %q must look like VAR@LEVEL:metric1,metric2", raw)
		}
		variable, level, _ = strings.Cut(head, "@")
		metrics = rest
	} else {
		parts := strings.Split(raw, ":")
		if len(parts) < 3 {
			return ModelSpec{}, fmt.Errorf("model spec %q must look like VAR@LEVEL:metric1,metric2", raw)
		}
		variable, level = parts[0], parts[1]
		metrics = strings.Join(parts[2:], ":")
	}

	metricList := splitList(metrics)
	if len(metricList) == 0 {
		return ModelSpec{}, fmt.Errorf("model spec %q must include at least one metric", raw)
	}
	return ModelSpec{
		Variable: strings.TrimSpace(variable),
		Level:    strings.TrimSpace(level),
		Metrics:  metricList,
	}, nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SplitMetrics parses a comma-separated metric list such as the
// --station-metrics flag value.
func SplitMetrics(s string) []string {
	return splitList(s)
}
