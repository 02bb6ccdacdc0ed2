package table

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaError reports that none of the candidate column names for a required
// column are present in the input schema. It names both the attempted
// candidates and the available columns so operators can fix the override.
type SchemaError struct {
	Dataset   string
	Wanted    []string
	Available []string
}

func (e *SchemaError) Error() string {
	available := append([]string(nil), e.Available...)
	sort.Strings(available)
	return fmt.Sprintf("%s: none of the columns [%s] found; available columns: [%s]",
		e.Dataset, strings.Join(e.Wanted, ", "), strings.Join(available, ", "))
}

// Candidates builds an ordered candidate list: the explicit override first,
// then the accepted synonyms, with duplicates removed.
func Candidates(override string, synonyms ...string) []string {
	out := make([]string, 0, len(synonyms)+1)
	seen := make(map[string]bool, len(synonyms)+1)
	for _, c := range append([]string{override}, synonyms...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// ResolveColumn returns the first candidate present in the available column
// set, or a SchemaError when none match.
func ResolveColumn(dataset string, available []string, candidates []string) (string, error) {
	present := make(map[string]bool, len(available))
	for _, c := range available {
		present[c] = true
	}
	for _, c := range candidates {
		if present[c] {
			return c, nil
		}
	}
	return "", &SchemaError{Dataset: dataset, Wanted: candidates, Available: available}
}
