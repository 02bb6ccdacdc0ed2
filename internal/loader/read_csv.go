package loader

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"
)

// ReadCSV reads a CSV file into a frame of header-keyed string rows.
// Field values are whitespace-trimmed; short rows leave trailing columns
// missing.
func ReadCSV(path string) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("read %s: no header row", path)
	}

	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
	}

	frame := table.NewFrame(header...)
	for _, record := range all[1:] {
		row := make(table.Row, len(header))
		for j, h := range header {
			if j < len(record) {
				row[h] = strings.TrimSpace(record[j])
			}
		}
		frame.Append(row)
	}
	return frame, nil
}

// resolveStationPaths expands a station path into the sorted list of CSV
// files it represents: the file itself, or every *.csv / *.CSV directly
// inside a directory.
func resolveStationPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var paths []string
	for _, pattern := range []string{"*.csv", "*.CSV"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no station CSV files under %s: %w", path, fs.ErrNotExist)
	}
	sort.Strings(paths)
	return paths, nil
}

// mergeFrames concatenates frames, unioning their columns in first-seen
// order.
func mergeFrames(frames []*table.Frame) *table.Frame {
	merged := table.NewFrame()
	for _, f := range frames {
		for _, c := range f.Columns {
			merged.AddColumn(c)
		}
		merged.Append(f.Rows...)
	}
	return merged
}
