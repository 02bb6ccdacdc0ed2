package loader

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbrandonhurd/slopelabs-bundler/internal/table"

	_ "modernc.org/sqlite"
)

// IsSQLitePath reports whether a model input path should be read through the
// SQLite driver rather than as CSV.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".sqlite3", ".db":
		return true
	}
	return false
}

// ReadSQLite reads every row of a table in a SQLite database file into a
// frame. When regionCol is present in the table and aliases are given, the
// region filter is pushed into SQL so only matching rows are materialized,
// mirroring how the model query restricts rows at the source.
func ReadSQLite(path, tableName, regionCol string, aliases []string) (*table.Frame, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	columns, err := tableColumns(db, tableName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	query := fmt.Sprintf(`SELECT * FROM %q`, tableName)
	var args []any
	if regionCol != "" && len(aliases) > 0 && contains(columns, regionCol) {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(aliases)), ",")
		query += fmt.Sprintf(` WHERE lower(%q) IN (%s)`, regionCol, placeholders)
		for _, a := range aliases {
			args = append(args, a)
		}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	frame := table.NewFrame(columns...)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		row := make(table.Row, len(columns))
		for i, c := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[c] = string(v)
			default:
				row[c] = v
			}
		}
		frame.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frame, nil
}

func tableColumns(db *sql.DB, tableName string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %q LIMIT 0`, tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}

func contains(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
