package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/sjson"
	_ "modernc.org/sqlite"
)

// LoadSQLite runs query against the SQLite database at dsn and turns every row
// into a record keyed by column name.
func LoadSQLite(ctx context.Context, dsn, query string) ([]Record, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := QueryRecords(ctx, db, query)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("dsn", dsn).Int("records", len(records)).Msg("Loaded records from SQLite")
	return records, nil
}

// QueryRecords runs query on db and converts each row into a record.
func QueryRecords(ctx context.Context, db *sql.DB, query string, args ...any) ([]Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	paths := make([]string, len(columns))
	for i, column := range columns {
		paths[i] = escapePath(column)
	}

	records := make([]Record, 0)
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(records), err)
		}

		doc := "{}"
		for i, value := range values {
			doc, err = sjson.Set(doc, paths[i], columnValue(value))
			if err != nil {
				return nil, fmt.Errorf("failed to set column %q: %w", columns[i], err)
			}
		}

		record, err := NewRecord(doc)
		if err != nil {
			return nil, fmt.Errorf("invalid row %d: %w", len(records), err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

func columnValue(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return v
	}
}

// escapePath keeps column names containing gjson path syntax as single keys.
func escapePath(column string) string {
	var b strings.Builder
	for _, r := range column {
		switch r {
		case '.', '*', '?':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
