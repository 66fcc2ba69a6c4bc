package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timeLayout is the fixed-width UTC layout of every stored timestamp, so
// timestamps compare correctly as strings.
const timeLayout = "2006-01-02T15:04:05.000Z"

// now returns the current UTC time formatted as a stored timestamp.
func now() string {
	return timestamp(time.Now())
}

func timestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// marshalNullable encodes v as JSON, storing NULL for nil values.
func marshalNullable(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// unmarshalNullable decodes a nullable JSON column into dst. NULL leaves dst
// untouched.
func unmarshalNullable(col sql.NullString, dst any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), dst); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
