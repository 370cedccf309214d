package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
)

// legacyTimestampLayout is SQLite's CURRENT_TIMESTAMP format, still present in
// rows carried over from the single-property store.
const legacyTimestampLayout = "2006-01-02 15:04:05"

// parseTimestamp accepts RFC3339 and the legacy CURRENT_TIMESTAMP format.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyTimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return t.UTC(), nil
}

// parseNullableDate parses a due_date column. NULL, empty and malformed values
// all read as "no due date".
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(domain.DateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableDate converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nowUTC returns the current time in UTC, used when a caller leaves a timestamp zero.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// stamp returns t, or the current time when t is zero.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return nowUTC()
	}
	return t
}

// requireAffected turns a zero-row mutation into ErrNotFound.
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, what, id)
	}
	return nil
}
