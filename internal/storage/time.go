package storage

import (
	"fmt"
	"time"
)

// parseSQLiteTime parses a DATETIME column value. SQLite stores
// CURRENT_TIMESTAMP as "2006-01-02 15:04:05" but values written by other
// clients may be RFC3339.
func parseSQLiteTime(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t, nil
}
