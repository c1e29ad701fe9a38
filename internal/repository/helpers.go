package repository

import (
	"fmt"
	"time"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// timestamps stamps created/updated on a record being inserted. Zero values
// are replaced with now.
func timestamps(created, updated *time.Time) {
	now := time.Now().UTC().Truncate(time.Second)
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func parseTimes(createdStr, updatedStr string) (time.Time, time.Time, error) {
	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return created, updated, nil
}
