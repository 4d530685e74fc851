// Package daily derives the seed key shared by every player on a given day.
package daily

import "time"

const layout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(layout)
}

// IsDateKey reports whether seed looks like a daily seed (a valid YYYY-MM-DD date).
func IsDateKey(seed string) bool {
	_, err := time.Parse(layout, seed)
	return err == nil
}
