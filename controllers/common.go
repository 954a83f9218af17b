package controllers

import (
	"time"
)

// parseDate accepts full RFC 3339 timestamps or bare dates, the two shapes
// the front end sends for range filters.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
