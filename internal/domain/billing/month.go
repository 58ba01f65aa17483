package billing

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month bucket in YYYY-MM form. The string
// form sorts and compares chronologically, so it is used as the canonical
// key for all month-bucketed aggregates.
type MonthKey string

// MonthKeyFor returns the month bucket containing t.
func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// CurrentMonthKey returns the bucket for the local current month.
func CurrentMonthKey() MonthKey {
	return MonthKeyFor(time.Now())
}

// ParseMonthKey parses a YYYY-MM key into the first day of that month.
func ParseMonthKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return t, nil
}

// Add returns the key months ahead of k (negative values go backwards).
// An unparsable key is anchored at the current month.
func (k MonthKey) Add(months int) MonthKey {
	base, err := ParseMonthKey(string(k))
	if err != nil {
		base, _ = ParseMonthKey(string(CurrentMonthKey()))
	}
	return MonthKeyFor(AddMonthsClamped(base, months, 1))
}

// Valid reports whether k is a well-formed YYYY-MM key.
func (k MonthKey) Valid() bool {
	_, err := ParseMonthKey(string(k))
	return err == nil
}
