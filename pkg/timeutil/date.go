// Package timeutil holds the calendar arithmetic shared by the grid,
// countdown and editor: leap years, day-of-year indexes and the ISO date keys
// annotations are stored under.
package timeutil

import (
	"fmt"
	"time"
)

const (
	// LayoutISO is the key format for annotations.
	LayoutISO = "2006-01-02"
	// LayoutDay is the focus-record date format.
	LayoutDay = "Mon Jan 02 2006"
)

// IsLeapYear reports whether year has a Feb 29 under the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// TotalDays returns 366 for leap years and 365 otherwise.
func TotalDays(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based index of the calendar day containing t, using
// the calendar of t's own location. Going through the calendar fields rather
// than elapsed duration keeps DST shifts from moving the result.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// DateForDay returns midnight UTC of the day-th day of year. Days outside
// [1, TotalDays(year)] normalize the way the calendar does, so day 0 is Dec 31
// of the previous year.
func DateForDay(year, day int) time.Time {
	return time.Date(year, time.January, day, 0, 0, 0, 0, time.UTC)
}

// DateStringForDay returns the zero-padded YYYY-MM-DD key for the day-th day
// of year.
func DateStringForDay(year, day int) string {
	return DateForDay(year, day).Format(LayoutISO)
}

// DateString returns the YYYY-MM-DD key of the calendar day containing t.
func DateString(t time.Time) string {
	return t.Format(LayoutISO)
}

// DayString returns the focus-record date of the calendar day containing t.
func DayString(t time.Time) string {
	return t.Format(LayoutDay)
}

// ParseDate parses a YYYY-MM-DD key into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(LayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: invalid date %q: %w", s, err)
	}
	return t, nil
}

// DayForDate is the inverse of DateStringForDay.
func DayForDate(s string) (year, day int, err error) {
	t, err := ParseDate(s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.YearDay(), nil
}

// DaysBetween returns the signed number of calendar days from a to b, both
// YYYY-MM-DD keys.
func DaysBetween(a, b string) (int, error) {
	from, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	to, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// PercentComplete returns how much of the year has elapsed when day of total
// days is the current day.
func PercentComplete(day, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(day) / float64(total) * 100
}
