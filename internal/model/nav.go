// Package model defines the NAV series, report and error types shared across fundcagr.
package model

import (
	"sort"
	"time"
)

// Observation is a single NAV reading for a calendar date.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is an ordered sequence of observations, ascending by date once normalized.
// Dates may repeat.
type Series []Observation

// Sorted returns a stably sorted copy of the series. The receiver is not modified.
func (s Series) Sorted() Series {
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Bounds returns the earliest and latest dates in the series.
func (s Series) Bounds() (minDate, maxDate time.Time, ok bool) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = s[0].Date, s[0].Date
	for _, o := range s[1:] {
		if o.Date.Before(minDate) {
			minDate = o.Date
		}
		if o.Date.After(maxDate) {
			maxDate = o.Date
		}
	}
	return minDate, maxDate, true
}

// Window is a closed date interval [From, To].
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Date builds a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time-of-day and location from t, keeping its calendar date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses s with layout and returns the calendar date at UTC midnight.
func ParseDate(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Truncate(t), nil
}

// DaysBetween returns the whole number of days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}
