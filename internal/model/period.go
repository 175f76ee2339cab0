package model

// Period identifies one trailing reporting window.
type Period int

const (
	Period1M Period = iota
	Period1Y
	Period3Y
	Period5Y
	PeriodLifetime
)

// Periods lists every reporting window in display order.
var Periods = []Period{Period1M, Period1Y, Period3Y, Period5Y, PeriodLifetime}

// Label returns the human-readable name used in tables and the web page.
func (p Period) Label() string {
	switch p {
	case Period1M:
		return "1 Month"
	case Period1Y:
		return "1 Year"
	case Period3Y:
		return "3 Years"
	case Period5Y:
		return "5 Years"
	case PeriodLifetime:
		return "Lifetime"
	}
	return "Unknown"
}

// Key returns the short identifier matching the JSON field suffix (cagr_<key>).
func (p Period) Key() string {
	switch p {
	case Period1M:
		return "1m"
	case Period1Y:
		return "1y"
	case Period3Y:
		return "3y"
	case Period5Y:
		return "5y"
	case PeriodLifetime:
		return "lifetime"
	}
	return ""
}

// OffsetDays is the number of days subtracted from the reference date to open
// the window. Lifetime has no offset; it spans the whole series.
func (p Period) OffsetDays() int {
	switch p {
	case Period1M:
		return 30
	case Period1Y:
		return 365
	case Period3Y:
		return 365 * 3
	case Period5Y:
		return 365 * 5
	}
	return 0
}
