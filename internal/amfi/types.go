package amfi

import (
	"time"

	"github.com/shopspring/decimal"
)

// Columns are the dump's field names, in file order.
var Columns = []string{
	"Scheme Code",
	"ISIN Div Payout/ISIN Growth",
	"ISIN Div Reinvestment",
	"Scheme Name",
	"Net Asset Value",
	"Date",
}

// Record is one scheme row from NAVAll.txt. NAV is null and Date is zero
// when the dump carries a placeholder such as "N.A.".
type Record struct {
	SchemeCode   string
	ISINGrowth   string
	ISINReinvest string
	SchemeName   string
	NAV          decimal.NullDecimal
	Date         time.Time

	// Grouping headings that precede the row in the dump.
	Category  string
	FundHouse string
}

// HasDate reports whether the record's date parsed.
func (r Record) HasDate() bool { return !r.Date.IsZero() }

// ParseResult holds the output of parsing a dump.
type ParseResult struct {
	Records []Record
	Skipped int // delimited lines with the wrong field count
}
