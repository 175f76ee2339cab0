// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Undefined is shown in place of a CAGR that could not be computed.
const Undefined = "Insufficient data"

// FormatCAGR formats a percentage with two decimals, or Undefined when !ok.
// e.g., 12.3456 -> "12.35%"
func FormatCAGR(pct float64, ok bool) string {
	if !ok {
		return Undefined
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatNAV formats a net asset value to four decimals, the precision AMFI publishes.
func FormatNAV(nav float64) string {
	return strconv.FormatFloat(nav, 'f', 4, 64)
}

// FormatDate formats a calendar date as YYYY-MM-DD, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
