// Package pipeline turns fetched NAV history into CAGR reports.
package pipeline

import (
	"time"

	"github.com/theirongolddev/fundcagr/internal/cagr"
	"github.com/theirongolddev/fundcagr/internal/model"
)

// Windows returns the reporting window for every period, anchored at now.
// Trailing windows end at now; the lifetime window spans the series bounds.
// Lifetime is absent when the series is empty.
func Windows(series model.Series, now time.Time) map[model.Period]model.Window {
	now = model.Truncate(now)
	out := make(map[model.Period]model.Window, len(model.Periods))

	for _, p := range model.Periods {
		if p == model.PeriodLifetime {
			if lo, hi, ok := series.Bounds(); ok {
				out[p] = model.Window{From: lo, To: hi}
			}
			continue
		}
		out[p] = model.Window{From: now.AddDate(0, 0, -p.OffsetDays()), To: now}
	}
	return out
}

// BuildReport computes every period's CAGR, scaled to percent.
func BuildReport(code, name string, series model.Series, now time.Time) model.Report {
	r := model.Report{
		SchemeCode: code,
		SchemeName: name,
		AsOf:       model.Truncate(now),
	}

	for p, w := range Windows(series, now) {
		if rate, ok := cagr.ComputeWindow(series, w); ok {
			pct := rate * 100
			r.Set(p, &pct)
		}
	}
	return r
}
