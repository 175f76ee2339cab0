package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/fundcagr/internal/amfi"
	"github.com/theirongolddev/fundcagr/internal/model"
)

// FromRecords turns archived dump rows for one scheme into a series.
// Rows without a NAV or date are dropped and counted. The name is taken from
// the most recent row.
func FromRecords(records []amfi.Record) (series model.Series, name string, dropped int) {
	var latest time.Time
	for _, r := range records {
		if !r.NAV.Valid || !r.HasDate() {
			dropped++
			continue
		}
		series = append(series, model.Observation{Date: r.Date, Value: r.NAV.Decimal.InexactFloat64()})
		if !r.Date.Before(latest) {
			latest = r.Date
			name = r.SchemeName
		}
	}
	return series.Sorted(), name, dropped
}

// ReportFromRecords builds a report from archived rows as of now.
func ReportFromRecords(code string, records []amfi.Record, now time.Time) (model.Report, LoadStats, error) {
	if len(records) == 0 {
		return model.Report{}, LoadStats{}, fmt.Errorf("archive: scheme %s: %w", code, model.ErrNotFound)
	}

	series, name, dropped := FromRecords(records)
	stats := LoadStats{Observations: len(series), Dropped: dropped}
	stats.First, stats.Last, _ = series.Bounds()

	return BuildReport(code, name, series, now), stats, nil
}
