package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fundcagr/internal/model"
)

// ReportTable lays out one row per reporting period.
func ReportTable(r model.Report) Table {
	rows := make([][]string, 0, len(model.Periods))
	for _, p := range model.Periods {
		v, ok := r.Value(p)
		rows = append(rows, []string{p.Label(), FormatCAGR(v, ok)})
	}
	return Table{
		Title:   r.SchemeName,
		Headers: []string{"Period", "CAGR"},
		Rows:    rows,
	}
}

// Coverage summarizes the data behind a report.
type Coverage struct {
	Observations int
	Dropped      int
	First        time.Time
	Last         time.Time
}

// RenderReport renders the full terminal view of a report.
func RenderReport(r model.Report, cov Coverage) string {
	var b strings.Builder

	title := "CAGR"
	if r.SchemeCode != "" {
		title = fmt.Sprintf("CAGR  Scheme %s", r.SchemeCode)
	}
	b.WriteString(RenderTitle(title))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(ReportTable(r)))

	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("As of %s  |  %s NAVs from %s to %s",
		FormatDate(r.AsOf),
		FormatNumber(int64(cov.Observations)),
		FormatDate(cov.First),
		FormatDate(cov.Last))))
	b.WriteString("\n")
	if cov.Dropped > 0 {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d malformed rows skipped", cov.Dropped)))
		b.WriteString("\n")
	}
	if v, ok := r.Value(model.PeriodLifetime); ok {
		b.WriteString("  ")
		b.WriteString(RenderCAGR(v, ok))
		b.WriteString(dimStyle.Render(" annualized since inception"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderCAGR colors a percentage by sign.
func RenderCAGR(pct float64, ok bool) string {
	s := FormatCAGR(pct, ok)
	switch {
	case !ok:
		return warnStyle.Render(s)
	case pct < 0:
		return lossStyle.Render(s)
	default:
		return gainStyle.Render(s)
	}
}
