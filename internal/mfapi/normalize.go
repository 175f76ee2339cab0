package mfapi

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fundcagr/internal/model"
)

// DateLayout is the layout of NAVPoint.Date.
const DateLayout = "02-01-2006"

// Normalize converts raw rows into a date-sorted series. Rows whose date or
// NAV cannot be parsed are dropped and counted.
func Normalize(points []NAVPoint) (model.Series, int) {
	series := make(model.Series, 0, len(points))
	dropped := 0

	for _, p := range points {
		d, err := model.ParseDate(DateLayout, strings.TrimSpace(p.Date))
		if err != nil {
			dropped++
			continue
		}
		v, ok := parseNAV(p.NAV)
		if !ok {
			dropped++
			continue
		}
		series = append(series, model.Observation{Date: d, Value: v})
	}

	return series.Sorted(), dropped
}

func parseNAV(s string) (float64, bool) {
	dec, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	v := dec.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
