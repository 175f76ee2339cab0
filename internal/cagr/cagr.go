// Package cagr computes compound annual growth rates over NAV series.
package cagr

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/fundcagr/internal/model"
)

// DaysPerYear is the fixed year length used to annualize elapsed days.
// Leap years are not accounted for.
const DaysPerYear = 365.0

// Compute returns the annualized growth rate between the first and last
// observation of series whose date lies in [from, to]. The rate is a decimal
// (0.10 is 10%). ok is false when the window holds fewer than two distinct
// dates, the initial value is not positive, or the result is not finite.
//
// series may be unsorted and is never modified.
func Compute(series model.Series, from, to time.Time) (rate float64, ok bool) {
	w := model.Window{From: from, To: to}

	var sel model.Series
	for _, o := range series {
		if w.Contains(o.Date) {
			sel = append(sel, o)
		}
	}
	if len(sel) == 0 {
		return 0, false
	}

	sort.SliceStable(sel, func(i, j int) bool {
		return sel[i].Date.Before(sel[j].Date)
	})

	first, last := sel[0], sel[len(sel)-1]
	years := float64(model.DaysBetween(first.Date, last.Date)) / DaysPerYear

	// A negative initial NAV is bad upstream data; treat it like zero.
	if years == 0 || first.Value <= 0 {
		return 0, false
	}

	rate = math.Pow(last.Value/first.Value, 1/years) - 1
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

// ComputeWindow is Compute over a model.Window.
func ComputeWindow(series model.Series, w model.Window) (float64, bool) {
	return Compute(series, w.From, w.To)
}
