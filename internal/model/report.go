package model

import (
	"fmt"
	"time"
)

// Report holds the CAGR figures for one scheme, already scaled to percent.
// A nil value means the window had insufficient data.
type Report struct {
	SchemeCode   string    `json:"scheme_code,omitempty"`
	SchemeName   string    `json:"scheme_name"`
	AsOf         time.Time `json:"-"`
	CAGR1M       *float64  `json:"cagr_1m"`
	CAGR1Y       *float64  `json:"cagr_1y"`
	CAGR3Y       *float64  `json:"cagr_3y"`
	CAGR5Y       *float64  `json:"cagr_5y"`
	CAGRLifetime *float64  `json:"cagr_lifetime"`
}

func (r *Report) slot(p Period) **float64 {
	switch p {
	case Period1M:
		return &r.CAGR1M
	case Period1Y:
		return &r.CAGR1Y
	case Period3Y:
		return &r.CAGR3Y
	case Period5Y:
		return &r.CAGR5Y
	case PeriodLifetime:
		return &r.CAGRLifetime
	}
	return nil
}

// Set stores the percentage for p; nil marks it undefined.
func (r *Report) Set(p Period, pct *float64) {
	if s := r.slot(p); s != nil {
		*s = pct
	}
}

// Value returns the percentage for p and whether it is defined.
func (r Report) Value(p Period) (float64, bool) {
	s := r.slot(p)
	if s == nil || *s == nil {
		return 0, false
	}
	return **s, true
}

// Require returns the percentage for p, or an error wrapping ErrUndefined.
func (r Report) Require(p Period) (float64, error) {
	v, ok := r.Value(p)
	if !ok {
		return 0, fmt.Errorf("%s CAGR: %w", p.Label(), ErrUndefined)
	}
	return v, nil
}

// Undefined lists the periods without a value, in display order.
func (r Report) Undefined() []Period {
	var out []Period
	for _, p := range Periods {
		if _, ok := r.Value(p); !ok {
			out = append(out, p)
		}
	}
	return out
}
