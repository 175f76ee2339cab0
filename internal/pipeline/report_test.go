package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/fundcagr/internal/cagr"
	"github.com/theirongolddev/fundcagr/internal/mfapi"
	"github.com/theirongolddev/fundcagr/internal/model"
)

// dailySeries returns one observation per day from start for n days, growing
// at a constant annual rate on a 365-day year.
func dailySeries(start time.Time, n int, base, annual float64) model.Series {
	s := make(model.Series, n)
	for i := 0; i < n; i++ {
		s[i] = model.Observation{
			Date:  start.AddDate(0, 0, i),
			Value: base * math.Pow(1+annual, float64(i)/365.0),
		}
	}
	return s
}

func TestWindows(t *testing.T) {
	now := time.Date(2025, 4, 11, 15, 30, 0, 0, time.Local)
	series := model.Series{
		{Date: model.Date(2015, 1, 2), Value: 10},
		{Date: model.Date(2025, 4, 10), Value: 20},
	}

	w := Windows(series, now)
	today := model.Date(2025, 4, 11)

	tests := []struct {
		p    model.Period
		from time.Time
		to   time.Time
	}{
		{model.Period1M, model.Date(2025, 3, 12), today},
		{model.Period1Y, model.Date(2024, 4, 11), today},
		{model.Period3Y, model.Date(2022, 4, 12), today},
		{model.Period5Y, model.Date(2020, 4, 12), today},
		{model.PeriodLifetime, model.Date(2015, 1, 2), model.Date(2025, 4, 10)},
	}
	for _, tt := range tests {
		got, ok := w[tt.p]
		if !ok {
			t.Fatalf("%s window missing", tt.p.Label())
		}
		if !got.From.Equal(tt.from) || !got.To.Equal(tt.to) {
			t.Errorf("%s window = [%s, %s], want [%s, %s]", tt.p.Label(),
				got.From.Format("2006-01-02"), got.To.Format("2006-01-02"),
				tt.from.Format("2006-01-02"), tt.to.Format("2006-01-02"))
		}
	}
}

func TestWindows_EmptySeriesHasNoLifetime(t *testing.T) {
	w := Windows(nil, model.Date(2025, 1, 1))
	if _, ok := w[model.PeriodLifetime]; ok {
		t.Fatal("lifetime window present for empty series")
	}
	if len(w) != 4 {
		t.Fatalf("len(windows) = %d, want 4", len(w))
	}
}

func TestBuildReport_ScalesByHundred(t *testing.T) {
	now := model.Date(2025, 4, 11)
	series := dailySeries(now.AddDate(0, 0, -2000), 2001, 10, 0.12)

	r := BuildReport("147946", "Test Fund", series, now)
	if r.SchemeName != "Test Fund" || r.SchemeCode != "147946" {
		t.Fatalf("report identity = %q/%q", r.SchemeCode, r.SchemeName)
	}

	for p, w := range Windows(series, now) {
		rate, ok := cagr.ComputeWindow(series, w)
		got, gotOK := r.Value(p)
		if ok != gotOK {
			t.Fatalf("%s: defined = %v, want %v", p.Label(), gotOK, ok)
		}
		if ok && got != rate*100 {
			t.Errorf("%s: report = %v, want %v", p.Label(), got, rate*100)
		}
		if ok && math.Abs(got-12) > 1e-6 {
			t.Errorf("%s: report = %.8f, want ~12", p.Label(), got)
		}
	}
}

func TestBuildReport_InsufficientData(t *testing.T) {
	now := model.Date(2025, 4, 11)
	// Only one observation within the last month, history only two years deep.
	series := model.Series{
		{Date: model.Date(2023, 4, 1), Value: 10},
		{Date: model.Date(2024, 1, 1), Value: 11},
		{Date: model.Date(2025, 4, 1), Value: 12},
	}

	r := BuildReport("1", "Thin Fund", series, now)

	if _, ok := r.Value(model.Period1M); ok {
		t.Error("1M defined with a single observation in window")
	}
	if _, ok := r.Value(model.Period1Y); ok {
		t.Error("1Y defined with a single observation in window")
	}
	if _, ok := r.Value(model.Period3Y); !ok {
		t.Error("3Y undefined, want defined")
	}
	if _, ok := r.Value(model.PeriodLifetime); !ok {
		t.Error("lifetime undefined, want defined")
	}

	undef := r.Undefined()
	if len(undef) != 2 || undef[0] != model.Period1M || undef[1] != model.Period1Y {
		t.Errorf("Undefined = %v, want [1M 1Y]", undef)
	}
	if _, err := r.Require(model.Period1M); !errors.Is(err, model.ErrUndefined) {
		t.Errorf("Require(1M) err = %v, want ErrUndefined", err)
	}
}

func TestBuildReport_EmptySeries(t *testing.T) {
	r := BuildReport("1", "Empty", nil, model.Date(2025, 1, 1))
	if got := len(r.Undefined()); got != len(model.Periods) {
		t.Fatalf("undefined periods = %d, want all %d", got, len(model.Periods))
	}
}

type stubFetcher struct {
	scheme *mfapi.Scheme
	err    error
	code   string
}

func (s *stubFetcher) FetchScheme(_ context.Context, code string) (*mfapi.Scheme, error) {
	s.code = code
	return s.scheme, s.err
}

func TestLoad(t *testing.T) {
	f := &stubFetcher{scheme: &mfapi.Scheme{
		Meta: mfapi.SchemeMeta{SchemeName: "Axis Bluechip"},
		Data: []mfapi.NAVPoint{
			{Date: "11-04-2025", NAV: "110"},
			{Date: "bad", NAV: "1"},
			{Date: "11-04-2024", NAV: "100"},
		},
	}}

	r, stats, err := Load(context.Background(), f, "147946", model.Date(2025, 4, 11))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.code != "147946" {
		t.Errorf("fetched code = %q", f.code)
	}
	if stats.Observations != 2 || stats.Dropped != 1 {
		t.Errorf("stats = %+v, want 2 observations, 1 dropped", stats)
	}
	if !stats.First.Equal(model.Date(2024, 4, 11)) || !stats.Last.Equal(model.Date(2025, 4, 11)) {
		t.Errorf("stats range = %v..%v", stats.First, stats.Last)
	}
	v, ok := r.Value(model.Period1Y)
	if !ok || math.Abs(v-10) > 1e-9 {
		t.Errorf("1Y = (%v, %v), want (10, true)", v, ok)
	}
	if r.SchemeName != "Axis Bluechip" {
		t.Errorf("SchemeName = %q", r.SchemeName)
	}
}

func TestLoad_PropagatesError(t *testing.T) {
	want := fmt.Errorf("mfapi: %w", model.ErrNetwork)
	_, _, err := Load(context.Background(), &stubFetcher{err: want}, "1", time.Now())
	if !errors.Is(err, model.ErrNetwork) {
		t.Fatalf("Load err = %v, want ErrNetwork", err)
	}
}

func TestLoad_RejectsInvalidCode(t *testing.T) {
	for _, code := range []string{"", "abc", "12 34", "12345678901"} {
		f := &stubFetcher{}
		_, _, err := Load(context.Background(), f, code, time.Now())
		if !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("Load(%q) err = %v, want ErrInvalidInput", code, err)
		}
		if f.code != "" {
			t.Errorf("Load(%q) reached the fetcher", code)
		}
	}
}
