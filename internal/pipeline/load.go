package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fundcagr/internal/mfapi"
	"github.com/theirongolddev/fundcagr/internal/model"
)

// Fetcher retrieves raw scheme history. *mfapi.Client implements it.
type Fetcher interface {
	FetchScheme(ctx context.Context, code string) (*mfapi.Scheme, error)
}

var _ Fetcher = (*mfapi.Client)(nil)

// LoadStats describes the normalization of one fetch.
type LoadStats struct {
	Observations int
	Dropped      int
	First        time.Time
	Last         time.Time
}

// Load fetches a scheme, normalizes its rows and builds the report as of now.
func Load(ctx context.Context, f Fetcher, code string, now time.Time) (model.Report, LoadStats, error) {
	code = strings.TrimSpace(code)
	if !mfapi.ValidSchemeCode(code) {
		return model.Report{}, LoadStats{}, fmt.Errorf("scheme code %q: %w", code, model.ErrInvalidInput)
	}

	scheme, err := f.FetchScheme(ctx, code)
	if err != nil {
		return model.Report{}, LoadStats{}, err
	}

	series, dropped := mfapi.Normalize(scheme.Data)
	stats := LoadStats{Observations: len(series), Dropped: dropped}
	stats.First, stats.Last, _ = series.Bounds()

	return BuildReport(code, scheme.Meta.SchemeName, series, now), stats, nil
}
