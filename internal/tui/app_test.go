package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/fundcagr/internal/config"
	"github.com/theirongolddev/fundcagr/internal/mfapi"
	"github.com/theirongolddev/fundcagr/internal/model"
)

type stubFetcher struct {
	scheme *mfapi.Scheme
	err    error
}

func (s stubFetcher) FetchScheme(_ context.Context, _ string) (*mfapi.Scheme, error) {
	return s.scheme, s.err
}

var sample = &mfapi.Scheme{
	Meta: mfapi.SchemeMeta{SchemeName: "Parag Parikh Flexi Cap"},
	Data: []mfapi.NAVPoint{
		{Date: "11-04-2025", NAV: "110"},
		{Date: "11-04-2024", NAV: "100"},
	},
}

func fixedClock() time.Time { return time.Date(2025, 4, 11, 9, 0, 0, 0, time.UTC) }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

// runLookup submits the current input and feeds the resulting ReportMsg back.
func runLookup(t *testing.T, a App, f stubFetcher) App {
	t.Helper()
	a, cmd := update(t, a, key("enter"))
	if !a.loading {
		t.Fatal("enter did not start loading")
	}
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	msg := lookupCmd(f, a.pending, fixedClock(), time.Second)()
	a, _ = update(t, a, msg)
	return a
}

func TestLookupSuccess(t *testing.T) {
	f := stubFetcher{scheme: sample}
	a := NewApp(f, "").WithClock(fixedClock)
	a, _ = update(t, a, key("122639"))

	a = runLookup(t, a, f)
	if a.loading {
		t.Fatal("still loading after ReportMsg")
	}
	if a.err != nil {
		t.Fatalf("err = %v", a.err)
	}
	if a.report == nil || a.report.SchemeName != "Parag Parikh Flexi Cap" {
		t.Fatalf("report = %+v", a.report)
	}
	if v, ok := a.report.Value(model.Period1Y); !ok || v < 9.99 || v > 10.01 {
		t.Errorf("1Y = (%v, %v), want ~10", v, ok)
	}
	if len(a.recent) != 1 || a.recent[0] != "122639" {
		t.Errorf("recent = %v", a.recent)
	}

	view := a.View()
	for _, want := range []string{"Parag Parikh Flexi Cap", "10.00%", "Insufficient data", "Lifetime"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLookupError(t *testing.T) {
	f := stubFetcher{err: fmt.Errorf("mfapi: %w", model.ErrNotFound)}
	a := NewApp(f, "999999").WithClock(fixedClock)

	a = runLookup(t, a, f)
	if !errors.Is(a.err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", a.err)
	}
	if a.report != nil {
		t.Error("report set after failed lookup")
	}
	if !strings.Contains(a.View(), "Error:") {
		t.Error("view does not show the error")
	}
}

func TestEmptySubmit(t *testing.T) {
	a := NewApp(stubFetcher{}, "")
	a, cmd := update(t, a, key("enter"))
	if cmd != nil || a.loading {
		t.Fatal("empty input started a lookup")
	}
	if !errors.Is(a.err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", a.err)
	}
}

func TestStaleReportIgnored(t *testing.T) {
	a := NewApp(stubFetcher{}, "1")
	a, _ = update(t, a, key("enter"))

	a, _ = update(t, a, ReportMsg{Code: "2", Report: model.Report{SchemeName: "other"}})
	if !a.loading || a.report != nil {
		t.Fatal("report for a different code was applied")
	}
}

func TestInitWithCodeSubmits(t *testing.T) {
	a := NewApp(stubFetcher{scheme: sample}, "122639")
	cmd := a.Init()
	if cmd == nil {
		t.Fatal("Init returned nil")
	}
	if _, ok := cmd().(submitMsg); !ok {
		t.Fatal("Init with a code did not submit")
	}
}

func TestQuitKeys(t *testing.T) {
	a := NewApp(stubFetcher{}, "")
	_, cmd := update(t, a, key("esc"))
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("esc did not quit")
	}
}

func TestRememberDedupes(t *testing.T) {
	a := NewApp(stubFetcher{}, "")
	for _, c := range []string{"1", "2", "3", "2", "4", "5", "6"} {
		a.remember(c)
	}
	want := []string{"6", "5", "4", "2", "3"}
	if strings.Join(a.recent, ",") != strings.Join(want, ",") {
		t.Fatalf("recent = %v, want %v", a.recent, want)
	}
}

func TestSetupApply(t *testing.T) {
	vals := SetupValues{Scheme: " 118834 ", Addr: "", Theme: "tokyo-night", LogLevel: "debug"}
	cfg := vals.Apply(config.DefaultConfig())

	if cfg.General.DefaultScheme != "118834" {
		t.Errorf("DefaultScheme = %q", cfg.General.DefaultScheme)
	}
	if cfg.Server.Addr != config.DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, config.DefaultAddr)
	}
	if cfg.Appearance.Theme != "tokyo-night" || cfg.Log.Level != "debug" {
		t.Errorf("appearance/log = %q/%q", cfg.Appearance.Theme, cfg.Log.Level)
	}

	if got := SetupValuesFrom(cfg).Apply(config.DefaultConfig()); got != cfg {
		t.Errorf("SetupValuesFrom round trip = %+v, want %+v", got, cfg)
	}
}

func TestValidateOptionalScheme(t *testing.T) {
	for _, ok := range []string{"", "  ", "1", "118834"} {
		if err := ValidateOptionalScheme(ok); err != nil {
			t.Errorf("ValidateOptionalScheme(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"abc", "12-3", "12345678901"} {
		if err := ValidateOptionalScheme(bad); err == nil {
			t.Errorf("ValidateOptionalScheme(%q) = nil, want error", bad)
		}
	}
	if NewSetupForm(&SetupValues{}) == nil {
		t.Fatal("NewSetupForm returned nil")
	}
}
