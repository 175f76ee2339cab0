package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fundcagr/internal/config"
	"github.com/theirongolddev/fundcagr/internal/mfapi"
	"github.com/theirongolddev/fundcagr/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Scheme   string
	Addr     string
	Theme    string
	LogLevel string
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Scheme:   cfg.General.DefaultScheme,
		Addr:     cfg.Server.Addr,
		Theme:    cfg.Appearance.Theme,
		LogLevel: cfg.Log.Level,
	}
}

// NewSetupForm builds the first-run configuration form bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default scheme code").
				Description("Used by `fundcagr report` when no code is given. Leave blank to always ask.").
				Placeholder("118834").
				Value(&vals.Scheme).
				Validate(ValidateOptionalScheme),
			huh.NewInput().
				Title("Web calculator address").
				Description("Listen address for `fundcagr serve`.").
				Placeholder(config.DefaultAddr).
				Value(&vals.Addr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("info", "info"),
					huh.NewOption("debug", "debug"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&vals.LogLevel),
		),
	)
}

// ValidateOptionalScheme accepts an empty string or a well-formed scheme code.
func ValidateOptionalScheme(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || mfapi.ValidSchemeCode(s) {
		return nil
	}
	return fmt.Errorf("scheme codes are 1-10 digits")
}

// Apply writes the answers onto cfg.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	cfg.General.DefaultScheme = strings.TrimSpace(v.Scheme)
	if addr := strings.TrimSpace(v.Addr); addr != "" {
		cfg.Server.Addr = addr
	} else {
		cfg.Server.Addr = config.DefaultAddr
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	}
	if v.LogLevel != "" {
		cfg.Log.Level = v.LogLevel
	}
	return cfg
}
