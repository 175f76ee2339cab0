package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundcagr/internal/config"
	"github.com/theirongolddev/fundcagr/internal/tui"
	"github.com/theirongolddev/fundcagr/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [scheme-code]",
	Short: "Launch the interactive CAGR calculator",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	code := config.DefaultScheme(cfg)
	if len(args) > 0 {
		code = args[0]
	}

	app := tui.NewApp(newMFAPIClient(cfg), code)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
