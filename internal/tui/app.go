// Package tui provides the interactive Bubble Tea CAGR calculator.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundcagr/internal/cli"
	"github.com/theirongolddev/fundcagr/internal/model"
	"github.com/theirongolddev/fundcagr/internal/pipeline"
	"github.com/theirongolddev/fundcagr/internal/tui/theme"
)

// ReportMsg is sent when a scheme lookup finishes.
type ReportMsg struct {
	Code   string
	Report model.Report
	Stats  pipeline.LoadStats
	Err    error
	Took   time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	fetcher pipeline.Fetcher
	now     func() time.Time
	timeout time.Duration

	input   textinput.Model
	spinner spinner.Model

	loading bool
	pending string
	report  *model.Report
	stats   pipeline.LoadStats
	took    time.Duration
	err     error

	// Codes looked up this session, most recent first.
	recent []string

	width  int
	height int
}

const (
	maxRecent   = 5
	cardWidth   = 56
	lookupLimit = 30 * time.Second
)

// NewApp creates the calculator. An empty initial code starts with a blank input;
// otherwise the lookup runs immediately.
func NewApp(f pipeline.Fetcher, initialCode string) App {
	ti := textinput.New()
	ti.Placeholder = "Enter Scheme Code (e.g., 118834)"
	ti.CharLimit = 10
	ti.Width = 36
	ti.Prompt = "› "
	ti.SetValue(initialCode)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		fetcher: f,
		now:     time.Now,
		timeout: lookupLimit,
		input:   ti,
		spinner: sp,
	}
}

// WithClock overrides the reference date source.
func (a App) WithClock(now func() time.Time) App {
	a.now = now
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if strings.TrimSpace(a.input.Value()) != "" {
		return func() tea.Msg { return submitMsg{} }
	}
	return textinput.Blink
}

type submitMsg struct{}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			return a.submit()
		case "up":
			if len(a.recent) > 0 && !a.loading {
				a.input.SetValue(a.recent[0])
				a.input.CursorEnd()
			}
			return a, nil
		}
		if a.loading {
			return a, nil
		}

	case submitMsg:
		return a.submit()

	case ReportMsg:
		if msg.Code != a.pending {
			return a, nil
		}
		a.loading = false
		a.pending = ""
		a.took = msg.Took
		if msg.Err != nil {
			a.err = msg.Err
			a.report = nil
			return a, nil
		}
		a.err = nil
		r := msg.Report
		a.report = &r
		a.stats = msg.Stats
		a.remember(msg.Code)
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) submit() (tea.Model, tea.Cmd) {
	if a.loading {
		return a, nil
	}
	code := strings.TrimSpace(a.input.Value())
	if code == "" {
		a.err = fmt.Errorf("please enter a scheme code: %w", model.ErrInvalidInput)
		a.report = nil
		return a, nil
	}

	a.loading = true
	a.pending = code
	a.err = nil
	return a, tea.Batch(a.spinner.Tick, lookupCmd(a.fetcher, code, a.now(), a.timeout))
}

func (a *App) remember(code string) {
	out := []string{code}
	for _, c := range a.recent {
		if c != code && len(out) < maxRecent {
			out = append(out, c)
		}
	}
	a.recent = out
}

func lookupCmd(f pipeline.Fetcher, code string, now time.Time, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		r, stats, err := pipeline.Load(ctx, f, code, now)
		return ReportMsg{Code: code, Report: r, Stats: stats, Err: err, Took: time.Since(start)}
	}
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(0, 1).
		Width(cardWidth - 4)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ fundcagr"))
	b.WriteString(subtitleStyle.Render(" · Mutual Fund CAGR Calculator"))
	b.WriteString("\n\n")
	b.WriteString(inputStyle.Render(a.input.View()))
	b.WriteString("\n\n")

	switch {
	case a.loading:
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Fetching data and calculating returns..."))
		b.WriteString("\n")
	case a.err != nil:
		b.WriteString(errStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.report != nil:
		b.WriteString(a.viewResults())
	}

	b.WriteString("\n")
	help := "enter calculate · esc quit"
	if len(a.recent) > 0 {
		help = "enter calculate · ↑ last code · esc quit"
	}
	b.WriteString(dimStyle.Render(help))
	if len(a.recent) > 1 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("recent: " + strings.Join(a.recent, ", ")))
	}

	content := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if a.width == 0 || a.height == 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a App) viewResults() string {
	t := theme.Active
	r := a.report

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(cardWidth - 4)

	var b strings.Builder
	b.WriteString(nameStyle.Render("Scheme: " + r.SchemeName))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %18s", "Time Period", "CAGR")))
	b.WriteString("\n")
	for _, p := range model.Periods {
		v, ok := r.Value(p)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", p.Label())))
		b.WriteString(t.CAGR(v, ok).Render(fmt.Sprintf("%18s", cli.FormatCAGR(v, ok))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s NAVs · %s to %s · as of %s · %.1fs",
		cli.FormatNumber(int64(a.stats.Observations)),
		cli.FormatDate(a.stats.First),
		cli.FormatDate(a.stats.Last),
		cli.FormatDate(r.AsOf),
		a.took.Seconds())))

	return cardStyle.Render(b.String()) + "\n"
}
