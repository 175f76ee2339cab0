package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundcagr/internal/cli"
	"github.com/theirongolddev/fundcagr/internal/model"
	"github.com/theirongolddev/fundcagr/internal/pipeline"
	"github.com/theirongolddev/fundcagr/internal/store"
)

var (
	flagAsOf    string
	flagFormat  string
	flagStrict  bool
	flagArchive string
)

var reportCmd = &cobra.Command{
	Use:   "report [scheme-code]",
	Short: "Show 1M, 1Y, 3Y, 5Y and lifetime CAGR for a scheme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	addReportFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func addReportFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagAsOf, "as-of", "", "Reference date YYYY-MM-DD (default today)")
	c.Flags().StringVarP(&flagFormat, "format", "f", "table", "Output format: table, json, markdown")
	c.Flags().BoolVar(&flagStrict, "strict", false, "Fail when any window has insufficient data")
	c.Flags().StringVar(&flagArchive, "archive", "", "Read NAV history from a sqlite archive written by `navall --format sqlite`")
}

func runReport(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	code, err := resolveScheme(args, cfg)
	if err != nil {
		return err
	}
	now, err := asOf(flagAsOf)
	if err != nil {
		return err
	}
	format := strings.ToLower(flagFormat)
	switch format {
	case "table", "json", "markdown", "md":
	default:
		return invalidFlag("format", flagFormat, "table", "json", "markdown")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		report model.Report
		stats  pipeline.LoadStats
	)
	if flagArchive != "" {
		report, stats, err = reportFromArchive(code, now)
	} else {
		client := newMFAPIClient(cfg)
		progress("  Fetching scheme %s from %s\n", code, client.BaseURL())
		report, stats, err = pipeline.Load(ctx, client, code, now)
	}
	if err != nil {
		return err
	}
	if stats.Dropped > 0 {
		newLogger(cfg).WithField("scheme", code).Debugf("dropped %d malformed NAV rows", stats.Dropped)
	}

	if err := printReport(report, stats, format); err != nil {
		return err
	}

	if undef := report.Undefined(); flagStrict && len(undef) > 0 {
		labels := make([]string, len(undef))
		for i, p := range undef {
			labels[i] = p.Label()
		}
		return fmt.Errorf("%s: %w", strings.Join(labels, ", "), model.ErrUndefined)
	}
	return nil
}

func reportFromArchive(code string, now time.Time) (model.Report, pipeline.LoadStats, error) {
	if _, err := os.Stat(flagArchive); err != nil {
		return model.Report{}, pipeline.LoadStats{}, fmt.Errorf("archive %s: %v: %w", flagArchive, err, model.ErrInvalidInput)
	}
	a, err := store.Open(flagArchive)
	if err != nil {
		return model.Report{}, pipeline.LoadStats{}, err
	}
	defer a.Close()

	progress("  Reading scheme %s from %s\n", code, flagArchive)
	records, err := a.LoadScheme(code)
	if err != nil {
		return model.Report{}, pipeline.LoadStats{}, err
	}
	return pipeline.ReportFromRecords(code, records, now)
}

func printReport(r model.Report, stats pipeline.LoadStats, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "markdown", "md":
		md, err := cli.ReportMarkdown(r)
		if err != nil {
			return err
		}
		out, err := cli.RenderMarkdown(md, "", 80)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		fmt.Println()
		fmt.Print(cli.RenderReport(r, cli.Coverage{
			Observations: stats.Observations,
			Dropped:      stats.Dropped,
			First:        stats.First,
			Last:         stats.Last,
		}))
		fmt.Println()
	}
	return nil
}

// asOf parses the --as-of flag; empty means today.
func asOf(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return model.Truncate(time.Now()), nil
	}
	t, err := model.ParseDate("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidFlag("as-of", s)
	}
	return t, nil
}
