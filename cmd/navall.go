package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundcagr/internal/amfi"
	"github.com/theirongolddev/fundcagr/internal/model"
	"github.com/theirongolddev/fundcagr/internal/sheet"
	"github.com/theirongolddev/fundcagr/internal/store"
)

const defaultArchivePath = "navall.db"

var (
	flagNAVOut    string
	flagNAVSheet  string
	flagNAVFormat string
	flagNAVURL    string
	flagNAVScheme string
	flagNAVInput  string
)

var navallCmd = &cobra.Command{
	Use:   "navall",
	Short: "Export the AMFI daily NAV dump to xlsx or sqlite",
	Long: "Download NAVAll.txt from AMFI (or read a local copy), parse every scheme row\n" +
		"and write it to a spreadsheet or a sqlite archive.",
	Args: cobra.NoArgs,
	RunE: runNAVAll,
}

func init() {
	navallCmd.Flags().StringVarP(&flagNAVOut, "out", "o", "", "Output file (default "+sheet.DefaultPath+" or "+defaultArchivePath+")")
	navallCmd.Flags().StringVar(&flagNAVSheet, "sheet", sheet.DefaultSheet, "Worksheet name for xlsx output")
	navallCmd.Flags().StringVarP(&flagNAVFormat, "format", "f", "xlsx", "Output format: xlsx, sqlite")
	navallCmd.Flags().StringVar(&flagNAVURL, "url", "", "Dump URL (default from config)")
	navallCmd.Flags().StringVar(&flagNAVScheme, "scheme", "", "Only keep rows for this scheme code")
	navallCmd.Flags().StringVarP(&flagNAVInput, "input", "i", "", "Parse a local NAVAll.txt instead of downloading")
	rootCmd.AddCommand(navallCmd)
}

func runNAVAll(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	format := strings.ToLower(flagNAVFormat)
	out := flagNAVOut
	switch format {
	case "xlsx":
		if out == "" {
			out = sheet.DefaultPath
		}
	case "sqlite", "db":
		if out == "" {
			out = defaultArchivePath
		}
	default:
		return invalidFlag("format", flagNAVFormat, "xlsx", "sqlite")
	}

	start := time.Now()
	result, err := readNAVAll(cfg.AMFI.NAVAllURL)
	if err != nil {
		return err
	}
	progress("  Parsed %s records (%d malformed lines skipped)\n",
		formatNumber(int64(len(result.Records))), result.Skipped)

	records := result.Records
	if flagNAVScheme != "" {
		records = amfi.Filter(records, flagNAVScheme)
		if len(records) == 0 {
			return fmt.Errorf("scheme %s not in dump: %w", flagNAVScheme, model.ErrNotFound)
		}
		progress("  Kept %d records for scheme %s\n", len(records), flagNAVScheme)
	}

	switch format {
	case "xlsx":
		if err := sheet.WriteXLSX(out, flagNAVSheet, records); err != nil {
			return err
		}
	default:
		a, err := store.Open(out)
		if err != nil {
			return err
		}
		defer a.Close()
		if _, err := a.SaveRecords(records); err != nil {
			return err
		}
		if total, err := a.Count(); err == nil {
			progress("  Archive now holds %s rows\n", formatNumber(int64(total)))
		}
	}

	fmt.Printf("  Wrote %s records to %s (%.1fs)\n",
		formatNumber(int64(len(records))), out, time.Since(start).Seconds())
	return nil
}

func readNAVAll(configURL string) (amfi.ParseResult, error) {
	if flagNAVInput != "" {
		f, err := os.Open(flagNAVInput)
		if err != nil {
			return amfi.ParseResult{}, fmt.Errorf("opening %s: %v: %w", flagNAVInput, err, model.ErrInvalidInput)
		}
		defer f.Close()
		progress("  Parsing %s\n", flagNAVInput)
		return amfi.Parse(f)
	}

	url := configURL
	if flagNAVURL != "" {
		url = flagNAVURL
	}
	timeout := amfi.DefaultTimeout
	if flagTimeout > 0 {
		timeout = flagTimeout
	}
	client := amfi.NewClient(url, timeout)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	progress("  Downloading %s\n", client.URL())
	return client.Download(ctx)
}
