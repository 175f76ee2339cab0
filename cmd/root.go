// Package cmd implements the fundcagr CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundcagr/internal/cli"
	"github.com/theirongolddev/fundcagr/internal/config"
	"github.com/theirongolddev/fundcagr/internal/logging"
	"github.com/theirongolddev/fundcagr/internal/mfapi"
	"github.com/theirongolddev/fundcagr/internal/model"
)

var (
	flagQuiet    bool
	flagLogLevel string
	flagTimeout  time.Duration
	flagAPIURL   string
)

var rootCmd = &cobra.Command{
	Use:           "fundcagr [scheme-code]",
	Short:         "Mutual fund CAGR calculator",
	Long:          "Compute trailing CAGR for Indian mutual fund schemes from their NAV history.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runReport,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
// The process exit code reflects the class of the failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(model.Classify(err).ExitCode())
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "mfapi.in base URL override")
	addReportFlags(rootCmd)
}

// loadConfig reads the config file, warning once and using defaults on error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		progress("  Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func newLogger(cfg config.Config) *logrus.Logger {
	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	return logging.New(level, os.Stderr)
}

func mfapiTimeout(cfg config.Config) time.Duration {
	if flagTimeout > 0 {
		return flagTimeout
	}
	return time.Duration(cfg.MFAPI.TimeoutSec) * time.Second
}

func newMFAPIClient(cfg config.Config) *mfapi.Client {
	base := config.MFAPIBaseURL(cfg)
	if flagAPIURL != "" {
		base = flagAPIURL
	}
	return mfapi.NewClient(base, mfapiTimeout(cfg))
}

// resolveScheme picks the scheme code from args, falling back to config.
func resolveScheme(args []string, cfg config.Config) (string, error) {
	code := ""
	if len(args) > 0 {
		code = strings.TrimSpace(args[0])
	}
	if code == "" {
		code = config.DefaultScheme(cfg)
	}
	if code == "" {
		return "", fmt.Errorf("no scheme code given and general.default_scheme is unset: %w", model.ErrInvalidInput)
	}
	return code, nil
}

// progress writes status lines to stderr unless --quiet.
func progress(format string, a ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, a...)
}

func invalidFlag(name, value string, allowed ...string) error {
	msg := fmt.Sprintf("--%s %q", name, value)
	if len(allowed) > 0 {
		msg += fmt.Sprintf(" (want one of %s)", strings.Join(allowed, ", "))
	}
	return fmt.Errorf("%s: %w", msg, model.ErrInvalidInput)
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}

func envSet(name string) bool {
	return strings.TrimSpace(os.Getenv(name)) != ""
}
