package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundcagr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if scheme := config.DefaultScheme(cfg); scheme != "" {
		fmt.Printf("    Default scheme: %s%s\n", scheme, envNote(config.EnvScheme))
	} else {
		fmt.Println("    Default scheme: not set")
	}
	fmt.Println()

	fmt.Println("  [mfapi]")
	fmt.Printf("    Base URL: %s%s\n", config.MFAPIBaseURL(cfg), envNote(config.EnvMFAPIURL))
	fmt.Printf("    Timeout:  %ds\n", cfg.MFAPI.TimeoutSec)
	fmt.Println()

	fmt.Println("  [AMFI]")
	fmt.Printf("    NAVAll URL: %s\n", cfg.AMFI.NAVAllURL)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s%s\n", config.ServerAddr(cfg), envNote(config.EnvAddr))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `fundcagr setup` to reconfigure.")
	return nil
}

func envNote(name string) string {
	if envSet(name) {
		return " (from $" + name + ")"
	}
	return ""
}
