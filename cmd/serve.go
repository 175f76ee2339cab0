package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundcagr/internal/config"
	"github.com/theirongolddev/fundcagr/internal/model"
	"github.com/theirongolddev/fundcagr/internal/server"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web CAGR calculator",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running calculator's health endpoint",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config, "+config.DefaultAddr+")")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr(cfg config.Config) string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return config.ServerAddr(cfg)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	addr := serveAddr(cfg)
	client := newMFAPIClient(cfg)

	svc := server.New(server.Config{
		Addr:   addr,
		Logger: newLogger(cfg),
	}, client)

	fmt.Printf("  fundcagr calculator listening on http://%s\n", addr)
	fmt.Printf("  NAV data from %s\n", client.BaseURL())
	fmt.Printf("  Stop with Ctrl+C\n")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr(loadConfig())
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/healthz") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  Status: unreachable\n")
		return fmt.Errorf("probing %s: %v: %w", addr, err, model.ErrNetwork)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  Status: HTTP %d\n", resp.StatusCode)
		return fmt.Errorf("health check returned %d: %w", resp.StatusCode, model.ErrUpstream)
	}

	fmt.Printf("  Status: %s\n", strings.TrimSpace(string(body)))
	if id := resp.Header.Get("X-Request-ID"); id != "" {
		fmt.Printf("  Request ID: %s\n", id)
	}
	return nil
}
