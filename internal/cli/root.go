// Package cli implements the tempo command-line interface using Cobra.
package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/tempo"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Frame scheduling and property animation",
	Long: `tempo drives timers, frame callbacks, budgeted job strands and property
animations from a single event loop.

Use run for a headless trace, strand for a budget benchmark, and tui or
window to watch easing curves play side by side.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

var (
	configPath  string
	metricsAddr string
	debug       bool

	cfg           Config
	metricsServer *http.Server
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log loop turns and scheduler diagnostics to stderr")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		c.Metrics.Addr = metricsAddr
	}
	cfg = c
	tempo.SetDebugMode(debug)

	if cfg.Metrics.Addr != "" {
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           newRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("[tempo] metrics listening on %s", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("[tempo] metrics server error: %v", err)
			}
		}()
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if metricsServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return metricsServer.Shutdown(ctx)
}
