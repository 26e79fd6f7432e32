package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/incr/internal/config"
	"github.com/vango-dev/incr/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "incr",
		Short: "Retained-mode incremental rendering",
		Long: `incr renders templates into a retained tree and keeps it in sync
with incremental update passes.

Commands render the built-in demos to HTML, serve them live with a
browser preview, and publish snapshots to disk or S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default incr.json or incr.yaml in the working directory)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity")

	root.AddCommand(
		renderCmd(),
		serveCmd(),
		publishCmd(),
		demosCmd(),
		versionCmd(),
	)
	return root
}

// loadConfig loads --config, or the working directory's configuration, or
// the defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(wd)
}

// newLogger returns the CLI logger. Engine debug logs need --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
