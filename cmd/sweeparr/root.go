package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sweeparr/sweeparr/internal/config"
	"github.com/sweeparr/sweeparr/internal/fsys"
	"github.com/sweeparr/sweeparr/internal/library"
	"github.com/sweeparr/sweeparr/internal/metrics"
	"github.com/sweeparr/sweeparr/internal/plex"
	"github.com/sweeparr/sweeparr/internal/sweep"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "sweeparr",
	Short: "Media library janitor for Plex",
	Long: `sweeparr - media library janitor for Plex

Validates each configured library directory against the item count
reported by the Plex server and empties the trash of every library
that passes. Exit code 0 means every library passed, 1 a partial
failure, 2 that no library passed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a specific process exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("sweeparr {{.Version}}\n")
}

// loadConfig loads the config from --config or the discovery order.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// definitions converts configured libraries into sweep inputs.
func definitions(cfg *config.Config) []library.Definition {
	defs := make([]library.Definition, 0, len(cfg.Libraries))
	for _, lc := range cfg.Libraries {
		defs = append(defs, library.Definition{
			Name:         lc.Name,
			Paths:        lc.AllPaths(),
			MinFiles:     lc.MinFiles,
			MinThreshold: lc.Threshold(),
		})
	}
	return defs
}

// buildRunner wires the sweep runner from config.
func buildRunner(cfg *config.Config, log *slog.Logger) *sweep.Runner {
	client := plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, log)
	checker := fsys.NewChecker(log)

	var sink sweep.MetricsSink
	if cfg.Metrics.File != "" {
		sink = metrics.NewCollector(cfg.Metrics.File, log)
	}

	return sweep.NewRunner(client, checker, sink, log)
}

// stderrLogger keeps diagnostic commands quiet unless something is wrong.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
