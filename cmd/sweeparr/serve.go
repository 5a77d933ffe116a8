package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeparr/sweeparr/internal/logging"
	"github.com/sweeparr/sweeparr/internal/server"
)

var serveInterval time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run sweeps on a schedule",
	Long: `Starts the scheduler: one sweep immediately, then one per interval,
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServeCmd,
}

func init() {
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 0, "Override the configured sweep interval")
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}

	interval := serveInterval
	if interval == 0 {
		interval, err = cfg.Schedule.IntervalDuration()
		if err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("sweeparr starting",
		"version", version,
		"interval", interval.String(),
		"libraries", len(cfg.Libraries))

	runner := server.NewRunner(buildRunner(cfg, log), server.Config{
		Interval:  interval,
		Libraries: definitions(cfg),
	}, log)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
