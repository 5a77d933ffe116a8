package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sweeparr/sweeparr/internal/metrics"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show recorded run metrics",
	Long:  "Prints the lifetime summary and the most recent run from the metrics file.",
	Args:  cobra.NoArgs,
	RunE:  runMetricsCmd,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetricsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Metrics.File == "" {
		return fmt.Errorf("metrics are not configured, set metrics.file in the config")
	}

	f, err := metrics.Load(cfg.Metrics.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("No runs recorded yet")
			return nil
		}
		return err
	}

	if jsonOutput {
		printJSON(f)
		return nil
	}

	printMetricsHuman(f)
	return nil
}

func printMetricsHuman(f *metrics.File) {
	s := f.Summary
	fmt.Printf("Runs:      %d total (%d ok, %d partial, %d failed)\n",
		s.TotalRuns, s.SuccessfulRuns, s.PartialRuns, s.FailedRuns)
	fmt.Printf("Libraries: %d processed (%d ok, %d failed)\n",
		s.TotalLibrariesProcessed, s.TotalLibrariesSucceeded, s.TotalLibrariesFailed)
	fmt.Printf("Updated:   %s\n", f.LastUpdated)

	latest := f.Latest()
	if latest == nil {
		return
	}

	fmt.Println("\nLast run:")
	fmt.Printf("  Started:  %s\n", latest.StartTime)
	fmt.Printf("  Duration: %.2fs\n", latest.DurationSeconds)
	fmt.Printf("  Exit:     %d\n", latest.ExitCode)

	for _, d := range latest.LibraryDetails {
		mark := "ok"
		note := fmt.Sprintf("%d files / %d items (%.2f%%)", d.FileCount, d.MediaCount, d.ThresholdPercentage)
		if !d.Success {
			mark = "FAIL"
			if d.ErrorMessage != nil {
				note = *d.ErrorMessage
			}
		}
		fmt.Printf("  %-4s %-24s %s\n", mark, d.Name, note)
	}
}
