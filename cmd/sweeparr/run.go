package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sweeparr/sweeparr/internal/logging"
	"github.com/sweeparr/sweeparr/internal/sweep"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate libraries and empty trash",
	Long: `Runs one sweep: fetches section sizes from the Plex server, validates
every configured library directory against them, and empties the trash
of each library that passes.`,
	Args: cobra.NoArgs,
	RunE: runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := buildRunner(cfg, log).Run(ctx, definitions(cfg))
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
	} else {
		printResultHuman(result)
	}

	if code := result.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func printResultHuman(result *sweep.Result) {
	if result.Total == 0 {
		fmt.Println("No libraries configured")
		return
	}

	fmt.Println()
	for _, o := range result.Outcomes {
		mark := "ok"
		note := fmt.Sprintf("%d files / %d items (%.2f%%)", o.FileCount, o.MediaCount, o.Percentage)
		if !o.Success {
			mark = "FAIL"
			note = o.Err
		}
		fmt.Printf("  %-4s %-24s %s\n", mark, o.Name, note)
	}
	fmt.Println()
	fmt.Printf("%d/%d libraries passed\n", result.Successful, result.Total)
}
