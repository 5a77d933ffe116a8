package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sweeparr/sweeparr/internal/config"
	"github.com/sweeparr/sweeparr/internal/fsys"
	"github.com/sweeparr/sweeparr/internal/library"
	"github.com/sweeparr/sweeparr/internal/plex"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration, directories and server connectivity",
	Long: `Dry run: validates the config file, checks every library directory and
counts its files, then verifies the Plex connection and that every
configured library matches a section on the server. Never empties trash.`,
	Args: cobra.NoArgs,
	RunE: runCheckCmd,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Checking %s...\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			printConfigErrors(cfgErr)
			return fmt.Errorf("configuration invalid")
		}
		return err
	}
	fmt.Println("Config: ok")

	log := stderrLogger()
	problems := 0

	checker := fsys.NewChecker(log)
	fmt.Println("\nLibraries:")
	if len(cfg.Libraries) == 0 {
		fmt.Println("  none configured")
	}
	for _, def := range definitions(cfg) {
		for _, p := range def.Paths {
			if err := checker.Check(p); err != nil {
				fmt.Printf("  FAIL %-20s %v\n", def.Name, err)
				problems++
				continue
			}
			count, err := checker.Count(p)
			if err != nil {
				fmt.Printf("  FAIL %-20s %v\n", def.Name, err)
				problems++
				continue
			}
			fmt.Printf("  ok   %-20s %s (%d files)\n", def.Name, p, count)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, log)
	fmt.Println("\nServer:")
	identity, err := client.GetIdentity(ctx)
	if err != nil {
		fmt.Printf("  FAIL %v\n", err)
		problems++
	} else {
		fmt.Printf("  ok   Plex %s (%s)\n", identity.Version, cfg.Plex.URL)
		problems += checkSections(ctx, client, cfg)
	}

	fmt.Println()
	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	fmt.Println("No problems detected.")
	return nil
}

// checkSections verifies every configured library has a section on the
// server and returns the number of problems found.
func checkSections(ctx context.Context, client *plex.Client, cfg *config.Config) int {
	sections, err := client.Sections(ctx)
	if err != nil {
		fmt.Printf("  FAIL listing sections: %v\n", err)
		return 1
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}

	problems := 0
	for _, lc := range cfg.Libraries {
		if _, ok := sections[lc.Name]; ok {
			fmt.Printf("  ok   section %q found\n", lc.Name)
			continue
		}
		problems++
		if suggestion, ok := library.ClosestName(lc.Name, names); ok {
			fmt.Printf("  FAIL section %q not found (did you mean %q?)\n", lc.Name, suggestion)
		} else {
			fmt.Printf("  FAIL section %q not found\n", lc.Name)
		}
	}
	return problems
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("\nMissing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
	}
	if len(e.Errors) > 0 {
		fmt.Println("\nValidation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
	}
	fmt.Println()
}
