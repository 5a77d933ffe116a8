package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sweeparr/sweeparr/internal/plex"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List library sections on the Plex server",
	Args:  cobra.NoArgs,
	RunE:  runSectionsCmd,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

type sectionInfo struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Size  int    `json:"size"`
}

func runSectionsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, stderrLogger())
	sections, err := client.ListSections(ctx)
	if err != nil {
		return fmt.Errorf("listing sections: %w", err)
	}

	infos := make([]sectionInfo, 0, len(sections))
	for _, s := range sections {
		size, err := client.SectionSize(ctx, s.Key)
		if err != nil {
			return fmt.Errorf("sizing section %q: %w", s.Title, err)
		}
		infos = append(infos, sectionInfo{Key: s.Key, Title: s.Title, Type: s.Type, Size: size})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Title < infos[j].Title })

	if jsonOutput {
		printJSON(infos)
		return nil
	}

	printSectionsHuman(infos)
	return nil
}

func printSectionsHuman(infos []sectionInfo) {
	if len(infos) == 0 {
		fmt.Println("No sections found")
		return
	}

	fmt.Printf("Sections (%d):\n\n", len(infos))
	fmt.Printf("  %-4s │ %-24s │ %-8s │ %s\n", "KEY", "TITLE", "TYPE", "ITEMS")
	fmt.Println("──────┼──────────────────────────┼──────────┼────────")

	for _, s := range infos {
		title := s.Title
		if len(title) > 24 {
			title = title[:21] + "..."
		}
		fmt.Printf("  %-4s │ %-24s │ %-8s │ %d\n", s.Key, title, s.Type, s.Size)
	}
}
