package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindfulorg/smartfs/internal/hardware"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store contents and configuration health",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	printSection("Store")
	if _, err := os.Stat(flagDB); os.IsNotExist(err) {
		printMiss("", fmt.Sprintf("no database at %s (run 'smartfs index' first)", flagDB))
		return nil
	}

	sys, cfg, err := openSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	total, embedded, err := sys.StoreCounts()
	if err != nil {
		return fmt.Errorf("cannot read store: %w", err)
	}
	printOK("", fmt.Sprintf("database: %s", flagDB))
	printInfo("", fmt.Sprintf("%d files indexed, %d with embeddings", total, embedded))
	if embedded == 0 && total > 0 {
		printWarn("", "no text files indexed; clustering and search have nothing to work with")
	}

	printSection("Embeddings")
	printOK("", fmt.Sprintf("provider: %s", sys.ProviderModelID()))
	printInfo("", fmt.Sprintf("text extensions: %v", cfg.Indexer.TextExtensions))

	printSection("Hardware")
	advice := hardware.Advise()
	printInfo("", fmt.Sprintf("max threads: %d", advice.MaxThreads))
	printInfo("", fmt.Sprintf("max memory fraction: %.1f", advice.MaxMemoryFraction))
	printInfo("", advice.Suggestion)
	return nil
}
