package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagSearchTopK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for files similar to a query text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchTopK, "top-k", 5, "Number of results to return")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	sys, _, err := openSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	query := strings.Join(args, " ")
	results, err := sys.GetSimilarFiles(cmd.Context(), query, flagSearchTopK)
	if err != nil {
		return err
	}

	fmt.Println("Similar files:")
	for i, r := range results {
		fmt.Printf("%d. %s (similarity: %.3f)\n", i+1, r.Path, r.Similarity)
	}
	return nil
}
