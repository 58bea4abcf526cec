package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mindfulorg/smartfs/internal/store"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Show the stored record for an indexed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	sys, _, err := openSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	rec, err := sys.GetFileMetadata(args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("not indexed: %s", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Printf("Path:          %s\n", rec.Path)
	fmt.Printf("Content Hash:  %s\n", rec.ContentHash)
	fmt.Printf("Last Modified: %s\n", rec.LastModified.Format("2006-01-02 15:04:05"))
	fmt.Printf("Size:          %d bytes\n", rec.Size)
	fmt.Printf("File Type:     %s\n", emptyAsNA(rec.FileType))
	if rec.Embedding != nil {
		fmt.Printf("Embedding:     %d dimensions\n", len(rec.Embedding))
	} else {
		fmt.Println("Embedding:     none (not a text file)")
	}
	if len(rec.Metadata) > 0 {
		fmt.Println("Metadata:")
		keys := make([]string, 0, len(rec.Metadata))
		for k := range rec.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, rec.Metadata[k])
		}
	}
	return nil
}
