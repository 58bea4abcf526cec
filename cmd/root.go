// Package cmd implements the smartfs CLI.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/mindfulorg/smartfs/internal/config"
	"github.com/mindfulorg/smartfs/internal/smartfs"
)

var (
	flagDB      string
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "smartfs",
	Short:         "Smart File System — index, cluster, and search files by content",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // Execute prints the error once
	Long: `smartfs indexes a directory into content embeddings, discovers topical
clusters among the indexed files, and serves similarity search and cluster
reports over the result. State lives in a single SQLite file per --db path.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "file_index.db", "Database file path")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: smartfs.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Print debug logging to stderr")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the stderr logger library packages receive.
func newLogger() logr.Logger {
	if flagVerbose {
		stdr.SetVerbosity(1)
	}
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

// openSystem loads config and opens the orchestrator over the --db store.
// Callers must Close the returned system.
func openSystem() (*smartfs.SmartFileSystem, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	sys, err := smartfs.New(cfg, flagDB, newLogger())
	if err != nil {
		return nil, nil, err
	}
	return sys, cfg, nil
}
