package cmd

import (
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/mindfulorg/smartfs/internal/config"
	"github.com/mindfulorg/smartfs/internal/smartfs"
)

var flagIndexWorkers int

var indexCmd = &cobra.Command{
	Use:   "index <directory>",
	Short: "Index all files in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().IntVar(&flagIndexWorkers, "workers", 0, "Indexing concurrency (0 = auto from hardware)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	unlock, err := acquireDBLock(5 * time.Second)
	if err != nil {
		return err
	}
	defer unlock()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagIndexWorkers > 0 {
		cfg.Indexer.Workers = flagIndexWorkers
	}
	sys, err := smartfs.New(cfg, flagDB, newLogger())
	if err != nil {
		return err
	}
	defer sys.Close()

	sum, err := sys.IndexDirectory(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if sum.FilesFailed > 0 {
		printWarn("", fmt.Sprintf("%d files failed to index", sum.FilesFailed))
	}
	fmt.Printf("Indexed %d files in %.2fs\n", sum.FilesIndexed, sum.Elapsed.Seconds())
	return nil
}

// acquireDBLock serializes mutating runs against one database file. Two
// concurrent index runs would otherwise interleave upserts to the same
// paths across processes.
func acquireDBLock(timeout time.Duration) (func(), error) {
	lockPath := flagDB + ".lock"
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire database lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another indexing run is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
