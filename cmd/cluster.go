package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindfulorg/smartfs/internal/smartfs"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster indexed files by content similarity",
	Args:  cobra.NoArgs,
	RunE:  runCluster,
}

func init() {
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, _ []string) error {
	sys, _, err := openSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	res := sys.ClusterFiles(cmd.Context())
	if res.Status != smartfs.StatusSuccess {
		return errors.New(res.Message)
	}
	fmt.Printf("Found %d clusters in %.2fs\n", res.ClustersFound, res.Elapsed.Seconds())
	return nil
}
