package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindfulorg/smartfs/internal/smartfs"
)

var flagVisualizeOutput string

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render an SVG scatter plot of file clusters",
	Args:  cobra.NoArgs,
	RunE:  runVisualize,
}

func init() {
	visualizeCmd.Flags().StringVar(&flagVisualizeOutput, "output", "cluster_visualization.svg", "Output SVG path")
	rootCmd.AddCommand(visualizeCmd)
}

func runVisualize(cmd *cobra.Command, _ []string) error {
	sys, _, err := openSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	if res := sys.ClusterFiles(cmd.Context()); res.Status != smartfs.StatusSuccess {
		return errors.New(res.Message)
	}
	if res := sys.VisualizeClusters(flagVisualizeOutput); res.Status != smartfs.StatusSuccess {
		return errors.New(res.Message)
	}
	fmt.Printf("Visualization saved to %s\n", flagVisualizeOutput)
	return nil
}
