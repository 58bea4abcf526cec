// Package report renders clustering results as machine-readable or
// plain-text reports and as an SVG scatter plot.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mindfulorg/smartfs/internal/cluster"
)

// maxExampleFiles bounds the example list per cluster.
const maxExampleFiles = 3

// ClusterDetail summarizes one cluster (the noise bucket included).
type ClusterDetail struct {
	ClusterID    int      `json:"cluster_id"`
	Label        string   `json:"label"`
	FileCount    int      `json:"file_count"`
	ExampleFiles []string `json:"example_files"`
}

// Report is the long-lived output artifact of a clustering run.
type Report struct {
	Timestamp      string          `json:"timestamp"`
	TotalFiles     int             `json:"total_files"`
	TotalClusters  int             `json:"total_clusters"`
	ClusterDetails []ClusterDetail `json:"cluster_details"`
}

// Build aggregates a clustering result into a Report. Clusters are listed
// by ascending id with the noise bucket last; example files are basenames
// in encounter order.
func Build(c *cluster.Clustering) Report {
	counts := make(map[int]int)
	examples := make(map[int][]string)
	for i, id := range c.Clusters {
		counts[id]++
		if len(examples[id]) < maxExampleFiles {
			examples[id] = append(examples[id], filepath.Base(c.FilePaths[i]))
		}
	}

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		// Noise goes last.
		if (ids[i] == cluster.Noise) != (ids[j] == cluster.Noise) {
			return ids[j] == cluster.Noise
		}
		return ids[i] < ids[j]
	})

	details := make([]ClusterDetail, 0, len(ids))
	for _, id := range ids {
		label, ok := c.ClusterLabels[id]
		if !ok {
			label = "Unlabeled"
		}
		details = append(details, ClusterDetail{
			ClusterID:    id,
			Label:        label,
			FileCount:    counts[id],
			ExampleFiles: examples[id],
		})
	}

	return Report{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		TotalFiles:     len(c.FilePaths),
		TotalClusters:  c.ClustersFound,
		ClusterDetails: details,
	}
}

// Save writes the report to path as "json" or "txt". The content goes to a
// temporary file in the target directory first and is renamed into place,
// so a failed write never leaves a partial report behind.
func (r Report) Save(path, format string) error {
	var content []byte
	switch format {
	case "json":
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		content = append(b, '\n')
	case "txt":
		content = []byte(r.renderText())
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return writeAtomic(path, content)
}

func (r Report) renderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "File Cluster Report - %s\n", r.Timestamp)
	fmt.Fprintf(&b, "Total Files: %d\n", r.TotalFiles)
	fmt.Fprintf(&b, "Total Clusters: %d\n\n", r.TotalClusters)
	for _, d := range r.ClusterDetails {
		fmt.Fprintf(&b, "Cluster %d: %s\n", d.ClusterID, d.Label)
		fmt.Fprintf(&b, "  Files: %d\n", d.FileCount)
		b.WriteString("  Examples:\n")
		for _, e := range d.ExampleFiles {
			fmt.Fprintf(&b, "    - %s\n", e)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// writeAtomic writes content to path via a sibling temp file and rename.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".smartfs-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file in %s: %w", dir, err)
	}
	tmp := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot install %s: %w", path, err)
	}
	return nil
}
