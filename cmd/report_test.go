package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestReportCommand_ClustersThenWritesReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"),
		[]byte("notes about storage engines"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"),
		[]byte("more notes about storage engines"), 0o644))

	db := filepath.Join(t.TempDir(), "file_index.db")
	out := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, runCLI(t, "index", dir, "--db", db))

	// report runs the clustering stage itself; no prior cluster invocation.
	require.NoError(t, runCLI(t, "report", "--db", db, "--output", out, "--format", "json"))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var parsed struct {
		TotalFiles    int `json:"total_files"`
		TotalClusters int `json:"total_clusters"`
	}
	require.NoError(t, json.Unmarshal(b, &parsed))
	require.Equal(t, 2, parsed.TotalFiles)
	require.Equal(t, 0, parsed.TotalClusters, "two files stay below the minimum cluster size")
}

func TestReportCommand_RejectsUnknownFormat(t *testing.T) {
	err := runCLI(t, "report",
		"--db", filepath.Join(t.TempDir(), "file_index.db"),
		"--output", filepath.Join(t.TempDir(), "report.xml"),
		"--format", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported format")
}
