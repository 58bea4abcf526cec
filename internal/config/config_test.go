package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Embeddings.Provider)
	require.Equal(t, 256, cfg.Embeddings.Dim)
	require.Equal(t, 5, cfg.Cluster.Components)
	require.Equal(t, 15, cfg.Cluster.Neighbors)
	require.Contains(t, cfg.Indexer.TextExtensions, ".txt")
}

func TestLoad_FileOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartfs.yaml")
	yaml := `
embeddings:
  provider: openai
  model: text-embedding-3-small
cluster:
  min_cluster_size: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.Embeddings.Provider)
	require.Equal(t, "text-embedding-3-small", cfg.Embeddings.Model)
	require.Equal(t, 3, cfg.Cluster.MinClusterSize)
	// Unset fields fall back to defaults.
	require.Equal(t, 2, cfg.Cluster.MinSamples)
	require.Equal(t, 256, cfg.Embeddings.Dim)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embeddings:\n  provider: openai\n"), 0o644))

	t.Setenv("SMARTFS_EMBEDDINGS_PROVIDER", "local")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Embeddings.Provider)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
