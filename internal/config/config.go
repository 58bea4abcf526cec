// Package config loads smartfs configuration from an optional smartfs.yaml,
// with environment-variable overrides for the embeddings provider.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up when no path is given.
const DefaultFile = "smartfs.yaml"

// EmbeddingsConfig selects and parameterizes the embedding provider.
type EmbeddingsConfig struct {
	Provider string `yaml:"provider,omitempty"` // "local" (default) or "openai"
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Dim      int    `yaml:"dim,omitempty"` // local provider vector dimension
}

// IndexerConfig tunes the directory indexing pass.
type IndexerConfig struct {
	// TextExtensions is the set of file extensions treated as text and
	// therefore embedded. Extensions include the leading dot.
	TextExtensions []string `yaml:"text_extensions,omitempty"`
	// Workers bounds indexing concurrency; 0 means ask the hardware advisor.
	Workers int `yaml:"workers,omitempty"`
	// MaxTextBytes caps how large a file may be and still get an embedding.
	MaxTextBytes int64 `yaml:"max_text_bytes,omitempty"`
}

// ClusterConfig tunes dimensionality reduction and density clustering.
type ClusterConfig struct {
	Components     int     `yaml:"components,omitempty"` // reduced dimensionality K
	Neighbors      int     `yaml:"neighbors,omitempty"`  // kNN graph degree
	Eps            float64 `yaml:"eps,omitempty"`        // DBSCAN radius; 0 = auto-estimate
	MinSamples     int     `yaml:"min_samples,omitempty"`
	MinClusterSize int     `yaml:"min_cluster_size,omitempty"`
	Seed           int64   `yaml:"seed,omitempty"` // visualization jitter seed
}

// Config is the in-memory representation of smartfs.yaml.
type Config struct {
	Embeddings EmbeddingsConfig `yaml:"embeddings,omitempty"`
	Indexer    IndexerConfig    `yaml:"indexer,omitempty"`
	Cluster    ClusterConfig    `yaml:"cluster,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Embeddings: EmbeddingsConfig{
			Provider: "local",
			Dim:      256,
		},
		Indexer: IndexerConfig{
			TextExtensions: []string{
				".txt", ".md", ".py", ".js", ".go",
				".html", ".css", ".json", ".yaml", ".yml",
			},
			MaxTextBytes: 10 << 20,
		},
		Cluster: ClusterConfig{
			Components:     5,
			Neighbors:      15,
			MinSamples:     2,
			MinClusterSize: 5,
			Seed:           42,
		},
	}
}

// Load reads the config at path (DefaultFile when empty), fills unset fields
// with defaults, and applies SMARTFS_EMBEDDINGS_* environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("invalid config YAML %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// applyEnv lets environment variables win over the file, mirroring how the
// embeddings provider is usually configured on shared machines.
func (c *Config) applyEnv() {
	if v := os.Getenv("SMARTFS_EMBEDDINGS_PROVIDER"); v != "" {
		c.Embeddings.Provider = v
	}
	if v := os.Getenv("SMARTFS_EMBEDDINGS_MODEL"); v != "" {
		c.Embeddings.Model = v
	}
	if v := os.Getenv("SMARTFS_EMBEDDINGS_API_KEY"); v != "" {
		c.Embeddings.APIKey = v
	}
	if v := os.Getenv("SMARTFS_EMBEDDINGS_BASE_URL"); v != "" {
		c.Embeddings.BaseURL = v
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Embeddings.Provider == "" {
		c.Embeddings.Provider = def.Embeddings.Provider
	}
	if c.Embeddings.Dim <= 0 {
		c.Embeddings.Dim = def.Embeddings.Dim
	}
	if len(c.Indexer.TextExtensions) == 0 {
		c.Indexer.TextExtensions = def.Indexer.TextExtensions
	}
	if c.Indexer.MaxTextBytes <= 0 {
		c.Indexer.MaxTextBytes = def.Indexer.MaxTextBytes
	}
	if c.Cluster.Components <= 0 {
		c.Cluster.Components = def.Cluster.Components
	}
	if c.Cluster.Neighbors <= 0 {
		c.Cluster.Neighbors = def.Cluster.Neighbors
	}
	if c.Cluster.MinSamples <= 0 {
		c.Cluster.MinSamples = def.Cluster.MinSamples
	}
	if c.Cluster.MinClusterSize <= 0 {
		c.Cluster.MinClusterSize = def.Cluster.MinClusterSize
	}
	if c.Cluster.Seed == 0 {
		c.Cluster.Seed = def.Cluster.Seed
	}
}
