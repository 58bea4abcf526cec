// Package smartfs composes the content store, indexer, clustering pipeline,
// and similarity search into the three top-level operations: index a
// directory, cluster the index, and report/search over the result.
package smartfs

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/mindfulorg/smartfs/internal/cluster"
	"github.com/mindfulorg/smartfs/internal/config"
	"github.com/mindfulorg/smartfs/internal/embeddings"
	"github.com/mindfulorg/smartfs/internal/hardware"
	"github.com/mindfulorg/smartfs/internal/indexer"
	"github.com/mindfulorg/smartfs/internal/report"
	"github.com/mindfulorg/smartfs/internal/search"
	"github.com/mindfulorg/smartfs/internal/store"
)

// Status tags expected outcomes that callers branch on. Empty-input and
// sequencing conditions are results, not errors.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ClusterResult is the outcome of ClusterFiles.
type ClusterResult struct {
	Status        Status
	Message       string
	ClustersFound int
	Elapsed       time.Duration
}

// OutputResult is the outcome of GenerateReport and VisualizeClusters.
type OutputResult struct {
	Status     Status
	Message    string
	OutputPath string
}

// SmartFileSystem is the orchestrator. It owns the single most recent
// clustering result; report and visualization calls are rejected until a
// clustering run has happened, and re-indexing invalidates the cached run
// so stale reports cannot be produced against a changed store.
type SmartFileSystem struct {
	cfg      *config.Config
	store    store.Store
	provider embeddings.Provider
	indexer  *indexer.Indexer
	searcher *search.Searcher
	pipeline *cluster.Pipeline
	log      logr.Logger

	mu   sync.Mutex
	last *cluster.Clustering
}

// New opens (or creates) the SQLite store at dbPath and wires the
// components around it.
func New(cfg *config.Config, dbPath string, log logr.Logger) (*SmartFileSystem, error) {
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	s, err := NewWithStore(cfg, st, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return s, nil
}

// NewWithStore wires the components around an existing store. Tests pass a
// MemoryStore here.
func NewWithStore(cfg *config.Config, st store.Store, log logr.Logger) (*SmartFileSystem, error) {
	prov, err := embeddings.New(cfg.Embeddings)
	if err != nil {
		return nil, err
	}

	workers := cfg.Indexer.Workers
	if workers <= 0 {
		advice := hardware.Advise()
		workers = advice.MaxThreads
		log.V(1).Info("hardware advice applied",
			"max_threads", advice.MaxThreads,
			"max_memory_fraction", advice.MaxMemoryFraction,
			"suggestion", advice.Suggestion)
	}

	return &SmartFileSystem{
		cfg:      cfg,
		store:    st,
		provider: prov,
		indexer: indexer.New(st, prov, indexer.Options{
			TextExtensions: cfg.Indexer.TextExtensions,
			Workers:        workers,
			MaxTextBytes:   cfg.Indexer.MaxTextBytes,
			Logger:         log.WithName("indexer"),
		}),
		searcher: search.New(st, prov),
		pipeline: cluster.New(cluster.Options{
			Components:     cfg.Cluster.Components,
			Neighbors:      cfg.Cluster.Neighbors,
			Eps:            cfg.Cluster.Eps,
			MinSamples:     cfg.Cluster.MinSamples,
			MinClusterSize: cfg.Cluster.MinClusterSize,
			Logger:         log.WithName("cluster"),
		}),
		log: log,
	}, nil
}

// Close releases the underlying store.
func (s *SmartFileSystem) Close() error {
	return s.store.Close()
}

// IndexDirectory indexes every file under root. A previously cached
// clustering result is invalidated: its assignment no longer describes the
// store's contents.
func (s *SmartFileSystem) IndexDirectory(ctx context.Context, root string) (indexer.Summary, error) {
	sum, err := s.indexer.IndexDirectory(ctx, root)
	if err != nil {
		return indexer.Summary{}, err
	}
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
	return sum, nil
}

// ClusterFiles recomputes clusters from the store's current snapshot and
// caches the result for subsequent report/visualize calls. A store with no
// embedded files is an expected condition reported via the result status.
func (s *SmartFileSystem) ClusterFiles(ctx context.Context) ClusterResult {
	start := time.Now()

	select {
	case <-ctx.Done():
		return ClusterResult{Status: StatusError, Message: ctx.Err().Error()}
	default:
	}

	items, err := s.store.AllWithEmbedding()
	if err != nil {
		return ClusterResult{Status: StatusError, Message: err.Error()}
	}

	c, err := s.pipeline.Run(items)
	if err != nil {
		// Includes the no-embeddings case; both are reportable, not fatal.
		return ClusterResult{Status: StatusError, Message: err.Error()}
	}

	s.mu.Lock()
	s.last = c
	s.mu.Unlock()

	return ClusterResult{
		Status:        StatusSuccess,
		ClustersFound: c.ClustersFound,
		Elapsed:       time.Since(start),
	}
}

// LastClustering returns the cached clustering result, or nil if none.
func (s *SmartFileSystem) LastClustering() *cluster.Clustering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// GenerateReport writes a cluster report ("json" or "txt") to outputPath.
func (s *SmartFileSystem) GenerateReport(outputPath, format string) OutputResult {
	c := s.LastClustering()
	if c == nil {
		return OutputResult{Status: StatusError, Message: "Must cluster files first"}
	}
	if err := report.Build(c).Save(outputPath, format); err != nil {
		return OutputResult{Status: StatusError, Message: err.Error()}
	}
	return OutputResult{Status: StatusSuccess, OutputPath: outputPath}
}

// VisualizeClusters writes an SVG scatter plot of the cached clustering.
func (s *SmartFileSystem) VisualizeClusters(outputPath string) OutputResult {
	c := s.LastClustering()
	if c == nil {
		return OutputResult{Status: StatusError, Message: "Must cluster files first"}
	}
	if err := report.WriteScatterSVG(outputPath, c, s.cfg.Cluster.Seed); err != nil {
		return OutputResult{Status: StatusError, Message: err.Error()}
	}
	return OutputResult{Status: StatusSuccess, OutputPath: outputPath}
}

// GetSimilarFiles ranks indexed files against the query text.
func (s *SmartFileSystem) GetSimilarFiles(ctx context.Context, query string, topK int) ([]search.Result, error) {
	return s.searcher.Search(ctx, query, topK)
}

// GetFileMetadata returns the stored record for a path, or
// store.ErrNotFound.
func (s *SmartFileSystem) GetFileMetadata(path string) (*store.FileRecord, error) {
	return s.store.Get(path)
}

// StoreCounts reports total and embedded record counts.
func (s *SmartFileSystem) StoreCounts() (total int, embedded int, err error) {
	return s.store.Counts()
}

// ProviderModelID identifies the active embeddings model.
func (s *SmartFileSystem) ProviderModelID() string {
	return s.provider.ModelID()
}
