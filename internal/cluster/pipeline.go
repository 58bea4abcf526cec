package cluster

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"

	"github.com/mindfulorg/smartfs/internal/store"
)

// ErrNoEmbeddings is returned by Run when the store snapshot holds no
// embedded files. Callers report it as an expected empty-input condition.
var ErrNoEmbeddings = errors.New("no embeddings found")

// Options configures a Pipeline.
type Options struct {
	Components     int
	Neighbors      int
	Eps            float64
	MinSamples     int
	MinClusterSize int
	Logger         logr.Logger
}

// Clustering is the result of one pipeline run. Clusters[i] is the cluster
// id of FilePaths[i]; Reduced[i] is its low-dimensional projection.
type Clustering struct {
	FilePaths     []string
	Clusters      []int
	ClusterLabels map[int]string
	Reduced       [][]float64
	ClustersFound int
}

// Pipeline runs reduce → cluster → label over one store snapshot.
type Pipeline struct {
	reducer Reducer
	engine  Engine
	log     logr.Logger
}

// New returns a Pipeline with the given tuning.
func New(opts Options) *Pipeline {
	return &Pipeline{
		reducer: Reducer{Components: opts.Components, Neighbors: opts.Neighbors},
		engine: Engine{
			Eps:            opts.Eps,
			MinSamples:     opts.MinSamples,
			MinClusterSize: opts.MinClusterSize,
		},
		log: opts.Logger,
	}
}

// Run clusters the given (path, embedding) snapshot. The input ordering is
// preserved: row i of every output corresponds to items[i].
func (p *Pipeline) Run(items []store.PathEmbedding) (*Clustering, error) {
	if len(items) == 0 {
		return nil, ErrNoEmbeddings
	}

	dim := len(items[0].Embedding)
	paths := make([]string, len(items))
	full := make([][]float64, len(items))
	x := mat.NewDense(len(items), dim, nil)
	for i, it := range items {
		if len(it.Embedding) != dim {
			return nil, fmt.Errorf("embedding dim mismatch for %s: got %d want %d",
				it.Path, len(it.Embedding), dim)
		}
		paths[i] = it.Path
		row := make([]float64, dim)
		for j, v := range it.Embedding {
			row[j] = float64(v)
			x.Set(i, j, float64(v))
		}
		full[i] = row
	}

	reduced := p.reducer.Reduce(x)
	rows := make([][]float64, len(items))
	for i := range rows {
		rows[i] = append([]float64(nil), reduced.RawRowView(i)...)
	}

	labels := p.engine.Cluster(rows)
	names := labelClusters(paths, full, labels)

	found := 0
	for id := range names {
		if id != Noise {
			found++
		}
	}
	p.log.V(1).Info("clustering complete",
		"files", len(items), "clusters", found)

	return &Clustering{
		FilePaths:     paths,
		Clusters:      labels,
		ClusterLabels: names,
		Reduced:       rows,
		ClustersFound: found,
	}, nil
}
