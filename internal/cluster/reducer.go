// Package cluster discovers latent topical groups among file embeddings:
// a spectral reduction to a few dimensions, density clustering with an
// explicit noise bucket, and centroid-based labels.
package cluster

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/mindfulorg/smartfs/internal/vecmath"
)

// Reducer projects high-dimensional embeddings into Components dimensions
// via a Laplacian eigenmap over a cosine kNN graph. The projection preserves
// local neighborhood structure rather than global distances, which is what
// density clustering needs. It is deterministic: the eigendecomposition has
// no random initialization.
type Reducer struct {
	// Components is the output dimensionality K.
	Components int
	// Neighbors is the kNN graph degree.
	Neighbors int
}

// Reduce maps an n×d embedding matrix to n×K.
//
// Minimum-N fallback: when n is too small to build a meaningful neighbor
// graph (n <= Neighbors or n <= K+1), the reduction degrades to the first K
// dimensions of the row-normalized input. Tiny corpora still cluster; they
// just skip the manifold step.
func (r *Reducer) Reduce(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	k := r.Components
	if k > d {
		k = d
	}

	xn := normalizeRows(x)
	if n <= r.Neighbors || n <= k+1 {
		return firstColumns(xn, r.Components)
	}

	// Cosine similarity matrix of the unit rows.
	sim := mat.NewDense(n, n, nil)
	sim.Mul(xn, xn.T())

	w := neighborGraph(sim, r.Neighbors)

	// Normalized Laplacian L = I - D^-1/2 W D^-1/2.
	dinv := make([]float64, n)
	for i := 0; i < n; i++ {
		var deg float64
		for j := 0; j < n; j++ {
			deg += w.At(i, j)
		}
		if deg > 0 {
			dinv[i] = 1 / math.Sqrt(deg)
		}
	}
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		lap.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			lap.SetSym(i, j, -dinv[i]*w.At(i, j)*dinv[j])
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(lap, true); !ok {
		return firstColumns(xn, r.Components)
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back ascending; column 0 is the trivial constant
	// component, so the embedding is columns 1..K.
	out := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			out.Set(i, j, vecs.At(i, j+1))
		}
	}
	return out
}

// neighborGraph keeps each row's top-k positive similarities and
// symmetrizes the result.
func neighborGraph(sim *mat.Dense, k int) *mat.Dense {
	n, _ := sim.Dims()
	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		idx := topKNeighbors(sim.RawRowView(i), i, k)
		for _, j := range idx {
			if s := sim.At(i, j); s > 0 {
				w.Set(i, j, s)
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m := w.At(i, j)
			if w.At(j, i) > m {
				m = w.At(j, i)
			}
			w.Set(i, j, m)
			w.Set(j, i, m)
		}
	}
	return w
}

// topKNeighbors returns the indices of the k largest entries of row,
// excluding self. Ties resolve to the lower index, keeping the graph
// deterministic.
func topKNeighbors(row []float64, self, k int) []int {
	type cand struct {
		idx int
		sim float64
	}
	cands := make([]cand, 0, len(row)-1)
	for j, s := range row {
		if j == self {
			continue
		}
		cands = append(cands, cand{idx: j, sim: s})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].sim != cands[b].sim {
			return cands[a].sim > cands[b].sim
		}
		return cands[a].idx < cands[b].idx
	})
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = cands[i].idx
	}
	return out
}

func normalizeRows(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	out := mat.NewDense(n, d, nil)
	row32 := make([]float32, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			row32[j] = float32(x.At(i, j))
		}
		unit := vecmath.NormalizeL2(row32)
		for j := 0; j < d; j++ {
			out.Set(i, j, float64(unit[j]))
		}
	}
	return out
}

// firstColumns returns the first k columns of x, zero-padded when x is
// narrower than k.
func firstColumns(x *mat.Dense, k int) *mat.Dense {
	n, d := x.Dims()
	out := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k && j < d; j++ {
			out.Set(i, j, x.At(i, j))
		}
	}
	return out
}
