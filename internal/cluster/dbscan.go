package cluster

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Noise is the sentinel cluster id for points not density-connected to any
// cluster. Such points are reported as unclustered, never forced into a
// nearest group.
const Noise = -1

// Engine partitions reduced vectors with DBSCAN and demotes undersized
// clusters to noise, reproducing the minimum-cluster-size behavior of
// hierarchical density clustering without fixing the cluster count upfront.
type Engine struct {
	// Eps is the density radius; <= 0 auto-estimates from the data.
	Eps float64
	// MinSamples is the neighborhood size that makes a point a core point.
	MinSamples int
	// MinClusterSize demotes smaller clusters to noise.
	MinClusterSize int
}

// Cluster labels each row of points with a cluster id, or Noise. Ids are
// dense, starting at 0, numbered in first-encounter order.
func (e *Engine) Cluster(points [][]float64) []int {
	n := len(points)
	labels := make([]int, n)
	if n == 0 {
		return labels
	}

	eps := e.Eps
	if eps <= 0 {
		eps = autoEps(points, e.MinSamples)
	}
	minPts := e.MinSamples
	if minPts < 1 {
		minPts = 1
	}

	labels = dbscan(points, eps, minPts)
	return renumber(demoteSmall(labels, e.MinClusterSize))
}

// dbscan is the classic flood-fill formulation over a precomputed
// neighborhood query. O(n²) distance checks; the corpus fits in memory by
// construction (clustering runs over one full store snapshot).
func dbscan(points [][]float64, eps float64, minPts int) []int {
	const unvisited = -2
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}
		neighbors := regionQuery(points, i, eps)
		if len(neighbors) < minPts {
			labels[i] = Noise
			continue
		}
		labels[i] = next
		// Expand the cluster breadth-first.
		queue := append([]int(nil), neighbors...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == Noise {
				labels[j] = next // border point
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = next
			jn := regionQuery(points, j, eps)
			if len(jn) >= minPts {
				queue = append(queue, jn...)
			}
		}
		next++
	}
	return labels
}

// regionQuery returns all indices within eps of point i, including i itself.
func regionQuery(points [][]float64, i int, eps float64) []int {
	var out []int
	for j := range points {
		if floats.Distance(points[i], points[j], 2) <= eps {
			out = append(out, j)
		}
	}
	return out
}

// autoEps estimates a density radius as 1.5× the median distance to each
// point's minPts-th nearest neighbor. Isolated points sit far above the
// median, so they still land in the noise bucket.
func autoEps(points [][]float64, minPts int) float64 {
	n := len(points)
	if minPts < 1 {
		minPts = 1
	}
	kth := make([]float64, 0, n)
	dists := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		dists = dists[:0]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dists = append(dists, floats.Distance(points[i], points[j], 2))
		}
		if len(dists) == 0 {
			continue
		}
		sort.Float64s(dists)
		k := minPts - 1
		if k >= len(dists) {
			k = len(dists) - 1
		}
		kth = append(kth, dists[k])
	}
	if len(kth) == 0 {
		return 1
	}
	sort.Float64s(kth)
	med := kth[len(kth)/2]
	if med == 0 {
		// Coincident points; any positive radius groups them.
		return 1e-9
	}
	return 1.5 * med
}

// demoteSmall relabels clusters below minSize as noise.
func demoteSmall(labels []int, minSize int) []int {
	if minSize <= 1 {
		return labels
	}
	counts := make(map[int]int)
	for _, l := range labels {
		if l != Noise {
			counts[l]++
		}
	}
	for i, l := range labels {
		if l != Noise && counts[l] < minSize {
			labels[i] = Noise
		}
	}
	return labels
}

// renumber makes surviving cluster ids dense in first-encounter order.
func renumber(labels []int) []int {
	remap := make(map[int]int)
	for i, l := range labels {
		if l == Noise {
			continue
		}
		id, ok := remap[l]
		if !ok {
			id = len(remap)
			remap[l] = id
		}
		labels[i] = id
	}
	return labels
}
