package cluster

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
)

// NoiseLabel is the fixed display label for the unclustered bucket.
const NoiseLabel = "Uncategorized"

// labelClusters names each cluster after its most central member: the file
// whose full-dimensional embedding is closest (Euclidean) to the cluster
// centroid. Ties resolve to the first-encountered index, so labels are
// deterministic for a given assignment.
func labelClusters(paths []string, embeddings [][]float64, labels []int) map[int]string {
	members := make(map[int][]int)
	order := make([]int, 0, 8)
	for i, l := range labels {
		if _, seen := members[l]; !seen {
			order = append(order, l)
		}
		members[l] = append(members[l], i)
	}

	out := make(map[int]string, len(members))
	for _, id := range order {
		if id == Noise {
			out[id] = NoiseLabel
			continue
		}
		idx := members[id]
		centroid := centroidOf(embeddings, idx)

		best := idx[0]
		bestDist := floats.Distance(embeddings[best], centroid, 2)
		for _, i := range idx[1:] {
			if d := floats.Distance(embeddings[i], centroid, 2); d < bestDist {
				best = i
				bestDist = d
			}
		}
		out[id] = fmt.Sprintf("Cluster %d: %s", id, filepath.Base(paths[best]))
	}
	return out
}

func centroidOf(embeddings [][]float64, idx []int) []float64 {
	dim := len(embeddings[idx[0]])
	centroid := make([]float64, dim)
	for _, i := range idx {
		floats.Add(centroid, embeddings[i])
	}
	floats.Scale(1/float64(len(idx)), centroid)
	return centroid
}
