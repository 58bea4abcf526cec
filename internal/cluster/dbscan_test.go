package cluster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// blob returns count points tightly packed around (cx, cy).
func blob(cx, cy float64, count int) [][]float64 {
	out := make([][]float64, count)
	for i := range out {
		out[i] = []float64{cx + float64(i)*0.01, cy - float64(i)*0.01}
	}
	return out
}

func TestCluster_NoiseBucket(t *testing.T) {
	points := append(blob(0, 0, 6), blob(10, 10, 6)...)
	// Two isolated points far from both dense regions.
	points = append(points, []float64{50, 50}, []float64{-40, 20})

	e := &Engine{Eps: 0.5, MinSamples: 2, MinClusterSize: 3}
	labels := e.Cluster(points)

	require.Len(t, labels, len(points))
	require.Equal(t, Noise, labels[12], "isolated point must be noise, never a cluster id")
	require.Equal(t, Noise, labels[13])

	// The two blobs form two distinct clusters.
	require.NotEqual(t, Noise, labels[0])
	require.NotEqual(t, Noise, labels[6])
	require.NotEqual(t, labels[0], labels[6])
	for i := 1; i < 6; i++ {
		require.Equal(t, labels[0], labels[i])
		require.Equal(t, labels[6], labels[6+i])
	}
}

func TestCluster_MinClusterSizeDemotesToNoise(t *testing.T) {
	// A pair of close points is a valid DBSCAN cluster but is below the
	// minimum size, so it must end up unclustered.
	points := [][]float64{{0, 0}, {0.1, 0}}
	e := &Engine{Eps: 0.5, MinSamples: 2, MinClusterSize: 5}
	labels := e.Cluster(points)
	require.Equal(t, []int{Noise, Noise}, labels)
}

func TestCluster_IdsAreDense(t *testing.T) {
	// Three blobs; the middle one is too small and gets demoted. The
	// surviving ids must still be 0 and 1.
	points := append(blob(0, 0, 5), []float64{100, 100}, []float64{100.1, 100})
	points = append(points, blob(200, 200, 5)...)

	e := &Engine{Eps: 0.5, MinSamples: 2, MinClusterSize: 3}
	labels := e.Cluster(points)

	seen := make(map[int]bool)
	for _, l := range labels {
		if l != Noise {
			seen[l] = true
		}
	}
	require.Equal(t, map[int]bool{0: true, 1: true}, seen)
	require.Equal(t, 0, labels[0], "ids are numbered in first-encounter order")
}

func TestCluster_AutoEpsStillFlagsOutliers(t *testing.T) {
	points := append(blob(0, 0, 8), []float64{1000, 1000})
	e := &Engine{Eps: 0, MinSamples: 2, MinClusterSize: 3}
	labels := e.Cluster(points)
	require.Equal(t, Noise, labels[8])
	require.NotEqual(t, Noise, labels[0])
}

func TestCluster_Empty(t *testing.T) {
	e := &Engine{Eps: 0.5, MinSamples: 2, MinClusterSize: 2}
	require.Empty(t, e.Cluster(nil))
}
