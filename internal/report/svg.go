package report

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mindfulorg/smartfs/internal/cluster"
)

const (
	svgWidth  = 800
	svgHeight = 600
	svgMargin = 40
)

// clusterPalette cycles across cluster ids; the noise bucket renders gray.
var clusterPalette = []string{
	"#8b5cf6", "#06b6d4", "#22c55e", "#f59e0b", "#ef4444",
	"#14b8a6", "#eab308", "#3b82f6", "#d946ef", "#f97316",
}

const noiseColor = "#9ca3af"

// WriteScatterSVG renders the first two reduced dimensions as a scatter
// plot, one circle per file colored by cluster. The seed drives a small
// deterministic jitter so coincident points stay visible.
func WriteScatterSVG(path string, c *cluster.Clustering, seed int64) error {
	if len(c.Reduced) == 0 || len(c.Reduced[0]) < 2 {
		return fmt.Errorf("clustering result has no 2D projection to draw")
	}

	minX, maxX := c.Reduced[0][0], c.Reduced[0][0]
	minY, maxY := c.Reduced[0][1], c.Reduced[0][1]
	for _, p := range c.Reduced {
		minX = min(minX, p[0])
		maxX = max(maxX, p[0])
		minY = min(minY, p[1])
		maxY = max(maxY, p[1])
	}
	spanX := maxX - minX
	if spanX == 0 {
		spanX = 1
	}
	spanY := maxY - minY
	if spanY == 0 {
		spanY = 1
	}

	rng := rand.New(rand.NewSource(seed))

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		svgWidth, svgHeight, svgWidth, svgHeight)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="white"/>`+"\n", svgWidth, svgHeight)
	fmt.Fprintf(&b, `  <text x="%d" y="24" font-family="sans-serif" font-size="16">File Clusters</text>`+"\n", svgMargin)

	plotW := float64(svgWidth - 2*svgMargin)
	plotH := float64(svgHeight - 2*svgMargin)
	for i, p := range c.Reduced {
		x := float64(svgMargin) + (p[0]-minX)/spanX*plotW + rng.Float64()*4 - 2
		// SVG y grows downward.
		y := float64(svgHeight-svgMargin) - (p[1]-minY)/spanY*plotH + rng.Float64()*4 - 2
		fmt.Fprintf(&b,
			`  <circle cx="%.1f" cy="%.1f" r="4" fill="%s" fill-opacity="0.7"><title>%s</title></circle>`+"\n",
			x, y, colorFor(c.Clusters[i]), escapeXML(c.FilePaths[i]))
	}
	b.WriteString("</svg>\n")

	return writeAtomic(path, []byte(b.String()))
}

func colorFor(id int) string {
	if id == cluster.Noise {
		return noiseColor
	}
	return clusterPalette[id%len(clusterPalette)]
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
