package polytri

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.Truef(t, got.ApproxEqualThreshold(want, float64EqualityThreshold), "want %v, got %v", want, got)
}

// regularPolygon places n counter-clockwise corners on a circle in the XY
// plane, the first one straight up.
func regularPolygon(n int, radius float64) []mgl64.Vec3 {
	ring := make([]mgl64.Vec3, n)
	for k := range ring {
		a := 2*math.Pi*float64(k)/float64(n) + math.Pi/2
		ring[k] = mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), 0}
	}
	return ring
}

func identity(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func reversed(ring []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

// onPlane maps 2D outline points into 3D with the given mapping.
func onPlane(outline [][2]float64, place func(x, y float64) mgl64.Vec3) []mgl64.Vec3 {
	ring := make([]mgl64.Vec3, len(outline))
	for i, p := range outline {
		ring[i] = place(p[0], p[1])
	}
	return ring
}

func trianglesArea(positions []mgl64.Vec3, triangles []Triangle) float64 {
	var sum float64
	for _, t := range triangles {
		sum += TriangleArea(positions[t[0]], positions[t[1]], positions[t[2]])
	}
	return sum
}

var lShape = [][2]float64{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}

var comb = [][2]float64{
	{0, 0}, {5, 0}, {5, 3}, {4, 3}, {4, 1}, {3, 1},
	{3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3},
}

func star(points int, outer, inner float64) [][2]float64 {
	outline := make([][2]float64, 2*points)
	for k := range outline {
		r := outer
		if k%2 == 1 {
			r = inner
		}
		a := math.Pi * float64(k) / float64(points)
		outline[k] = [2]float64{r * math.Cos(a), r * math.Sin(a)}
	}
	return outline
}
