package polytri

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minNormalLength is the accumulated Newell length below which a ring is
// treated as having no usable normal.
const minNormalLength = 1e-12

// EstimateNormal returns the area-weighted Newell normal of a ring of points.
// ok is false when the ring is collinear or coincident; the returned vector is
// then the zero vector.
func EstimateNormal(ring []mgl64.Vec3) (n mgl64.Vec3, ok bool) {
	for i := range ring {
		prev := ring[(i+len(ring)-1)%len(ring)]
		next := ring[i]
		n[0] += (prev.Y() - next.Y()) * (prev.Z() + next.Z())
		n[1] += (prev.Z() - next.Z()) * (prev.X() + next.X())
		n[2] += (prev.X() - next.X()) * (prev.Y() + next.Y())
	}

	length := n.Len()
	if length < minNormalLength {
		return mgl64.Vec3{}, false
	}
	return n.Mul(1 / length), true
}

// TriangleNormal is the unnormalized normal of a, b, c following their winding.
func TriangleNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// TriangleArea returns the area of the triangle a, b, c.
func TriangleArea(a, b, c mgl64.Vec3) float64 {
	return TriangleNormal(a, b, c).Len() / 2
}

// SignedArea2D is the shoelace area of a 2D ring; positive for
// counter-clockwise rings.
func SignedArea2D(ring []mgl64.Vec2) float64 {
	var sum float64
	for i := range ring {
		p := ring[(i+len(ring)-1)%len(ring)]
		q := ring[i]
		sum += p.X()*q.Y() - q.X()*p.Y()
	}
	return sum / 2
}

// PolygonArea projects a planar ring into its own frame and returns the
// absolute shoelace area. A degenerate ring has zero area.
func PolygonArea(ring []mgl64.Vec3) float64 {
	n, ok := EstimateNormal(ring)
	if !ok {
		return 0
	}
	frame := BuildLocalFrame(n)
	projected := make([]mgl64.Vec2, len(ring))
	for i, p := range ring {
		projected[i] = frame.Project(p)
	}
	return math.Abs(SignedArea2D(projected))
}

// cross2 is the z component of (a,0) x (b,0).
func cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}
