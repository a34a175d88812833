package polytri

import "github.com/go-gl/mathgl/mgl64"

// convexThreshold is the cross product floor used by IsConvexCorner. It is not
// zero: corners turning slightly clockwise still count as convex.
const convexThreshold = -1

// IsConvexCorner reports whether curr turns left (or only slightly right)
// between prev and next. This is the reference exporter's test and keeps its
// -1 floor; see IsStrictlyConvexCorner for the exact test.
func IsConvexCorner(prev, curr, next mgl64.Vec2) bool {
	return cross2(curr.Sub(prev), next.Sub(curr)) > convexThreshold
}

// PointInTriangle is the reference exporter's containment test. Its side
// function mixes x and y terms unlike the shoelace form; it is kept as is so
// output matches the reference tool.
func PointInTriangle(v1, v2, v3, p mgl64.Vec2) bool {
	side := func(a, b, c mgl64.Vec2) bool {
		return a.X()*(b.Y()-c.Y())+b.Y()*(c.Y()-a.Y())+c.Y()*(a.Y()-b.Y()) > 0
	}
	return side(v1, v2, p) && side(v2, v3, p) && side(v3, v1, p)
}

// IsStrictlyConvexCorner reports whether curr is a strict left turn.
func IsStrictlyConvexCorner(prev, curr, next mgl64.Vec2) bool {
	return cross2(curr.Sub(prev), next.Sub(curr)) > 0
}

// PointInTriangleInclusive reports whether p lies inside or on the boundary of
// the counter-clockwise triangle v1, v2, v3.
func PointInTriangleInclusive(v1, v2, v3, p mgl64.Vec2) bool {
	return cross2(v2.Sub(v1), p.Sub(v1)) >= 0 &&
		cross2(v3.Sub(v2), p.Sub(v2)) >= 0 &&
		cross2(v1.Sub(v3), p.Sub(v3)) >= 0
}

// Predicates is the pair of 2D tests driving ear detection.
type Predicates struct {
	Convex func(prev, curr, next mgl64.Vec2) bool
	Inside func(v1, v2, v3, p mgl64.Vec2) bool
}

var (
	// ReferencePredicates reproduce the reference exporter bit for bit,
	// including its tolerances. Concave faces may come out overlapping.
	ReferencePredicates = Predicates{Convex: IsConvexCorner, Inside: PointInTriangle}

	// RobustPredicates use exact orientation tests and treat vertices on an
	// ear's boundary as blocking it.
	RobustPredicates = Predicates{Convex: IsStrictlyConvexCorner, Inside: PointInTriangleInclusive}
)
