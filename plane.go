package polytri

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is A*x + B*y + C*z + D = 0 with (A, B, C) of unit length.
type Plane struct {
	A, B, C, D float64
}

func NewPlane(point, normal mgl64.Vec3) Plane {
	p := Plane{A: normal.X(), B: normal.Y(), C: normal.Z()}
	p.D = -(p.A*point.X() + p.B*point.Y() + p.C*point.Z())
	return p
}

// FacePlane fits a plane to a ring through its centroid along its Newell
// normal. ok is false for degenerate rings.
func FacePlane(ring []mgl64.Vec3) (Plane, bool) {
	normal, ok := EstimateNormal(ring)
	if !ok {
		return Plane{}, false
	}
	var centroid mgl64.Vec3
	for _, p := range ring {
		centroid = centroid.Add(p)
	}
	return NewPlane(centroid.Mul(1/float64(len(ring))), normal), true
}

// Distance is the signed distance of v from the plane.
func (p Plane) Distance(v mgl64.Vec3) float64 {
	return p.A*v.X() + p.B*v.Y() + p.C*v.Z() + p.D
}

// Planarity returns how far the ring's corners stray from its fitted plane:
// the largest absolute corner distance. Degenerate rings report zero.
func Planarity(ring []mgl64.Vec3) float64 {
	plane, ok := FacePlane(ring)
	if !ok {
		return 0
	}
	var worst float64
	for _, v := range ring {
		worst = math.Max(worst, math.Abs(plane.Distance(v)))
	}
	return worst
}
