package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits the model's centre. The model is first centred and scaled to
// a unit sphere, then rotated, then dropped onto the screen orthographically.
type Camera struct {
	angleX, angleY float64
	zoom           float64
	centre         mgl64.Vec3
	scale          float64
}

func NewCamera(positions []mgl64.Vec3) *Camera {
	c := &Camera{zoom: 1, scale: 1}
	if len(positions) == 0 {
		return c
	}

	lo, hi := positions[0], positions[0]
	for _, p := range positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	c.centre = lo.Add(hi).Mul(0.5)
	if radius := hi.Sub(lo).Len() / 2; radius > 0 {
		c.scale = 1 / radius
	}
	return c
}

func (c *Camera) AddAngle(x, y float64) {
	c.angleX += x
	c.angleY += y
}

func (c *Camera) Zoom(factor float64) {
	c.zoom = math.Max(0.1, math.Min(10, c.zoom*factor))
}

// Matrix maps model space into view space.
func (c *Camera) Matrix() mgl64.Mat4 {
	rotX := mgl64.HomogRotate3DX(c.angleX)
	rotY := mgl64.HomogRotate3DY(c.angleY)
	scale := mgl64.Scale3D(c.scale*c.zoom, c.scale*c.zoom, c.scale*c.zoom)
	centre := mgl64.Translate3D(-c.centre.X(), -c.centre.Y(), -c.centre.Z())
	return rotX.Mul4(rotY).Mul4(scale).Mul4(centre)
}

// ToScreen projects a view-space point into pixel coordinates. Y points down
// on screen.
func ToScreen(v mgl64.Vec3, width, height int) (float32, float32) {
	half := float64(min(width, height)) / 2 * 0.9
	return float32(float64(width)/2 + v.X()*half), float32(float64(height)/2 - v.Y()*half)
}
