package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/polytri"
)

var (
	backgroundColor = color.RGBA{R: 20, G: 20, B: 28, A: 255}
	edgeColor       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	light           = mgl64.Vec3{0.3, 0.5, 1}.Normalize()
)

type Game struct {
	mesh         *polytri.Mesh
	result       *polytri.Indexed
	camera       *Camera
	lastX, lastY int
	dragged      bool
	wireOnly     bool
}

func NewGame(m *polytri.Mesh, x *polytri.Indexed) *Game {
	return &Game{
		mesh:   m,
		result: x,
		camera: NewCamera(m.Positions),
	}
}

func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragged {
			g.camera.AddAngle(float64(y-g.lastY)*0.01, float64(x-g.lastX)*0.01)
		}
		g.dragged = true
	} else {
		g.dragged = false
	}
	g.lastX, g.lastY = x, y

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.camera.Zoom(math.Pow(1.1, dy))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.wireOnly = !g.wireOnly
	}
	return nil
}

type projected struct {
	xp, yp [3]float32
	depth  float64
	shade  float64
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	view := g.camera.Matrix()
	tris := make([]projected, 0, len(g.result.Triangles))
	for _, t := range g.result.Triangles {
		var (
			p      projected
			corner [3]mgl64.Vec3
		)
		for i, idx := range t {
			corner[i] = view.Mul4x1(g.result.Vertices[idx].Vec4(1)).Vec3()
			p.xp[i], p.yp[i] = ToScreen(corner[i], width, height)
			p.depth += corner[i].Z()
		}
		if n := polytri.TriangleNormal(corner[0], corner[1], corner[2]); n.Len() > 0 {
			p.shade = math.Abs(n.Normalize().Dot(light))
		}
		tris = append(tris, p)
	}

	// Painter's order: farthest first.
	sort.Slice(tris, func(i, j int) bool {
		return tris[i].depth < tris[j].depth
	})

	for _, p := range tris {
		if !g.wireOnly {
			c := uint8(40 + 180*p.shade)
			fillTriangle(screen, p.xp, p.yp, color.RGBA{R: c, G: c / 2, B: c / 3, A: 255})
		}
		drawTriangleOutline(screen, p.xp, p.yp, edgeColor)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"faces %d  triangles %d  skipped %d\ndrag to rotate, wheel to zoom, W toggles fill",
		len(g.mesh.Faces), len(g.result.Triangles), len(g.result.Skipped)))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
