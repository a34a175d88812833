package polytri

import "github.com/go-gl/mathgl/mgl64"

// Indexed is index-only triangulation output. Vertices is the mesh's own
// position array, untouched; Triangles index into it.
type Indexed struct {
	Vertices  []mgl64.Vec3
	Triangles []Triangle
	// Skipped lists faces left out under the skip or fan policy.
	Skipped []int
}

// Indices flattens the triangles into 3 indices per triangle.
func (x *Indexed) Indices() []int {
	indices := make([]int, 0, len(x.Triangles)*3)
	for _, t := range x.Triangles {
		indices = append(indices, t[0], t[1], t[2])
	}
	return indices
}

// Unwelded is UV-aware triangulation output. Every triangle corner is its own
// vertex, so a vertex shared by several triangles with different UVs can
// carry each of them. Connectivity is given up for that: the three arrays
// grow by exactly three entries per triangle and Indices is 0, 1, ..., 3F-1.
type Unwelded struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []int
	Skipped   []int
}

// TriangleCount is the number of triangles, a third of the index count.
func (u *Unwelded) TriangleCount() int {
	return len(u.Indices) / 3
}

// next is the first free vertex slot.
func (u *Unwelded) next() int {
	return len(u.Positions)
}

func (u *Unwelded) add(corners []Corner, indices []int) {
	for _, c := range corners {
		u.Positions = append(u.Positions, c.Position)
		u.Normals = append(u.Normals, c.Normal)
		u.UVs = append(u.UVs, c.UV)
	}
	u.Indices = append(u.Indices, indices...)
}

// merge appends other after u, shifting other's indices past u's vertices.
func (u *Unwelded) merge(other *Unwelded) {
	base := u.next()
	u.Positions = append(u.Positions, other.Positions...)
	u.Normals = append(u.Normals, other.Normals...)
	u.UVs = append(u.UVs, other.UVs...)
	for _, idx := range other.Indices {
		u.Indices = append(u.Indices, base+idx)
	}
	u.Skipped = append(u.Skipped, other.Skipped...)
}
