package polytri

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a snapshot of a polygon mesh: shared vertex positions, optional
// normals and faces as rings of vertex indices.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3 // per vertex
	Faces     [][]int

	// CornerNormals, when set, holds one normal per face corner in the same
	// layout as a UVLayer and takes precedence over Normals.
	CornerNormals []mgl64.Vec3

	pointIndex map[mgl64.Vec3]int
}

// UVLayer holds one UV per face corner, face after face in ring order.
type UVLayer []mgl64.Vec2

// NewMesh returns an empty mesh ready for AddPoint.
func NewMesh() *Mesh {
	return &Mesh{pointIndex: make(map[mgl64.Vec3]int)}
}

// AddPoint returns the index of p, appending it only if no identical point was
// added through AddPoint before.
func (m *Mesh) AddPoint(p mgl64.Vec3) int {
	if m.pointIndex == nil {
		m.pointIndex = make(map[mgl64.Vec3]int)
	}
	if index, found := m.pointIndex[p]; found {
		return index
	}

	m.Positions = append(m.Positions, p)
	index := len(m.Positions) - 1
	m.pointIndex[p] = index
	return index
}

// AddFace appends a face; the index list is copied.
func (m *Mesh) AddFace(indices ...int) {
	face := make([]int, len(indices))
	copy(face, indices)
	m.Faces = append(m.Faces, face)
}

// FacePositions gathers the positions of face f in ring order.
func (m *Mesh) FacePositions(f int) []mgl64.Vec3 {
	face := m.Faces[f]
	positions := make([]mgl64.Vec3, len(face))
	for i, idx := range face {
		positions[i] = m.Positions[idx]
	}
	return positions
}

// CornerCount is the total number of face corners, the length a UVLayer for
// this mesh must have.
func (m *Mesh) CornerCount() int {
	count := 0
	for _, face := range m.Faces {
		count += len(face)
	}
	return count
}

// cornerOffsets returns, for each face, the position of its first corner in a
// UVLayer.
func (m *Mesh) cornerOffsets() []int {
	offsets := make([]int, len(m.Faces))
	next := 0
	for f, face := range m.Faces {
		offsets[f] = next
		next += len(face)
	}
	return offsets
}

// Validate checks that every face index points at a vertex and that normals,
// when present, cover every vertex or corner.
func (m *Mesh) Validate() error {
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("mesh has %d normals for %d vertices", len(m.Normals), len(m.Positions))
	}
	if len(m.CornerNormals) != 0 && len(m.CornerNormals) != m.CornerCount() {
		return fmt.Errorf("mesh has %d corner normals for %d corners", len(m.CornerNormals), m.CornerCount())
	}
	for f, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(m.Positions) {
				return fmt.Errorf("face %d references vertex %d of %d", f, idx, len(m.Positions))
			}
		}
	}
	return nil
}
