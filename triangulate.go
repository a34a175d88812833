package polytri

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// TriangulateFace dispatches one face on its corner count: triangles pass
// through untouched, quads are split on their shorter diagonal and larger faces
// are ear clipped. Quads and larger faces without a normal are rejected with a
// DegenerateFaceError.
func TriangulateFace(positions []mgl64.Vec3, indices []int, opts ...ClipOption) ([]Triangle, error) {
	n := len(positions)
	switch {
	case n != len(indices) || n < 3:
		return nil, &UnsupportedFaceError{Face: noFace, Count: n}
	case n == 3:
		return []Triangle{{indices[0], indices[1], indices[2]}}, nil
	case n == 4:
		if _, ok := EstimateNormal(positions); !ok {
			return nil, &DegenerateFaceError{Face: noFace}
		}
		split := SplitQuad([4]mgl64.Vec3(positions), [4]int(indices))
		return split[:], nil
	default:
		return TriangulateNgon(positions, indices, opts...)
	}
}

// TriangulateFaceUV triangulates one face for unwelded output. normals and uvs
// hold one entry per corner. The returned corners come in threes, numbered
// from next on.
func TriangulateFaceUV(positions, normals []mgl64.Vec3, uvs []mgl64.Vec2, next int, opts ...ClipOption) ([]Corner, []int, error) {
	n := len(positions)
	if n < 3 {
		return nil, nil, &UnsupportedFaceError{Face: noFace, Count: n}
	}
	if len(normals) != n {
		return nil, nil, &MissingAttributeError{Face: noFace, Attribute: "normals"}
	}
	if len(uvs) != n {
		return nil, nil, &MissingAttributeError{Face: noFace, Attribute: "uv coordinates"}
	}

	if n == 4 {
		if _, ok := EstimateNormal(positions); !ok {
			return nil, nil, &DegenerateFaceError{Face: noFace}
		}
		corners, indices := SplitQuadUV([4]mgl64.Vec3(positions), [4]mgl64.Vec3(normals), [4]mgl64.Vec2(uvs), next)
		return corners[:], indices[:], nil
	}

	local, err := clipEars(positions, newClipConfig(opts))
	if err != nil {
		return nil, nil, err
	}
	corners := make([]Corner, 0, len(local)*3)
	indices := make([]int, 0, len(local)*3)
	for _, t := range local {
		for _, k := range t {
			corners = append(corners, Corner{Position: positions[k], Normal: normals[k], UV: uvs[k]})
			indices = append(indices, next+len(indices))
		}
	}
	return corners, indices, nil
}

// TriangulateMesh triangulates every face of m. The result's vertex array is
// m.Positions itself and triangles follow face order.
func TriangulateMesh(m *Mesh, opts ...Option) (*Indexed, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return triangulateIndexed(m, 0, len(m.Faces), o)
}

// TriangulateMeshWithUV triangulates every face of m into unwelded output,
// taking normals from m.CornerNormals or m.Normals and UVs from the
// per-corner layer uvs.
func TriangulateMeshWithUV(m *Mesh, uvs UVLayer, opts ...Option) (*Unwelded, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return triangulateUnwelded(m, uvs, m.cornerOffsets(), 0, len(m.Faces), o)
}

func triangulateIndexed(m *Mesh, from, to int, o Options) (*Indexed, error) {
	out := &Indexed{Vertices: m.Positions}
	clipOpts := o.clipOptions()
	for f := from; f < to; f++ {
		positions := m.FacePositions(f)
		checkPlanarity(o, f, positions)
		triangles, err := TriangulateFace(positions, m.Faces[f], clipOpts...)
		if err != nil {
			if err := handleFaceError(o, f, err); err != nil {
				return nil, err
			}
			out.Skipped = append(out.Skipped, f)
			continue
		}
		out.Triangles = append(out.Triangles, triangles...)
	}
	return out, nil
}

func triangulateUnwelded(m *Mesh, uvs UVLayer, offsets []int, from, to int, o Options) (*Unwelded, error) {
	out := &Unwelded{}
	clipOpts := o.clipOptions()
	for f := from; f < to; f++ {
		corners, indices, err := faceCornersUV(m, uvs, offsets[f], f, out.next(), o, clipOpts)
		if err != nil {
			if err := handleFaceError(o, f, err); err != nil {
				return nil, err
			}
			out.Skipped = append(out.Skipped, f)
			continue
		}
		out.add(corners, indices)
	}
	return out, nil
}

func faceCornersUV(m *Mesh, uvs UVLayer, offset, f, next int, o Options, clipOpts []ClipOption) ([]Corner, []int, error) {
	face := m.Faces[f]
	if offset+len(face) > len(uvs) {
		return nil, nil, &MissingAttributeError{Face: f, Attribute: "uv coordinates"}
	}

	var normals []mgl64.Vec3
	switch {
	case len(m.CornerNormals) != 0:
		normals = m.CornerNormals[offset : offset+len(face)]
	case len(m.Normals) != 0:
		normals = make([]mgl64.Vec3, len(face))
		for i, idx := range face {
			normals[i] = m.Normals[idx]
		}
	default:
		return nil, nil, &MissingAttributeError{Face: f, Attribute: "normals"}
	}

	positions := m.FacePositions(f)
	checkPlanarity(o, f, positions)
	return TriangulateFaceUV(positions, normals, uvs[offset:offset+len(face)], next, clipOpts...)
}

// checkPlanarity warns about warped n-gons, whose projection into a single
// face frame can fold.
func checkPlanarity(o Options, f int, positions []mgl64.Vec3) {
	if o.PlanarityTolerance <= 0 || len(positions) < 5 {
		return
	}
	if p := Planarity(positions); p > o.PlanarityTolerance {
		o.logger().Warn("face is not planar", "face", f, "distance", p, "tolerance", o.PlanarityTolerance)
	}
}

// handleFaceError applies the face policy. A nil return means the face is to
// be skipped.
func handleFaceError(o Options, f int, err error) error {
	err = withFace(err, f)
	if o.OnFaceError == PolicyAbort {
		return fmt.Errorf("triangulate: %w", err)
	}

	o.logger().Warn("skipping face", "face", f, "policy", string(o.OnFaceError), "err", err)
	return nil
}
