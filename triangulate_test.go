package polytri

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mixedMesh holds a triangle, a unit square and a regular pentagon side by
// side in the XY plane.
func mixedMesh() *Mesh {
	m := NewMesh()
	m.AddFace(
		m.AddPoint(mgl64.Vec3{-3, 0, 0}),
		m.AddPoint(mgl64.Vec3{-2, 0, 0}),
		m.AddPoint(mgl64.Vec3{-3, 1, 0}),
	)
	m.AddFace(
		m.AddPoint(mgl64.Vec3{0, 0, 0}),
		m.AddPoint(mgl64.Vec3{1, 0, 0}),
		m.AddPoint(mgl64.Vec3{1, 1, 0}),
		m.AddPoint(mgl64.Vec3{0, 1, 0}),
	)
	var pentagon []int
	for _, p := range regularPolygon(5, 1) {
		pentagon = append(pentagon, m.AddPoint(p.Add(mgl64.Vec3{4, 0, 0})))
	}
	m.AddFace(pentagon...)
	return m
}

func perCornerUVs(m *Mesh) UVLayer {
	var uvs UVLayer
	for _, face := range m.Faces {
		for _, idx := range face {
			p := m.Positions[idx]
			uvs = append(uvs, mgl64.Vec2{p.X() / 10, p.Y() / 10})
		}
	}
	return uvs
}

func flatNormals(m *Mesh) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(m.Positions))
	for i := range normals {
		normals[i] = mgl64.Vec3{0, 0, 1}
	}
	return normals
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestTriangulateFace(t *testing.T) {
	square := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	triangles, err := TriangulateFace(square[:3], []int{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{4, 5, 6}}, triangles)

	triangles, err = TriangulateFace(square, []int{4, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{4, 5, 6}, {4, 6, 7}}, triangles)

	triangles, err = TriangulateFace(regularPolygon(5, 1), []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{5, 1, 2}, {5, 2, 3}, {3, 4, 5}}, triangles)

	_, err = TriangulateFace(square[:2], []int{0, 1})
	var unsupported *UnsupportedFaceError
	assert.True(t, errors.As(err, &unsupported))

	_, err = TriangulateFace(square, []int{0, 1, 2})
	assert.True(t, errors.As(err, &unsupported))
}

func TestTriangulateMesh(t *testing.T) {
	m := mixedMesh()

	out, err := TriangulateMesh(m)
	require.NoError(t, err)

	require.Len(t, out.Triangles, 6)
	assert.Empty(t, out.Skipped)
	assert.Same(t, &m.Positions[0], &out.Vertices[0])
	assert.Len(t, out.Indices(), 18)

	assert.Equal(t, Triangle{0, 1, 2}, out.Triangles[0])
	assert.Equal(t, Triangle{3, 4, 5}, out.Triangles[1])
	assert.Equal(t, Triangle{3, 5, 6}, out.Triangles[2])
	assert.Equal(t, Triangle{11, 7, 8}, out.Triangles[3])

	for _, tri := range out.Triangles {
		for _, idx := range tri {
			assert.Less(t, idx, len(m.Positions))
		}
	}
}

func TestTriangulateMeshPolicies(t *testing.T) {
	build := func() *Mesh {
		m := mixedMesh()
		// collinear pentagon between the square and the regular one
		var line []int
		for i := 0; i < 5; i++ {
			line = append(line, m.AddPoint(mgl64.Vec3{float64(i), -5, 0}))
		}
		m.Faces = [][]int{m.Faces[0], m.Faces[1], line, m.Faces[2]}
		return m
	}

	t.Run("abort", func(t *testing.T) {
		_, err := TriangulateMesh(build())
		require.Error(t, err)

		var degenerate *DegenerateFaceError
		require.True(t, errors.As(err, &degenerate))
		assert.Equal(t, 2, degenerate.Face)
		assert.Equal(t, "triangulate: face 2: degenerate geometry, normal has zero length", err.Error())
	})

	for _, policy := range []FacePolicy{PolicySkip, PolicyFan} {
		t.Run(string(policy), func(t *testing.T) {
			var logs bytes.Buffer
			out, err := TriangulateMesh(build(), WithFacePolicy(policy), WithLogger(bufferLogger(&logs)))
			require.NoError(t, err)
			assert.Len(t, out.Triangles, 6)
			assert.Equal(t, []int{2}, out.Skipped)
			assert.Contains(t, logs.String(), "skipping face")
		})
	}

	t.Run("unknown policy", func(t *testing.T) {
		_, err := TriangulateMesh(build(), WithFacePolicy("retry"))
		assert.Error(t, err)
	})
}

func TestTriangulateMeshFanPolicy(t *testing.T) {
	m := NewMesh()
	m.Positions = []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {2, 2, 0}, {0, 2, 0}}
	m.AddFace(0, 1, 2, 3, 4)

	var logs bytes.Buffer
	out, err := TriangulateMesh(m, WithFacePolicy(PolicySkip), WithLogger(bufferLogger(&logs)))
	require.NoError(t, err)
	assert.Empty(t, out.Triangles)
	assert.Equal(t, []int{0}, out.Skipped)

	out, err = TriangulateMesh(m, WithFacePolicy(PolicyFan))
	require.NoError(t, err)
	assert.Len(t, out.Triangles, 3)
	assert.Empty(t, out.Skipped)

	_, err = TriangulateMesh(m)
	var failed *TriangulationFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, 0, failed.Face)
}

func TestTriangulateMeshInvalid(t *testing.T) {
	m := mixedMesh()
	m.AddFace(0, 1, 99)
	_, err := TriangulateMesh(m)
	assert.Error(t, err)

	m = mixedMesh()
	m.Normals = []mgl64.Vec3{{0, 0, 1}}
	_, err = TriangulateMesh(m)
	assert.Error(t, err)
}

func TestTriangulateMeshPlanarityWarning(t *testing.T) {
	m := NewMesh()
	ring := regularPolygon(6, 1)
	ring[0][2] = 0.5
	for _, p := range ring {
		m.AddPoint(p)
	}
	m.AddFace(identity(6)...)

	var logs bytes.Buffer
	_, err := TriangulateMesh(m, WithLogger(bufferLogger(&logs)), func(o *Options) { o.PlanarityTolerance = 0.01 })
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "face is not planar")
}

func TestTriangulateMeshWithUV(t *testing.T) {
	m := mixedMesh()
	m.Normals = flatNormals(m)
	uvs := perCornerUVs(m)

	out, err := TriangulateMeshWithUV(m, uvs)
	require.NoError(t, err)

	require.Equal(t, 6, out.TriangleCount())
	assert.Len(t, out.Positions, 18)
	assert.Len(t, out.Normals, 18)
	assert.Len(t, out.UVs, 18)
	assert.Equal(t, identity(18), out.Indices)

	for i, p := range out.Positions {
		assert.Equal(t, mgl64.Vec2{p.X() / 10, p.Y() / 10}, out.UVs[i])
		assert.Equal(t, mgl64.Vec3{0, 0, 1}, out.Normals[i])
	}

	// the square's corners, in split order
	square := m.Faces[1]
	for i, k := range []int{0, 1, 2, 0, 2, 3} {
		assert.Equal(t, m.Positions[square[k]], out.Positions[3+i])
	}
}

func TestTriangulateMeshWithUVSeam(t *testing.T) {
	// Two quads share the edge 1-2 but map it to different UVs.
	m := NewMesh()
	m.Positions = []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, 0, 0}, {2, 1, 0}}
	m.Normals = flatNormals(m)
	m.AddFace(0, 1, 2, 3)
	m.AddFace(1, 4, 5, 2)
	uvs := UVLayer{
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
	}

	out, err := TriangulateMeshWithUV(m, uvs)
	require.NoError(t, err)
	require.Equal(t, 4, out.TriangleCount())

	seen := map[mgl64.Vec2]bool{}
	for i, p := range out.Positions {
		if p == m.Positions[1] {
			seen[out.UVs[i]] = true
		}
	}
	assert.Equal(t, map[mgl64.Vec2]bool{{1, 0}: true, {0, 0}: true}, seen)
}

func TestTriangulateMeshWithUVCornerNormals(t *testing.T) {
	m := mixedMesh()
	m.Normals = flatNormals(m)
	m.CornerNormals = make([]mgl64.Vec3, m.CornerCount())
	for i := range m.CornerNormals {
		m.CornerNormals[i] = mgl64.Vec3{1, 0, 0}
	}

	out, err := TriangulateMeshWithUV(m, perCornerUVs(m))
	require.NoError(t, err)
	for _, n := range out.Normals {
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, n)
	}
}

func TestTriangulateMeshWithUVMissing(t *testing.T) {
	t.Run("normals", func(t *testing.T) {
		m := mixedMesh()
		_, err := TriangulateMeshWithUV(m, perCornerUVs(m))

		var missing *MissingAttributeError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "normals", missing.Attribute)
		assert.Equal(t, 0, missing.Face)
	})

	t.Run("short uv layer", func(t *testing.T) {
		m := mixedMesh()
		m.Normals = flatNormals(m)
		uvs := perCornerUVs(m)

		_, err := TriangulateMeshWithUV(m, uvs[:len(uvs)-1])
		var missing *MissingAttributeError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "uv coordinates", missing.Attribute)
		assert.Equal(t, 2, missing.Face)
	})

	t.Run("short uv layer skipped", func(t *testing.T) {
		m := mixedMesh()
		m.Normals = flatNormals(m)
		uvs := perCornerUVs(m)

		var logs bytes.Buffer
		out, err := TriangulateMeshWithUV(m, uvs[:len(uvs)-1], WithFacePolicy(PolicySkip), WithLogger(bufferLogger(&logs)))
		require.NoError(t, err)
		assert.Equal(t, 3, out.TriangleCount())
		assert.Equal(t, []int{2}, out.Skipped)
	})
}

func TestTriangulateFaceUV(t *testing.T) {
	ring := regularPolygon(5, 1)
	normals := make([]mgl64.Vec3, 5)
	uvs := make([]mgl64.Vec2, 5)
	for i, p := range ring {
		normals[i] = mgl64.Vec3{0, 0, 1}
		uvs[i] = mgl64.Vec2{p.X(), p.Y()}
	}

	corners, indices, err := TriangulateFaceUV(ring, normals, uvs, 30)
	require.NoError(t, err)
	assert.Equal(t, []int{30, 31, 32, 33, 34, 35, 36, 37, 38}, indices)
	for i, k := range []int{4, 0, 1, 4, 1, 2, 2, 3, 4} {
		assert.Equal(t, ring[k], corners[i].Position)
		assert.Equal(t, uvs[k], corners[i].UV)
	}

	_, _, err = TriangulateFaceUV(ring, normals[:4], uvs, 0)
	var missing *MissingAttributeError
	assert.True(t, errors.As(err, &missing))
}

func TestTriangulateFaceDegenerate(t *testing.T) {
	flat := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	var degenerate *DegenerateFaceError

	_, err := TriangulateFace(flat, identity(4))
	assert.True(t, errors.As(err, &degenerate))

	normals := []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	_, _, err = TriangulateFaceUV(flat, normals, make([]mgl64.Vec2, 4), 0)
	assert.True(t, errors.As(err, &degenerate))

	// triangles pass through even when flat
	triangles, err := TriangulateFace(flat[:3], identity(3))
	require.NoError(t, err)
	assert.Equal(t, []Triangle{{0, 1, 2}}, triangles)
}

func TestTriangulateMeshSkipsDegenerateQuad(t *testing.T) {
	m := mixedMesh()
	m.AddFace(0, 1, 1, 0)

	var logs bytes.Buffer
	out, err := TriangulateMesh(m, WithFacePolicy(PolicySkip), WithLogger(bufferLogger(&logs)))
	require.NoError(t, err)
	assert.Len(t, out.Triangles, 6)
	assert.Equal(t, []int{3}, out.Skipped)
	assert.Equal(t, 1, MeshStats(m).Degenerate)
}
