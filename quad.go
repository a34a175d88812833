package polytri

import "github.com/go-gl/mathgl/mgl64"

// Triangle is an ordered triple of vertex identifiers.
type Triangle [3]int

// Corner is a fully duplicated triangle corner for one-UV-per-vertex output.
type Corner struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	UV       mgl64.Vec2
}

// quadSplit returns the local corner order of the two triangles of a quad,
// cut along its shorter diagonal. Ties take the 0-2 diagonal.
func quadSplit(positions [4]mgl64.Vec3) [6]int {
	diagonalA := positions[0].Sub(positions[2]).Len()
	diagonalB := positions[1].Sub(positions[3]).Len()
	if diagonalA <= diagonalB {
		return [6]int{0, 1, 2, 0, 2, 3}
	}
	return [6]int{0, 1, 3, 3, 1, 2}
}

// SplitQuad cuts a quad into two triangles along its shorter diagonal, keeping
// the quad's winding.
func SplitQuad(positions [4]mgl64.Vec3, indices [4]int) [2]Triangle {
	order := quadSplit(positions)
	return [2]Triangle{
		{indices[order[0]], indices[order[1]], indices[order[2]]},
		{indices[order[3]], indices[order[4]], indices[order[5]]},
	}
}

// SplitQuadUV is SplitQuad for unwelded output: the six corners of the two
// triangles are copied out with their normals and UVs, and numbered
// next..next+5.
func SplitQuadUV(positions, normals [4]mgl64.Vec3, uvs [4]mgl64.Vec2, next int) ([6]Corner, [6]int) {
	var (
		corners [6]Corner
		indices [6]int
	)
	for i, k := range quadSplit(positions) {
		corners[i] = Corner{Position: positions[k], Normal: normals[k], UV: uvs[k]}
		indices[i] = next + i
	}
	return corners, indices
}
