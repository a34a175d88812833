package polytri

// Stats summarises the face shapes of a mesh before triangulation.
type Stats struct {
	Vertices   int
	Faces      int
	Triangles  int // faces with 3 corners
	Quads      int
	Ngons      int
	Invalid    int // faces with fewer than 3 corners
	Degenerate int

	// ExpectedTriangles is the sum of n-2 over the valid faces.
	ExpectedTriangles int

	// WorstPlanarity is the largest Planarity over faces with 4 or more corners.
	WorstPlanarity float64
	WorstFace      int
}

func MeshStats(m *Mesh) Stats {
	s := Stats{Vertices: len(m.Positions), Faces: len(m.Faces), WorstFace: noFace}
	for f, face := range m.Faces {
		n := len(face)
		switch {
		case n < 3:
			s.Invalid++
			continue
		case n == 3:
			s.Triangles++
		case n == 4:
			s.Quads++
		default:
			s.Ngons++
		}
		s.ExpectedTriangles += n - 2

		positions := m.FacePositions(f)
		if _, ok := EstimateNormal(positions); !ok {
			s.Degenerate++
			continue
		}
		if n > 3 {
			if p := Planarity(positions); p > s.WorstPlanarity {
				s.WorstPlanarity = p
				s.WorstFace = f
			}
		}
	}
	return s
}
