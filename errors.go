package polytri

import "fmt"

// noFace marks errors raised by single-face calls that do not know which mesh
// face they are working on.
const noFace = -1

// UnsupportedFaceError is returned for faces that cannot be triangulated at all:
// fewer than three corners, or position and index lists of different length.
type UnsupportedFaceError struct {
	Face  int
	Count int
}

func (e *UnsupportedFaceError) Error() string {
	return fmt.Sprintf("%s: unsupported face with %d vertices", faceLabel(e.Face), e.Count)
}

// DegenerateFaceError is returned when a face has no usable normal.
type DegenerateFaceError struct {
	Face int
}

func (e *DegenerateFaceError) Error() string {
	return fmt.Sprintf("%s: degenerate geometry, normal has zero length", faceLabel(e.Face))
}

// TriangulationFailedError is returned when ear clipping stops making progress.
type TriangulationFailedError struct {
	Face      int
	Remaining int
}

func (e *TriangulationFailedError) Error() string {
	return fmt.Sprintf("%s: ear clipping stalled with %d vertices left", faceLabel(e.Face), e.Remaining)
}

// MissingAttributeError is returned when UV-aware triangulation lacks normals
// or UV coordinates for a face.
type MissingAttributeError struct {
	Face      int
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: missing %s", faceLabel(e.Face), e.Attribute)
}

func faceLabel(face int) string {
	if face == noFace {
		return "face"
	}
	return fmt.Sprintf("face %d", face)
}

// withFace stamps a face number onto the typed errors of this package.
func withFace(err error, face int) error {
	switch e := err.(type) {
	case *UnsupportedFaceError:
		e.Face = face
	case *DegenerateFaceError:
		e.Face = face
	case *TriangulationFailedError:
		e.Face = face
	case *MissingAttributeError:
		e.Face = face
	}
	return err
}
