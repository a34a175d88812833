package polytri

import "github.com/go-gl/mathgl/mgl64"

const degenerateFrameLength = 1e-7

var frameReference = mgl64.Vec3{0, 1, 0}

// Frame is an orthonormal basis aligned to a face normal.
type Frame struct {
	Right  mgl64.Vec3
	Front  mgl64.Vec3
	Normal mgl64.Vec3
}

// BuildLocalFrame derives a face frame from a unit normal. When the normal is
// (anti)parallel to +Y the fixed pair right=(1,0,0), front=(0,0,-1) is used;
// that frame ignores the sign of the normal, so a face looking down -Y projects
// with mirrored winding.
func BuildLocalFrame(normal mgl64.Vec3) Frame {
	right := frameReference.Cross(normal)
	if right.Len() < degenerateFrameLength {
		return Frame{
			Right:  mgl64.Vec3{1, 0, 0},
			Front:  mgl64.Vec3{0, 0, -1},
			Normal: normal,
		}
	}
	right = right.Normalize()
	return Frame{
		Right:  right,
		Front:  normal.Cross(right),
		Normal: normal,
	}
}

// Matrix returns the 3x3 matrix whose rows are right, front and normal.
// Multiplying a point by it moves the point into face-local space.
func (f Frame) Matrix() mgl64.Mat3 {
	return mgl64.Mat3FromRows(f.Right, f.Front, f.Normal)
}

// Project drops a point into the frame's 2D plane.
func (f Frame) Project(p mgl64.Vec3) mgl64.Vec2 {
	local := f.Matrix().Mul3x1(p)
	return mgl64.Vec2{local.X(), local.Y()}
}
