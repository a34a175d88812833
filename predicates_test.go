package polytri

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestConvexCorner(t *testing.T) {
	testCases := []struct {
		name             string
		prev, curr, next mgl64.Vec2
		reference        bool
		strict           bool
	}{
		{"left turn", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{1, 1}, true, true},
		{"straight", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, 0}, true, false},
		{"slight right turn", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, -0.5}, true, false},
		{"sharp right turn", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, -2}, false, false},
		{"right turn at the threshold", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, -1}, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reference, IsConvexCorner(tc.prev, tc.curr, tc.next))
			assert.Equal(t, tc.strict, IsStrictlyConvexCorner(tc.prev, tc.curr, tc.next))
		})
	}
}

func TestPointInTriangle(t *testing.T) {
	testCases := []struct {
		name       string
		v1, v2, v3 mgl64.Vec2
		p          mgl64.Vec2
		reference  bool
		inclusive  bool
	}{
		{"interior point missed by the reference test", mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}, mgl64.Vec2{0.25, 0.25}, false, true},
		{"exterior point caught by the reference test", mgl64.Vec2{2, 1}, mgl64.Vec2{5, 3}, mgl64.Vec2{8, 6}, mgl64.Vec2{0, 0}, true, false},
		{"far outside", mgl64.Vec2{2, 1}, mgl64.Vec2{5, 3}, mgl64.Vec2{3, 6}, mgl64.Vec2{10, -4}, false, false},
		{"on an edge", mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}, mgl64.Vec2{0, 2}, mgl64.Vec2{1, 1}, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reference, PointInTriangle(tc.v1, tc.v2, tc.v3, tc.p))
			assert.Equal(t, tc.inclusive, PointInTriangleInclusive(tc.v1, tc.v2, tc.v3, tc.p))
		})
	}
}
