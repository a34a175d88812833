package polytri

import "github.com/go-gl/mathgl/mgl64"

type clipConfig struct {
	predicates  Predicates
	fanFallback bool
}

// ClipOption configures TriangulateNgon.
type ClipOption func(*clipConfig)

// WithPredicates selects the convexity and containment tests used to find ears.
func WithPredicates(p Predicates) ClipOption {
	return func(c *clipConfig) {
		c.predicates = p
	}
}

// WithFanFallback makes a stalled clip fan-triangulate what is left of the ring
// instead of failing.
func WithFanFallback() ClipOption {
	return func(c *clipConfig) {
		c.fanFallback = true
	}
}

func newClipConfig(opts []ClipOption) clipConfig {
	cfg := clipConfig{predicates: RobustPredicates}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// TriangulateNgon triangulates a simple, roughly planar polygon by ear
// clipping. Triangles reference the given indices and keep the ring's winding.
// A ring of n vertices yields n-2 triangles.
func TriangulateNgon(positions []mgl64.Vec3, indices []int, opts ...ClipOption) ([]Triangle, error) {
	if len(positions) != len(indices) || len(positions) < 3 {
		return nil, &UnsupportedFaceError{Face: noFace, Count: len(positions)}
	}

	local, err := clipEars(positions, newClipConfig(opts))
	if err != nil {
		return nil, err
	}

	triangles := make([]Triangle, len(local))
	for i, t := range local {
		triangles[i] = Triangle{indices[t[0]], indices[t[1]], indices[t[2]]}
	}
	return triangles, nil
}

// clipEars returns triangles as positions within the ring.
func clipEars(positions []mgl64.Vec3, cfg clipConfig) ([]Triangle, error) {
	n := len(positions)
	if n == 3 {
		return []Triangle{{0, 1, 2}}, nil
	}

	normal, ok := EstimateNormal(positions)
	if !ok {
		return nil, &DegenerateFaceError{Face: noFace}
	}
	frame := BuildLocalFrame(normal)

	flat := make([]mgl64.Vec2, n)
	for i, p := range positions {
		flat[i] = frame.Project(p)
	}
	// The fallback frame can hand back a clockwise ring; mirror it so the
	// convexity tests see the face's own winding.
	if SignedArea2D(flat) < 0 {
		for i := range flat {
			flat[i][1] = -flat[i][1]
		}
	}

	convex := cfg.predicates.Convex
	queue := newCornerQueue(n)
	for i := range positions {
		queue.PushBack(&corner{
			pos:    positions[i],
			flat:   flat[i],
			ring:   i,
			convex: convex(flat[(i+n-1)%n], flat[i], flat[(i+1)%n]),
		})
	}

	triangles := make([]Triangle, 0, n-2)
	stalled := 0
	for queue.Len() > 3 {
		if stalled >= queue.Len() {
			if !cfg.fanFallback {
				return nil, &TriangulationFailedError{Face: noFace, Remaining: queue.Len()}
			}
			return append(triangles, fan(queue)...), nil
		}

		c := queue.PopFront()
		if c.convex && isEar(queue, c, cfg.predicates) {
			back, front := queue.At(-1), queue.At(0)
			triangles = append(triangles, Triangle{back.ring, c.ring, front.ring})

			back.convex = convex(queue.At(-2).flat, back.flat, front.flat)
			front.convex = convex(back.flat, front.flat, queue.At(1).flat)
			stalled = 0
			continue
		}

		queue.PushBack(c)
		stalled++
	}

	return append(triangles, Triangle{queue.At(0).ring, queue.At(1).ring, queue.At(2).ring}), nil
}

// isEar checks c, already popped, against its queue neighbours: no other
// queued vertex may fall inside the triangle back, c, front.
func isEar(queue *cornerQueue, c *corner, p Predicates) bool {
	back, front := queue.At(-1), queue.At(0)
	for i := 1; i < queue.Len()-1; i++ {
		if p.Inside(back.flat, c.flat, front.flat, queue.At(i).flat) {
			return false
		}
	}
	return true
}

func fan(queue *cornerQueue) []Triangle {
	triangles := make([]Triangle, 0, queue.Len()-2)
	for i := 1; i < queue.Len()-1; i++ {
		triangles = append(triangles, Triangle{queue.At(0).ring, queue.At(i).ring, queue.At(i + 1).ring})
	}
	return triangles
}
