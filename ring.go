package polytri

import "github.com/go-gl/mathgl/mgl64"

// corner is one ear-clipping work item.
type corner struct {
	pos    mgl64.Vec3
	flat   mgl64.Vec2 // pos in the face frame
	ring   int        // position in the source ring
	convex bool
}

// cornerQueue is a fixed-capacity circular deque. It never grows: clipping only
// removes items or moves the front item to the back.
type cornerQueue struct {
	items []*corner
	start int
	count int
}

func newCornerQueue(size int) *cornerQueue {
	return &cornerQueue{items: make([]*corner, size)}
}

func (q *cornerQueue) Len() int {
	return q.count
}

func (q *cornerQueue) PushBack(c *corner) {
	if q.count == len(q.items) {
		return
	}
	q.items[(q.start+q.count)%len(q.items)] = c
	q.count++
}

func (q *cornerQueue) PopFront() *corner {
	c := q.items[q.start]
	q.items[q.start] = nil
	q.start = (q.start + 1) % len(q.items)
	q.count--
	return c
}

// At returns the i-th item from the front. Negative i counts from the back, so
// At(-1) is the back item.
func (q *cornerQueue) At(i int) *corner {
	if i < 0 {
		i += q.count
	}
	return q.items[(q.start+i)%len(q.items)]
}
