// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// BoundsWireframeVertexCount is the number of line endpoints for a box (12 edges x 2).
const BoundsWireframeVertexCount = 24

// boxEdges lists the 12 box edges as corner index pairs. Bit i of a corner
// index selects max on axis i.
var boxEdges = [12][2]int{
	{0, 1}, {1, 5}, {5, 4}, {4, 0}, // bottom
	{2, 3}, {3, 7}, {7, 6}, {6, 2}, // top
	{0, 2}, {1, 3}, {5, 7}, {4, 6}, // vertical
}

// BoundsWireframe returns line-list endpoints for b mapped through m.
func BoundsWireframe(b bounds.Bounds, m math.Mat4) []math.Vec3 {
	lo, hi := b.Min(), b.Max()
	var corners [8]math.Vec3
	for i := range corners {
		c := lo
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c = c.With(axis, hi.Get(axis))
			}
		}
		corners[i] = m.TransformVec3(c)
	}

	out := make([]math.Vec3, 0, BoundsWireframeVertexCount)
	for _, e := range boxEdges {
		out = append(out, corners[e[0]], corners[e[1]])
	}
	return out
}

// CapsuleWireframe returns line-list endpoints outlining c: a ring around each
// end of the core segment plus four lines joining the rings.
func CapsuleWireframe(c collider.Capsule, segments int) []math.Vec3 {
	if segments < 4 {
		segments = 4
	}
	axis := c.Point2.Sub(c.Point1)
	if axis.LengthSq() == 0 {
		axis = math.V3(0, 1, 0)
	}
	axis = axis.Normalize()

	// Any vector not parallel to axis seeds the ring basis.
	seed := math.V3(1, 0, 0)
	if math32.Abs(axis.X) > 0.9 {
		seed = math.V3(0, 1, 0)
	}
	u := axis.Cross(seed).Normalize().Scale(c.Radius)
	v := axis.Cross(u)

	ring := func(center math.Vec3, i int) math.Vec3 {
		s, co := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		return center.Add(u.Scale(co)).Add(v.Scale(s))
	}

	out := make([]math.Vec3, 0, 4*segments+8)
	for _, center := range []math.Vec3{c.Point1, c.Point2} {
		for i := 0; i < segments; i++ {
			out = append(out, ring(center, i), ring(center, i+1))
		}
	}
	for _, offset := range []math.Vec3{u, u.Scale(-1), v, v.Scale(-1)} {
		out = append(out, c.Point1.Add(offset), c.Point2.Add(offset))
	}
	return out
}

// Flatten packs points as x, y, z triples for a vertex buffer.
func Flatten(points []math.Vec3) []float32 {
	out := make([]float32, 0, 3*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
