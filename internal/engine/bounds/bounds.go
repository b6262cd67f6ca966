// Package bounds provides the axis-aligned box used for containment tests in an
// object's local space.
package bounds

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Bounds is an axis-aligned box. Dimensions are full extents, not half extents.
type Bounds struct {
	Center     math.Vec3
	Dimensions math.Vec3
}

// FromMinMax builds bounds from two opposite corners in any order.
func FromMinMax(a, b math.Vec3) Bounds {
	lo, hi := a.Min(b), a.Max(b)
	return Bounds{
		Center:     lo.Add(hi).Scale(0.5),
		Dimensions: hi.Sub(lo),
	}
}

// HalfExtents returns Dimensions / 2.
func (b Bounds) HalfExtents() math.Vec3 {
	return b.Dimensions.Scale(0.5)
}

// Min returns the lowest corner.
func (b Bounds) Min() math.Vec3 {
	return b.Center.Sub(b.HalfExtents())
}

// Max returns the highest corner.
func (b Bounds) Max() math.Vec3 {
	return b.Center.Add(b.HalfExtents())
}

// Scaled returns the bounds with center and dimensions multiplied component-wise
// by s. A negative factor mirrors the center; dimensions stay non-negative.
func (b Bounds) Scaled(s math.Vec3) Bounds {
	return Bounds{
		Center:     b.Center.Mul(s),
		Dimensions: b.Dimensions.Mul(s).Abs(),
	}
}

// ContainsPoint reports whether p is inside the box, faces included.
func (b Bounds) ContainsPoint(p math.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// ClosestPoint returns the point of the box nearest to p.
func (b Bounds) ClosestPoint(p math.Vec3) math.Vec3 {
	return p.Clamp(b.Min(), b.Max())
}

// DistanceToPoint returns the distance from p to the box, 0 when p is inside.
func (b Bounds) DistanceToPoint(p math.Vec3) float32 {
	return b.ClosestPoint(p).Distance(p)
}

// ContainsSphere reports whether a sphere touches or overlaps the box.
func (b Bounds) ContainsSphere(center math.Vec3, radius float32) bool {
	return b.DistanceToPoint(center) <= radius
}

// ContainsCapsule reports whether the capsule swept by a sphere of the given
// radius from p1 to p2 touches or overlaps the box.
func (b Bounds) ContainsCapsule(p1, p2 math.Vec3, radius float32) bool {
	if b.IntersectsSegment(p1, p2) {
		return true
	}
	dist, _ := b.SegmentDistance(p1, p2)
	return dist <= radius
}

// SegmentDistance returns the distance between the segment p1-p2 and the box,
// and the point of the segment where it is reached.
//
// Along the segment the squared distance is a piecewise quadratic whose pieces
// change only where the segment crosses a slab plane, so it is minimized exactly
// on each piece.
func (b Bounds) SegmentDistance(p1, p2 math.Vec3) (float32, math.Vec3) {
	d := p2.Sub(p1)
	if d.LengthSq() == 0 {
		return b.DistanceToPoint(p1), p1
	}
	lo, hi := b.Min(), b.Max()

	ts := []float32{0, 1}
	for axis := 0; axis < 3; axis++ {
		da := d.Get(axis)
		if da == 0 {
			continue
		}
		for _, plane := range [2]float32{lo.Get(axis), hi.Get(axis)} {
			if t := (plane - p1.Get(axis)) / da; t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	slices.Sort(ts)

	best := float32(math32.MaxFloat32)
	var bestPoint math.Vec3
	for i := 0; i+1 < len(ts); i++ {
		a, c := ts[i], ts[i+1]
		mid := p1.Add(d.Scale((a + c) / 2))

		// f(t) = qa*t^2 + qb*t + const over [a, c].
		var qa, qb float32
		for axis := 0; axis < 3; axis++ {
			m := mid.Get(axis)
			var plane float32
			switch {
			case m < lo.Get(axis):
				plane = lo.Get(axis)
			case m > hi.Get(axis):
				plane = hi.Get(axis)
			default:
				continue
			}
			da := d.Get(axis)
			qa += da * da
			qb += 2 * da * (p1.Get(axis) - plane)
		}

		t := a
		if qa > 0 {
			t = math32.Max(a, math32.Min(c, -qb/(2*qa)))
		}
		for _, cand := range [3]float32{t, a, c} {
			p := p1.Add(d.Scale(cand))
			if dist := b.DistanceToPoint(p); dist < best {
				best, bestPoint = dist, p
			}
		}
	}
	return best, bestPoint
}
