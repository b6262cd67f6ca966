package bounds

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

// IntersectRay clips the line origin + t*dir against the box and returns the
// entry and exit parameters. dir need not be normalized.
func (b Bounds) IntersectRay(origin, dir math.Vec3) (tmin, tmax float32, hit bool) {
	lo, hi := b.Min(), b.Max()
	tmin = -math32.MaxFloat32
	tmax = math32.MaxFloat32

	for axis := 0; axis < 3; axis++ {
		o, d := origin.Get(axis), dir.Get(axis)
		if d == 0 {
			// Parallel to this slab: must already be between its planes.
			if o < lo.Get(axis) || o > hi.Get(axis) {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo.Get(axis) - o) / d
		t2 := (hi.Get(axis) - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmax < tmin {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

// IntersectsSegment reports whether the segment p1-p2 passes through the box.
func (b Bounds) IntersectsSegment(p1, p2 math.Vec3) bool {
	if p1 == p2 {
		return b.ContainsPoint(p1)
	}
	tmin, tmax, hit := b.IntersectRay(p1, p2.Sub(p1))
	return hit && tmax >= 0 && tmin <= 1
}
