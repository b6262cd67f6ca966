package collider

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

const segmentEpsilon = 1e-12

// SegmentDistance returns the shortest distance between segments p1-q1 and p2-q2.
func SegmentDistance(p1, q1, p2, q2 math.Vec3) float32 {
	c1, c2 := ClosestPoints(p1, q1, p2, q2)
	return c1.Distance(c2)
}

// ClosestPoints returns the closest pair of points between segments p1-q1 and p2-q2,
// following Ericson, Real-Time Collision Detection, 5.1.9.
func ClosestPoints(p1, q1, p2, q2 math.Vec3) (math.Vec3, math.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float32
	switch {
	case a <= segmentEpsilon && e <= segmentEpsilon:
		return p1, p2
	case a <= segmentEpsilon:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= segmentEpsilon {
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp01((b*f - c*e) / denom)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	return p1.Add(d1.Scale(s)), p2.Add(d2.Scale(t))
}

func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}
