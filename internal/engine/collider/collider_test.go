package collider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

func TestCapsuleCapsuleParallel(t *testing.T) {
	tests := []struct {
		name   string
		gap    float32
		radius float32
		want   bool
	}{
		{"half unit apart, radius 0.3", 0.5, 0.3, false},
		{"tenth apart, radius 0.1", 0.1, 0.1, true},
		{"touching", 0.5, 0.25, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Capsule{Point1: math.V3(0, 0, 0), Point2: math.V3(1, 0, 0), Radius: tt.radius}
			b := Capsule{Point1: math.V3(0, tt.gap, 0), Point2: math.V3(1, tt.gap, 0), Radius: tt.radius}
			assert.Equal(t, tt.want, a.Intersects(b))
			assert.Equal(t, tt.want, b.Intersects(a))
		})
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		p1, q1, p2, q2 math.Vec3
		want           float32
	}{
		{"crossing", math.V3(-1, 0, 0), math.V3(1, 0, 0), math.V3(0, -1, 0), math.V3(0, 1, 0), 0},
		{"skew", math.V3(-1, 0, 0), math.V3(1, 0, 0), math.V3(0, -1, 2), math.V3(0, 1, 2), 2},
		{"collinear gap", math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(3, 0, 0), math.V3(4, 0, 0), 2},
		{"endpoint to interior", math.V3(0, 0, 0), math.V3(0, 1, 0), math.V3(-1, 3, 0), math.V3(1, 3, 0), 2},
		{"both points", math.V3(0, 0, 0), math.V3(0, 0, 0), math.V3(0, 3, 4), math.V3(0, 3, 4), 5},
		{"point and segment", math.V3(0, 2, 0), math.V3(0, 2, 0), math.V3(-1, 0, 0), math.V3(1, 0, 0), 2},
		{"parallel offset", math.V3(0, 0, 0), math.V3(2, 0, 0), math.V3(1, 1, 0), math.V3(3, 1, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SegmentDistance(tt.p1, tt.q1, tt.p2, tt.q2), 1e-5)
			assert.InDelta(t, tt.want, SegmentDistance(tt.p2, tt.q2, tt.p1, tt.q1), 1e-5)
		})
	}
}

func TestCapsuleFromBoundsEnclosesBox(t *testing.T) {
	b := bounds.Bounds{Center: math.V3(0.5, 1, -2), Dimensions: math.V3(1, 4, 2)}
	rigid := math.FromRotationTranslation(math.QuatFromEulerXYZ(0.3, 0.5, -0.2), math.V3(3, -1, 2))
	c := CapsuleFromBounds(b, rigid)

	// Longest axis is Y.
	assert.InDelta(t, 4, c.Point1.Distance(c.Point2), 1e-5)
	assert.InDelta(t, 1.1180340, c.Radius, 1e-5)

	lo, hi := b.Min(), b.Max()
	for i := 0; i < 8; i++ {
		corner := math.V3(lo.X, lo.Y, lo.Z)
		if i&1 != 0 {
			corner.X = hi.X
		}
		if i&2 != 0 {
			corner.Y = hi.Y
		}
		if i&4 != 0 {
			corner.Z = hi.Z
		}
		world := rigid.TransformVec3(corner)
		d := SegmentDistance(c.Point1, c.Point2, world, world)
		assert.LessOrEqual(t, d, c.Radius+1e-5, "corner %v outside capsule", corner)
	}
}

func TestNew(t *testing.T) {
	b := bounds.Bounds{Dimensions: math.One}
	c, err := New(TypeCapsule, b, math.Identity())
	require.NoError(t, err)
	assert.Equal(t, TypeCapsule, c.Type())

	_, err = New(Type(42), b, math.Identity())
	assert.Error(t, err)
}

func TestIntersectsNil(t *testing.T) {
	c := Capsule{Radius: 1}
	assert.False(t, Intersects(c, nil))
	assert.False(t, Intersects(nil, c))
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "capsule", TypeCapsule.String())
	kind, err := ParseType("capsule")
	require.NoError(t, err)
	assert.Equal(t, TypeCapsule, kind)

	_, err = ParseType("sphere")
	assert.Error(t, err)
}
