package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

func TestUpdateMovesPalm(t *testing.T) {
	tests := []struct {
		name     string
		controls Controls
		want     math.Vec3
	}{
		{"idle", Controls{}, math.V3(0, 1, 0)},
		{"right", Controls{Right: true}, math.V3(2, 1, 0)},
		{"forward", Controls{Forward: true}, math.V3(0, 1, -2)},
		{"up and down cancel", Controls{Up: true, Down: true}, math.V3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(math.V3(0, 1, 0), 4)
			h.Update(tt.controls, 0.5)
			got := h.PalmPosition()
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-6)
		})
	}
}

func TestDiagonalIsNormalized(t *testing.T) {
	h := New(math.Zero, 1)
	h.Update(Controls{Right: true, Up: true}, 1)
	assert.InDelta(t, 1, h.PalmPosition().Length(), 1e-5)
}

func TestColliderFollowsFacing(t *testing.T) {
	h := New(math.V3(1, 0, 0), 1)
	h.Update(Controls{Right: true}, 0)

	c := h.Collider()
	assert.Equal(t, float32(0.04), c.Radius)
	assert.InDelta(t, 0.96, c.Point1.X, 1e-6)
	assert.InDelta(t, 1.04, c.Point2.X, 1e-6)
	assert.Equal(t, math.V3(1, 0, 0), h.Facing())
}
