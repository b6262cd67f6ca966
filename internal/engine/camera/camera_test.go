package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

func TestPositionAtZeroAngles(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Zero
	c.Pitch, c.Yaw, c.Distance = 0, 0, 3

	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 3, p.Z, 1e-6)
}

func TestViewMatrixMapsCenterAhead(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch, c.Yaw = 0.3, 1.1

	// Camera space looks down -Z, so the orbit center sits at -Distance.
	v := c.ViewMatrix().TransformVec3(c.Center)
	assert.InDelta(t, 0, v.X, 1e-4)
	assert.InDelta(t, 0, v.Y, 1e-4)
	assert.InDelta(t, -c.Distance, v.Z, 1e-4)
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)
	c.HandleZoom(-1000)
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := bounds.Bounds{Center: math.V3(1, 2, 3), Dimensions: math.V3(2, 2, 2)}
	c.FitToBounds(b)

	assert.Equal(t, b.Center, c.Center)
	assert.Greater(t, c.Distance, b.HalfExtents().Length())
}

func TestRayThroughCenterPixel(t *testing.T) {
	c := NewOrbitCamera()
	r := c.Ray(400, 300, 800, 600)

	// The middle of the screen looks straight at the orbit center.
	toCenter := c.Center.Sub(r.Origin).Normalize()
	assert.InDelta(t, 1, r.Direction.Dot(toCenter), 1e-3)
}
