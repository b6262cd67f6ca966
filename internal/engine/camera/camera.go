// Package camera provides the desktop orbit camera used to view XR scenes
// without a headset.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/internal/engine/picking"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians, positive looks down
	Yaw      float32 // radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera sized for room-scale scenes in meters.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Center:          math.V3(0, 1, 0),
		Distance:        4,
		Pitch:           0.4,
		MinDistance:     0.5,
		MaxDistance:     50,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math.Radians(60),
		Near:            0.05,
		Far:             200,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(math.V3(cp*sy, sp, cp*cy).Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.V3(0, 1, 0))
}

// ProjectionMatrix returns the perspective projection for a viewport aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// Ray returns the world-space ray under a pixel of a width x height viewport.
func (c *OrbitCamera) Ray(x, y, width, height float32) picking.Ray {
	return picking.ScreenToRay(x, y, width, height, c.ViewProjection(width/height).Inverse())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to see all of it.
func (c *OrbitCamera) FitToBounds(b bounds.Bounds) {
	c.Center = b.Center
	radius := b.HalfExtents().Length()
	dist := radius / math32.Sin(c.FovY/2)
	c.Distance = clamp(dist, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
