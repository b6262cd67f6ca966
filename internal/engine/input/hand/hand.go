// Package hand simulates a tracked hand on desktop so containment and
// collider queries can be driven without XR hardware.
package hand

import (
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Controls is the movement requested for one frame.
type Controls struct {
	Left, Right       bool
	Forward, Backward bool
	Up, Down          bool
}

// Hand is a simulated palm with a fixed-size capsule around it.
type Hand struct {
	palm   math.Vec3
	facing math.Vec3

	// Speed is the palm speed in world units per second.
	Speed float32
	// Radius is the palm radius used for the collider.
	Radius float32
	// Length is the palm length along its facing direction.
	Length float32
}

// New creates a hand at pos moving at speed.
func New(pos math.Vec3, speed float32) *Hand {
	return &Hand{
		palm:   pos,
		facing: math.V3(0, 0, -1),
		Speed:  speed,
		Radius: 0.04,
		Length: 0.08,
	}
}

// PalmPosition returns the world-space palm center.
func (h *Hand) PalmPosition() math.Vec3 {
	return h.palm
}

// SetPalmPosition teleports the palm.
func (h *Hand) SetPalmPosition(p math.Vec3) {
	h.palm = p
}

// Facing returns the unit direction the palm points.
func (h *Hand) Facing() math.Vec3 {
	return h.facing
}

// Update moves the palm for a frame lasting dt seconds. Diagonal movement is
// normalized so it is no faster than movement along one axis.
func (h *Hand) Update(c Controls, dt float32) {
	var dir math.Vec3
	if c.Left {
		dir.X--
	}
	if c.Right {
		dir.X++
	}
	if c.Up {
		dir.Y++
	}
	if c.Down {
		dir.Y--
	}
	if c.Forward {
		dir.Z--
	}
	if c.Backward {
		dir.Z++
	}
	if dir.LengthSq() == 0 {
		return
	}
	dir = dir.Normalize()
	h.facing = dir
	h.palm = h.palm.Add(dir.Scale(h.Speed * dt))
}

// Collider returns a capsule around the palm, aligned with its facing.
func (h *Hand) Collider() collider.Capsule {
	half := h.facing.Scale(h.Length / 2)
	return collider.Capsule{
		Point1: h.palm.Sub(half),
		Point2: h.palm.Add(half),
		Radius: h.Radius,
	}
}
