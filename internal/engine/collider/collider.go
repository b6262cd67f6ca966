// Package collider provides the shapes scene objects use for intersection tests.
package collider

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Type identifies a collider shape.
type Type uint8

const (
	// TypeCapsule is a swept sphere, see Capsule.
	TypeCapsule Type = iota
)

// String returns the shape name used in scene files.
func (t Type) String() string {
	switch t {
	case TypeCapsule:
		return "capsule"
	default:
		return fmt.Sprintf("collider(%d)", uint8(t))
	}
}

// ParseType converts a shape name back to its Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "capsule":
		return TypeCapsule, nil
	default:
		return 0, fmt.Errorf("unknown collider type %q", name)
	}
}

// Collider is a world-space shape. The set of implementations is closed to this
// package; new shapes add a Type and a case in Intersects.
type Collider interface {
	Type() Type
	Intersects(other Collider) bool
	sealed()
}

// Capsule is a sphere of Radius swept along the segment Point1-Point2.
type Capsule struct {
	Point1 math.Vec3
	Point2 math.Vec3
	Radius float32
}

// Type returns TypeCapsule.
func (Capsule) Type() Type { return TypeCapsule }

// Intersects reports whether c overlaps other. See the package-level Intersects.
func (c Capsule) Intersects(other Collider) bool { return Intersects(c, other) }

func (Capsule) sealed() {}

// CapsuleFromBounds returns a capsule enclosing b. The core segment spans the
// longest axis of the box and the radius is the circumradius of the box's
// cross-section, so every corner of b lies inside. rigid maps the box's space
// to world space and must not carry scale.
func CapsuleFromBounds(b bounds.Bounds, rigid math.Mat4) Capsule {
	h := b.HalfExtents()
	axis := 0
	if h.Y > h.Get(axis) {
		axis = 1
	}
	if h.Z > h.Get(axis) {
		axis = 2
	}

	var cross float32
	for i := 0; i < 3; i++ {
		if i != axis {
			cross += h.Get(i) * h.Get(i)
		}
	}

	offset := math.Vec3{}.With(axis, h.Get(axis))
	return Capsule{
		Point1: rigid.TransformVec3(b.Center.Sub(offset)),
		Point2: rigid.TransformVec3(b.Center.Add(offset)),
		Radius: math32.Sqrt(cross),
	}
}

// New builds a collider of the given type around b.
func New(kind Type, b bounds.Bounds, rigid math.Mat4) (Collider, error) {
	switch kind {
	case TypeCapsule:
		return CapsuleFromBounds(b, rigid), nil
	default:
		return nil, fmt.Errorf("unsupported collider type %v", kind)
	}
}

// Intersects reports whether two colliders overlap. Pairs without a test
// report false.
func Intersects(a, b Collider) bool {
	if a == nil || b == nil {
		return false
	}
	switch a := a.(type) {
	case Capsule:
		switch b := b.(type) {
		case Capsule:
			return SegmentDistance(a.Point1, a.Point2, b.Point1, b.Point2) <= a.Radius+b.Radius
		}
	}
	return false
}
