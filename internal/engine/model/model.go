// Package model provides the scene object: a shared renderable asset placed in
// the world by a Transform, with tint, render layer and an optional collider.
package model

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/internal/engine/picking"
	"github.com/Faultbox/midgard-xr/internal/engine/transform"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// ErrNilAsset is returned when a model is created without an asset.
var ErrNilAsset = errors.New("model: nil asset")

// Asset is a shared, immutable renderable handle. Its bounds are in local,
// unscaled space.
type Asset interface {
	Bounds() bounds.Bounds
}

// Renderer draws an asset with a world matrix, tint and layer mask. The model
// hands over copies; the renderer never mutates model state.
type Renderer interface {
	DrawModel(asset Asset, matrix math.Mat4, tint Color, layer Layer)
}

// Model is an asset placed in the scene.
type Model struct {
	transform.Transform

	Tint  Color
	Layer Layer

	asset    Asset
	collider collider.Collider
}

// New creates a model at the origin with unit scale, white tint and the default
// layer. It has no collider until SetCollider is called.
func New(asset Asset) (*Model, error) {
	if asset == nil {
		return nil, fmt.Errorf("%w: %w", assets.ErrLoad, ErrNilAsset)
	}
	return &Model{
		Transform: transform.Identity(),
		Tint:      White,
		Layer:     LayerDefault,
		asset:     asset,
	}, nil
}

// FromMesh creates a model backed by an already loaded mesh.
func FromMesh(mesh *assets.Mesh) (*Model, error) {
	if mesh == nil {
		return New(nil)
	}
	return New(mesh)
}

// FromFile loads the mesh at path through loader and wraps it in a model.
func FromFile(loader assets.Loader, path string) (*Model, error) {
	mesh, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(mesh)
}

// FromMemory decodes name/data through loader and wraps the mesh in a model.
func FromMemory(loader assets.Loader, name string, data []byte) (*Model, error) {
	mesh, err := loader.LoadMemory(name, data)
	if err != nil {
		return nil, err
	}
	return New(mesh)
}

// Asset returns the shared asset handle.
func (m *Model) Asset() Asset {
	return m.asset
}

// Draw submits the model to r once with its current matrix, tint and layer.
func (m *Model) Draw(r Renderer) {
	r.DrawModel(m.asset, m.Matrix(), m.Tint, m.Layer)
}

// Bounds returns the asset bounds with center and dimensions multiplied by the
// current scale.
func (m *Model) Bounds() bounds.Bounds {
	return m.asset.Bounds().Scaled(m.ScaleVec())
}

// Contains reports whether a world-space point lies inside the model. The point
// is mapped through the full inverse matrix, scale included, and tested against
// the scaled bounds. A singular matrix contains nothing.
func (m *Model) Contains(p math.Vec3) bool {
	inv, ok := m.Matrix().Invert()
	if !ok {
		return false
	}
	return m.Bounds().ContainsPoint(inv.TransformVec3(p))
}

// IntersectsCollider reports whether a world-space collider overlaps the model.
// Colliders are already in world-scaled units, so only rotation and
// translation are undone.
func (m *Model) IntersectsCollider(c collider.Collider) bool {
	if c == nil {
		return false
	}
	inv, ok := m.RigidMatrix().Invert()
	if !ok {
		return false
	}
	switch c := c.(type) {
	case collider.Capsule:
		return m.Bounds().ContainsCapsule(inv.TransformVec3(c.Point1), inv.TransformVec3(c.Point2), c.Radius)
	default:
		return false
	}
}

// IntersectsRay casts a world-space ray against the model. The returned
// distance is in world units.
func (m *Model) IntersectsRay(r picking.Ray) (t float32, hit bool) {
	inv, ok := m.RigidMatrix().Invert()
	if !ok {
		return 0, false
	}
	return r.Transform(inv).IntersectBounds(m.Bounds())
}

// SetCollider builds a collider of the given kind around the current pose,
// replacing any existing one.
func (m *Model) SetCollider(kind collider.Type) error {
	c, err := collider.New(kind, m.Bounds(), m.RigidMatrix())
	if err != nil {
		return err
	}
	m.collider = c
	logger.Debug("collider set",
		zap.Stringer("type", kind),
		zap.Float32("x", m.PosVec().X),
		zap.Float32("y", m.PosVec().Y),
		zap.Float32("z", m.PosVec().Z),
	)
	return nil
}

// Collider returns the model's collider rebuilt for the current pose, or false
// if none was set. The rebuilt collider replaces the stored one.
func (m *Model) Collider() (collider.Collider, bool) {
	if m.collider == nil {
		return nil, false
	}
	c, err := collider.New(m.collider.Type(), m.Bounds(), m.RigidMatrix())
	if err != nil {
		return nil, false
	}
	m.collider = c
	return c, true
}

// HasCollider reports whether a collider is set.
func (m *Model) HasCollider() bool {
	return m.collider != nil
}

// ClearCollider removes the collider.
func (m *Model) ClearCollider() {
	m.collider = nil
}

// CollidesWith tests the colliders of m and other against each other. ok is
// false when either model has no collider.
func (m *Model) CollidesWith(other *Model) (hit, ok bool) {
	a, ok := m.Collider()
	if !ok {
		return false, false
	}
	b, ok := other.Collider()
	if !ok {
		return false, false
	}
	return collider.Intersects(a, b), true
}
