// Package transform keeps an object's position, Euler rotation and scale in sync
// with the affine matrix the renderer consumes.
package transform

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

// ErrDecomposition is returned when a matrix has no scale/rotation/translation split.
var ErrDecomposition = errors.New("matrix is not decomposable")

// DecompositionError carries the matrix SetMatrix refused.
type DecompositionError struct {
	Matrix math.Mat4
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("%v: singular linear part (det=%g)", ErrDecomposition, e.Matrix.Determinant3x3())
}

func (e *DecompositionError) Unwrap() error {
	return ErrDecomposition
}

// Transformer is the pose capability set shared by everything that owns a Transform.
type Transformer interface {
	Matrix() math.Mat4
	SetMatrix(m math.Mat4) error

	Pos() (x, y, z float32)
	PosVec() math.Vec3
	SetPos(x, y, z float32)
	SetPosVec(p math.Vec3)
	Translate(x, y, z float32)
	TranslateVec(d math.Vec3)

	Rotation() (x, y, z float32)
	RotationVec() math.Vec3
	SetRotation(x, y, z float32)
	SetRotationVec(r math.Vec3)
	Rotate(x, y, z float32)
	RotateVec(d math.Vec3)

	Scale() (x, y, z float32)
	ScaleVec() math.Vec3
	SetScale(x, y, z float32)
	SetScaleVec(s math.Vec3)
	AddScale(x, y, z float32)
	AddScaleVec(d math.Vec3)
}

// Transform is a pose stored both as fields and as the composed matrix
// T * R * S. The two forms agree whenever a method returns.
//
// Rotation is XYZ Euler angles in degrees. Rotate adds angles component-wise
// instead of composing rotations, so repeated rotation about non-aligned axes
// can gimbal-lock; callers depend on that behavior.
type Transform struct {
	matrix   math.Mat4
	position math.Vec3
	rotation math.Vec3
	scale    math.Vec3
}

// New creates a transform from an initial pose.
func New(pos, rot, scale math.Vec3) Transform {
	t := Transform{position: pos, rotation: rot, scale: scale}
	t.SyncMatrix()
	return t
}

// Identity returns a transform at the origin with no rotation and unit scale.
func Identity() Transform {
	return New(math.Zero, math.Zero, math.One)
}

// SyncMatrix rebuilds the matrix from position, rotation and scale.
func (t *Transform) SyncMatrix() {
	t.matrix = math.FromScaleRotationTranslation(t.scale, t.quat(), t.position)
}

// SyncFields rebuilds position, rotation and scale from the matrix, then
// recomposes the matrix from them so both forms agree exactly. Matrices with
// shear or a projective row are rejected. On failure nothing is changed.
func (t *Transform) SyncFields() error {
	scale, rot, pos, ok := t.matrix.Decompose()
	if !ok {
		return &DecompositionError{Matrix: t.matrix}
	}
	x, y, z := rot.EulerXYZ()
	t.scale = scale
	t.position = pos
	t.rotation = math.Vec3{X: math.Degrees(x), Y: math.Degrees(y), Z: math.Degrees(z)}
	t.SyncMatrix()
	return nil
}

func (t *Transform) quat() math.Quat {
	return math.QuatFromEulerXYZ(
		math.Radians(t.rotation.X),
		math.Radians(t.rotation.Y),
		math.Radians(t.rotation.Z),
	)
}

// Matrix returns the composed affine matrix.
func (t *Transform) Matrix() math.Mat4 {
	return t.matrix
}

// RigidMatrix returns the rotation and translation part of the pose, without scale.
func (t *Transform) RigidMatrix() math.Mat4 {
	return math.FromRotationTranslation(t.quat(), t.position)
}

// SetMatrix replaces the matrix and derives the fields from it. A matrix with a
// singular linear part is rejected and the transform is left untouched.
func (t *Transform) SetMatrix(m math.Mat4) error {
	next := *t
	next.matrix = m
	if err := next.SyncFields(); err != nil {
		return err
	}
	*t = next
	return nil
}

// Pos returns the position components.
func (t *Transform) Pos() (x, y, z float32) {
	return t.position.X, t.position.Y, t.position.Z
}

// PosVec returns the position.
func (t *Transform) PosVec() math.Vec3 {
	return t.position
}

// SetPos sets the position.
func (t *Transform) SetPos(x, y, z float32) {
	t.SetPosVec(math.Vec3{X: x, Y: y, Z: z})
}

// SetPosVec sets the position.
func (t *Transform) SetPosVec(p math.Vec3) {
	t.position = p
	t.SyncMatrix()
}

// Translate moves the position by the given offset.
func (t *Transform) Translate(x, y, z float32) {
	t.TranslateVec(math.Vec3{X: x, Y: y, Z: z})
}

// TranslateVec moves the position by d.
func (t *Transform) TranslateVec(d math.Vec3) {
	t.position = t.position.Add(d)
	t.SyncMatrix()
}

// Rotation returns the Euler angles in degrees.
func (t *Transform) Rotation() (x, y, z float32) {
	return t.rotation.X, t.rotation.Y, t.rotation.Z
}

// RotationVec returns the Euler angles in degrees.
func (t *Transform) RotationVec() math.Vec3 {
	return t.rotation
}

// SetRotation sets the Euler angles in degrees.
func (t *Transform) SetRotation(x, y, z float32) {
	t.SetRotationVec(math.Vec3{X: x, Y: y, Z: z})
}

// SetRotationVec sets the Euler angles in degrees.
func (t *Transform) SetRotationVec(r math.Vec3) {
	t.rotation = r
	t.SyncMatrix()
}

// Rotate adds the given degrees to each Euler angle.
func (t *Transform) Rotate(x, y, z float32) {
	t.RotateVec(math.Vec3{X: x, Y: y, Z: z})
}

// RotateVec adds d degrees to each Euler angle.
func (t *Transform) RotateVec(d math.Vec3) {
	t.rotation = t.rotation.Add(d)
	t.SyncMatrix()
}

// Scale returns the scale components.
func (t *Transform) Scale() (x, y, z float32) {
	return t.scale.X, t.scale.Y, t.scale.Z
}

// ScaleVec returns the scale.
func (t *Transform) ScaleVec() math.Vec3 {
	return t.scale
}

// SetScale sets the scale. Zero and negative components are kept as given.
func (t *Transform) SetScale(x, y, z float32) {
	t.SetScaleVec(math.Vec3{X: x, Y: y, Z: z})
}

// SetScaleVec sets the scale.
func (t *Transform) SetScaleVec(s math.Vec3) {
	t.scale = s
	t.SyncMatrix()
}

// AddScale adds the given amounts to the scale (not a multiplication).
func (t *Transform) AddScale(x, y, z float32) {
	t.AddScaleVec(math.Vec3{X: x, Y: y, Z: z})
}

// AddScaleVec adds d to the scale.
func (t *Transform) AddScaleVec(d math.Vec3) {
	t.scale = t.scale.Add(d)
	t.SyncMatrix()
}

var _ Transformer = (*Transform)(nil)
