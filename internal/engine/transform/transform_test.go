package transform

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

const tolerance = 1e-4

// reference builds T * Rx * Ry * Rz * S with mathgl, independent of pkg/math.
func reference(p, r, s math.Vec3) math.Mat4 {
	m := mgl32.Translate3D(p.X, p.Y, p.Z).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(r.X))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(r.Y))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(r.Z))).
		Mul4(mgl32.Scale3D(s.X, s.Y, s.Z))
	return math.Mat4(m)
}

func approxMat(t *testing.T, want, got math.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tolerance, "element %d", i)
	}
}

func TestIdentity(t *testing.T) {
	tr := Identity()
	assert.Equal(t, math.Identity(), tr.Matrix())
	assert.Equal(t, math.Zero, tr.PosVec())
	assert.Equal(t, math.Zero, tr.RotationVec())
	assert.Equal(t, math.One, tr.ScaleVec())
}

func TestSettersMatchReference(t *testing.T) {
	tests := []struct {
		name    string
		p, r, s math.Vec3
	}{
		{"translation only", math.V3(1, 2, 3), math.Zero, math.One},
		{"rotation only", math.Zero, math.V3(30, 45, 60), math.One},
		{"scale only", math.Zero, math.Zero, math.V3(2, 3, 4)},
		{"full pose", math.V3(-1, 0.5, 7), math.V3(-20, 170, 95), math.V3(0.5, 1.5, 2)},
		{"negative scale", math.V3(1, 1, 1), math.V3(10, 0, 0), math.V3(-1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Identity()
			tr.SetPosVec(tt.p)
			tr.SetRotationVec(tt.r)
			tr.SetScaleVec(tt.s)
			approxMat(t, reference(tt.p, tt.r, tt.s), tr.Matrix())
		})
	}
}

func TestTupleAccessors(t *testing.T) {
	tr := Identity()
	tr.SetPos(1, 2, 3)
	tr.SetRotation(4, 5, 6)
	tr.SetScale(7, 8, 9)

	x, y, z := tr.Pos()
	assert.Equal(t, []float32{1, 2, 3}, []float32{x, y, z})
	x, y, z = tr.Rotation()
	assert.Equal(t, []float32{4, 5, 6}, []float32{x, y, z})
	x, y, z = tr.Scale()
	assert.Equal(t, []float32{7, 8, 9}, []float32{x, y, z})
}

func TestAdditiveMutators(t *testing.T) {
	tr := New(math.V3(1, 0, 0), math.V3(0, 10, 0), math.One)
	tr.Translate(1, 2, 3)
	tr.Rotate(0, 5, 90)
	tr.AddScale(0.5, 0, 0)

	assert.Equal(t, math.V3(2, 2, 3), tr.PosVec())
	assert.Equal(t, math.V3(0, 15, 90), tr.RotationVec())
	assert.Equal(t, math.V3(1.5, 1, 1), tr.ScaleVec())
	approxMat(t, reference(tr.PosVec(), tr.RotationVec(), tr.ScaleVec()), tr.Matrix())
}

func TestRotateIsComponentWise(t *testing.T) {
	// Euler addition, not quaternion composition.
	tr := Identity()
	tr.Rotate(90, 0, 0)
	tr.Rotate(0, 90, 0)

	additive := reference(math.Zero, math.V3(90, 90, 0), math.One)
	approxMat(t, additive, tr.Matrix())

	composed := math.RotateY(math.Radians(90)).Mul(math.RotateX(math.Radians(90)))
	assert.False(t, composed.ApproxEqual(tr.Matrix(), tolerance), "rotate must not compose rotations")
}

func TestSetMatrixRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rnd := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	for i := 0; i < 200; i++ {
		p := math.V3(rnd(-10, 10), rnd(-10, 10), rnd(-10, 10))
		r := math.V3(rnd(-180, 180), rnd(-89, 89), rnd(-180, 180))
		s := math.V3(rnd(0.1, 5), rnd(0.1, 5), rnd(0.1, 5))
		m := reference(p, r, s)

		tr := Identity()
		require.NoError(t, tr.SetMatrix(m))
		approxMat(t, m, tr.Matrix())

		// Fields must reproduce the same matrix when resynced.
		tr.SyncMatrix()
		approxMat(t, m, tr.Matrix())
		assert.True(t, tr.PosVec().ApproxEqual(p, tolerance))
		assert.True(t, tr.ScaleVec().ApproxEqual(s, 1e-3))
	}
}

func TestSetMatrixRejectsNonTRS(t *testing.T) {
	shear := math.Identity()
	shear[4] = 0.8
	projective := math.Identity()
	projective[3] = 0.5

	tests := []struct {
		name string
		m    math.Mat4
	}{
		{"singular", math.Scale(1, 0, 1)},
		{"shear", shear},
		{"projective", projective},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(math.V3(1, 2, 3), math.V3(10, 20, 30), math.V3(1, 2, 1))
			before := tr

			err := tr.SetMatrix(tt.m)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecomposition)

			var decompErr *DecompositionError
			require.ErrorAs(t, err, &decompErr)
			assert.Equal(t, tt.m, decompErr.Matrix)

			assert.Equal(t, before, tr, "failed SetMatrix must not modify the transform")
		})
	}
}

func TestSetMatrixKeepsFieldsAndMatrixInSync(t *testing.T) {
	m := reference(math.V3(-3, 1, 4), math.V3(25, -40, 70), math.V3(0.5, 2, 1.5))
	tr := Identity()
	require.NoError(t, tr.SetMatrix(m))

	composed := New(tr.PosVec(), tr.RotationVec(), tr.ScaleVec())
	assert.Equal(t, composed.Matrix(), tr.Matrix())
	approxMat(t, m, tr.Matrix())
}

func TestSyncMatrixIdempotent(t *testing.T) {
	tr := New(math.V3(3, -2, 1), math.V3(12, 34, 56), math.V3(1, 2, 3))
	tr.SyncMatrix()
	first := tr.Matrix()
	tr.SyncMatrix()
	assert.Equal(t, first, tr.Matrix())
}

func TestZeroScalePassesThrough(t *testing.T) {
	tr := Identity()
	tr.SetScale(0, 1, -2)
	assert.Equal(t, math.V3(0, 1, -2), tr.ScaleVec())
	approxMat(t, reference(math.Zero, math.Zero, math.V3(0, 1, -2)), tr.Matrix())
}

func TestRigidMatrixExcludesScale(t *testing.T) {
	tr := New(math.V3(1, 2, 3), math.V3(0, 45, 0), math.V3(4, 4, 4))
	approxMat(t, reference(math.V3(1, 2, 3), math.V3(0, 45, 0), math.One), tr.RigidMatrix())
}
