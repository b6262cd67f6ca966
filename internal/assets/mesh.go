package assets

import (
	"fmt"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh is an immutable triangle mesh. A single *Mesh may back any number of
// scene objects; nothing mutates it after construction.
type Mesh struct {
	name     string
	vertices []Vertex
	indices  []uint32
	bounds   bounds.Bounds
}

// NewMesh validates the index buffer and computes the bounding box.
func NewMesh(name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: mesh %q has no vertices", ErrInvalidMesh, name)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: mesh %q index count %d is not a multiple of 3", ErrInvalidMesh, name, len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: mesh %q index %d out of range", ErrInvalidMesh, name, idx)
		}
	}

	lo := math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	hi := math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}
	for i := range vertices {
		p := vertices[i].Position
		v := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
		lo = lo.Min(v)
		hi = hi.Max(v)
	}

	return &Mesh{
		name:     name,
		vertices: vertices,
		indices:  indices,
		bounds:   bounds.FromMinMax(lo, hi),
	}, nil
}

// Name returns the name the mesh was loaded or generated under.
func (m *Mesh) Name() string { return m.name }

// Bounds returns the local-space bounding box.
func (m *Mesh) Bounds() bounds.Bounds { return m.bounds }

// Vertices returns the vertex buffer. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Indices returns the index buffer. Callers must not modify it.
func (m *Mesh) Indices() []uint32 { return m.indices }

// cubeFaces lists each face as normal, u axis, v axis.
var cubeFaces = [6][3]math.Vec3{
	{{X: 1}, {Z: -1}, {Y: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {X: 1}, {Z: -1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {X: -1}, {Y: 1}},
}

// GenCube generates a box centered on the origin with the given full dimensions.
// Each face is split into (subdivisions+1)^2 quads.
func GenCube(dimensions math.Vec3, subdivisions int) (*Mesh, error) {
	if subdivisions < 0 {
		subdivisions = 0
	}
	n := subdivisions + 1
	half := dimensions.Scale(0.5)

	var vertices []Vertex
	var indices []uint32
	for _, face := range cubeFaces {
		normal, u, v := face[0], face[1], face[2]
		base := uint32(len(vertices))
		for j := 0; j <= n; j++ {
			for i := 0; i <= n; i++ {
				fu := float32(i)/float32(n)*2 - 1
				fv := float32(j)/float32(n)*2 - 1
				p := normal.Add(u.Scale(fu)).Add(v.Scale(fv)).Mul(half)
				vertices = append(vertices, Vertex{
					Position: p.Array(),
					Normal:   normal.Array(),
					TexCoord: [2]float32{float32(i) / float32(n), 1 - float32(j)/float32(n)},
				})
			}
		}
		row := uint32(n + 1)
		for j := uint32(0); j < uint32(n); j++ {
			for i := uint32(0); i < uint32(n); i++ {
				a := base + j*row + i
				indices = append(indices, a, a+1, a+row+1, a, a+row+1, a+row)
			}
		}
	}

	name := fmt.Sprintf("cube(%g,%g,%g)", dimensions.X, dimensions.Y, dimensions.Z)
	return NewMesh(name, vertices, indices)
}
