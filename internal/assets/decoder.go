package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Decoder turns raw asset bytes into a mesh.
type Decoder interface {
	Decode(name string, data []byte) (*Mesh, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(name string, data []byte) (*Mesh, error)

// Decode calls f(name, data).
func (f DecoderFunc) Decode(name string, data []byte) (*Mesh, error) {
	return f(name, data)
}

// meshDescription is the YAML mesh format: either a generated cube or explicit
// positions and triangle indices.
//
//	name: crate
//	cube: [1, 1, 1]
//	subdivisions: 1
//
//	name: wedge
//	positions: [[0,0,0], [1,0,0], [0,1,0]]
//	indices: [0, 1, 2]
//	smooth: true
type meshDescription struct {
	Name         string      `yaml:"name"`
	Cube         []float32   `yaml:"cube"`
	Subdivisions int         `yaml:"subdivisions"`
	Positions    [][]float32 `yaml:"positions"`
	Indices      []uint32    `yaml:"indices"`
	Smooth       bool        `yaml:"smooth"`
}

func decodeYAML(name string, data []byte) (*Mesh, error) {
	var desc meshDescription
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMesh, err)
	}
	if desc.Name == "" {
		desc.Name = name
	}

	if desc.Cube != nil {
		if len(desc.Cube) != 3 {
			return nil, fmt.Errorf("%w: cube needs 3 dimensions, got %d", ErrInvalidMesh, len(desc.Cube))
		}
		mesh, err := GenCube(math.Vec3{X: desc.Cube[0], Y: desc.Cube[1], Z: desc.Cube[2]}, desc.Subdivisions)
		if err != nil {
			return nil, err
		}
		mesh.name = desc.Name
		return mesh, nil
	}

	vertices := make([]Vertex, len(desc.Positions))
	for i, p := range desc.Positions {
		if len(p) != 3 {
			return nil, fmt.Errorf("%w: position %d has %d components", ErrInvalidMesh, i, len(p))
		}
		vertices[i].Position = [3]float32{p[0], p[1], p[2]}
	}
	mesh, err := NewMesh(desc.Name, vertices, desc.Indices)
	if err != nil {
		return nil, err
	}
	faceNormals(mesh.vertices, mesh.indices)
	if desc.Smooth {
		smoothNormals(mesh.vertices)
	}
	return mesh, nil
}

// decoderFor picks a decoder by file extension.
func (m *Manager) decoderFor(name string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(name))
	m.mu.RLock()
	dec, ok := m.decoders[ext]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return dec, nil
}
