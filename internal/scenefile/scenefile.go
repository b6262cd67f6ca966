// Package scenefile reads YAML scene descriptions and builds populated scenes.
//
//	objects:
//	  - name: crate
//	    mesh: {cube: [1, 1, 1]}
//	    position: [1.1, 0, 0]
//	    rotation: [0, 45, 0]
//	    tint: [1, 0.5, 0.5, 1]
//	    layers: [layer0]
//	    collider: capsule
//	  - name: statue
//	    mesh: {file: statue.yaml}
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid scene file")

// File is a scene description.
type File struct {
	Objects []Object `yaml:"objects"`
}

// Object describes one model.
type Object struct {
	Name     string    `yaml:"name"`
	Mesh     MeshRef   `yaml:"mesh"`
	Position []float32 `yaml:"position,omitempty"`
	Rotation []float32 `yaml:"rotation,omitempty"` // degrees, XYZ
	Scale    []float32 `yaml:"scale,omitempty"`
	Tint     []float32 `yaml:"tint,omitempty"` // RGBA
	Layers   []string  `yaml:"layers,omitempty"`
	Collider string    `yaml:"collider,omitempty"`
}

// MeshRef names a mesh: either a procedural cube or an asset path.
type MeshRef struct {
	Cube         []float32 `yaml:"cube,omitempty"`
	Subdivisions int       `yaml:"subdivisions,omitempty"`
	File         string    `yaml:"file,omitempty"`
}

// Load reads and parses a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a scene description. Unknown keys are errors.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names, vector lengths, meshes, layers and collider kinds.
func (f *File) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, o := range f.Objects {
		where := fmt.Sprintf("object %d", i)
		if o.Name != "" {
			where = fmt.Sprintf("object %q", o.Name)
			if seen[o.Name] {
				errs = append(errs, fmt.Errorf("%w: %s: duplicate name", ErrInvalid, where))
			}
			seen[o.Name] = true
		}
		vectors := []struct {
			field string
			v     []float32
		}{{"position", o.Position}, {"rotation", o.Rotation}, {"scale", o.Scale}, {"cube", o.Mesh.Cube}}
		for _, vv := range vectors {
			if vv.v != nil && len(vv.v) != 3 {
				errs = append(errs, fmt.Errorf("%w: %s: %s needs 3 components, got %d", ErrInvalid, where, vv.field, len(vv.v)))
			}
		}
		if o.Tint != nil && len(o.Tint) != 4 {
			errs = append(errs, fmt.Errorf("%w: %s: tint needs 4 components, got %d", ErrInvalid, where, len(o.Tint)))
		}
		if (o.Mesh.Cube == nil) == (o.Mesh.File == "") {
			errs = append(errs, fmt.Errorf("%w: %s: mesh needs exactly one of cube or file", ErrInvalid, where))
		}
		if _, err := model.ParseLayers(o.Layers); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalid, where, err))
		}
		if o.Collider != "" {
			if _, err := collider.ParseType(o.Collider); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalid, where, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Build creates a scene holding one model per object. Named objects are
// returned in the ID map. Mesh errors from loader are returned as is, so
// callers can match *assets.LoadError.
func (f *File) Build(loader assets.Loader) (*scene.Scene, map[string]scene.ID, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}
	s := scene.New()
	ids := make(map[string]scene.ID)
	cubes := make(map[[4]float32]*assets.Mesh)

	for i, o := range f.Objects {
		mesh, err := o.mesh(loader, cubes)
		if err != nil {
			return nil, nil, fmt.Errorf("object %d: %w", i, err)
		}
		m, err := model.FromMesh(mesh)
		if err != nil {
			return nil, nil, fmt.Errorf("object %d: %w", i, err)
		}
		if err := o.apply(m); err != nil {
			return nil, nil, fmt.Errorf("object %d: %w", i, err)
		}

		id := s.Add(m)
		if o.Name != "" {
			ids[o.Name] = id
		}
	}

	logger.Info("scene built", zap.Int("objects", s.Len()), zap.Int("shared_cubes", len(cubes)))
	return s, ids, nil
}

func (o Object) mesh(loader assets.Loader, cubes map[[4]float32]*assets.Mesh) (*assets.Mesh, error) {
	if o.Mesh.File != "" {
		return loader.LoadFile(o.Mesh.File)
	}
	key := [4]float32{o.Mesh.Cube[0], o.Mesh.Cube[1], o.Mesh.Cube[2], float32(o.Mesh.Subdivisions)}
	if mesh, ok := cubes[key]; ok {
		return mesh, nil
	}
	mesh, err := assets.GenCube(vec(o.Mesh.Cube, math.One), o.Mesh.Subdivisions)
	if err != nil {
		return nil, err
	}
	cubes[key] = mesh
	return mesh, nil
}

func (o Object) apply(m *model.Model) error {
	m.SetPosVec(vec(o.Position, math.Zero))
	m.SetRotationVec(vec(o.Rotation, math.Zero))
	m.SetScaleVec(vec(o.Scale, math.One))
	if o.Tint != nil {
		m.Tint = model.Color{R: o.Tint[0], G: o.Tint[1], B: o.Tint[2], A: o.Tint[3]}
	}
	if len(o.Layers) > 0 {
		layers, err := model.ParseLayers(o.Layers)
		if err != nil {
			return err
		}
		m.Layer = layers
	}
	if o.Collider != "" {
		kind, err := collider.ParseType(o.Collider)
		if err != nil {
			return err
		}
		if err := m.SetCollider(kind); err != nil {
			return err
		}
	}
	return nil
}

func vec(v []float32, def math.Vec3) math.Vec3 {
	if v == nil {
		return def
	}
	return math.V3(v[0], v[1], v[2])
}
