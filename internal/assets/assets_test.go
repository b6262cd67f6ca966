package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

const crateYAML = `
name: crate
cube: [2, 1, 4]
`

const wedgeYAML = `
positions:
  - [0, 0, 0]
  - [1, 0, 0]
  - [0, 3, -1]
indices: [0, 1, 2]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestGenCubeBounds(t *testing.T) {
	for _, subd := range []int{0, 1, 3} {
		mesh, err := GenCube(math.V3(1, 2, 3), subd)
		if err != nil {
			t.Fatalf("GenCube(%d) failed: %v", subd, err)
		}
		b := mesh.Bounds()
		if b.Center != math.Zero {
			t.Errorf("subdivisions %d: center = %v, want origin", subd, b.Center)
		}
		if b.Dimensions != math.V3(1, 2, 3) {
			t.Errorf("subdivisions %d: dimensions = %v, want (1, 2, 3)", subd, b.Dimensions)
		}
		quads := (subd + 1) * (subd + 1) * 6
		if got := len(mesh.Indices()); got != quads*6 {
			t.Errorf("subdivisions %d: %d indices, want %d", subd, got, quads*6)
		}
	}
}

func TestNewMeshInvalid(t *testing.T) {
	tests := []struct {
		name     string
		vertices []Vertex
		indices  []uint32
	}{
		{"no vertices", nil, nil},
		{"partial triangle", make([]Vertex, 3), []uint32{0, 1}},
		{"index out of range", make([]Vertex, 3), []uint32{0, 1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(tt.name, tt.vertices, tt.indices)
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crate.yaml", crateYAML)

	m := NewManager()
	if err := m.AddSearchDir(dir); err != nil {
		t.Fatalf("AddSearchDir failed: %v", err)
	}

	mesh, err := m.LoadFile("crate.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if mesh.Name() != "crate" {
		t.Errorf("name = %q, want crate", mesh.Name())
	}
	if mesh.Bounds().Dimensions != math.V3(2, 1, 4) {
		t.Errorf("dimensions = %v, want (2, 1, 4)", mesh.Bounds().Dimensions)
	}

	again, err := m.LoadFile("crate.yaml")
	if err != nil {
		t.Fatalf("second LoadFile failed: %v", err)
	}
	if again != mesh {
		t.Error("second load should return the shared cached mesh")
	}
	if hits, _ := m.Cache().Stats(); hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", hits)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "positions: [[0, 0]]\n")
	writeFile(t, dir, "model.obj", "v 0 0 0\n")

	m := NewManager()
	if err := m.AddSearchDir(dir); err != nil {
		t.Fatalf("AddSearchDir failed: %v", err)
	}

	tests := []struct {
		path  string
		cause error
	}{
		{"missing.yaml", ErrNotFound},
		{"model.obj", ErrUnsupportedFormat},
		{"broken.yaml", ErrInvalidMesh},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := m.LoadFile(tt.path)
			if !errors.Is(err, ErrLoad) {
				t.Errorf("expected ErrLoad, got %v", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) || loadErr.Path != tt.path {
				t.Errorf("expected *LoadError for %s, got %v", tt.path, err)
			}
		})
	}
}

func TestLoadMemory(t *testing.T) {
	m := NewManager()

	mesh, err := m.LoadMemory("wedge.yaml", []byte(wedgeYAML))
	if err != nil {
		t.Fatalf("LoadMemory failed: %v", err)
	}
	b := mesh.Bounds()
	if b.Min() != math.V3(0, 0, -1) || b.Max() != math.V3(1, 3, 0) {
		t.Errorf("bounds = %v..%v", b.Min(), b.Max())
	}

	same, _ := m.LoadMemory("wedge.yaml", []byte(wedgeYAML))
	if same != mesh {
		t.Error("identical buffers should share a cached mesh")
	}

	if _, err := m.LoadMemory("wedge.yaml", nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected ErrEmptyBuffer, got %v", err)
	}
	if _, err := m.LoadMemory("wedge.bin", []byte{1, 2, 3}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegisterDecoder(t *testing.T) {
	m := NewManager()
	m.RegisterDecoder(".box", DecoderFunc(func(name string, data []byte) (*Mesh, error) {
		return GenCube(math.V3(float32(len(data)), 1, 1), 0)
	}))

	mesh, err := m.LoadMemory("thing.box", []byte("abc"))
	if err != nil {
		t.Fatalf("LoadMemory failed: %v", err)
	}
	if mesh.Bounds().Dimensions.X != 3 {
		t.Errorf("custom decoder not used, dimensions = %v", mesh.Bounds().Dimensions)
	}
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", crateYAML)
	b := writeFile(t, dir, "b.yaml", wedgeYAML)

	m := NewManager()
	if err := m.Preload(context.Background(), []string{a, b}); err != nil {
		t.Fatalf("Preload failed: %v", err)
	}
	if m.Cache().Len() != 2 {
		t.Errorf("expected 2 cached meshes, got %d", m.Cache().Len())
	}

	err := m.Preload(context.Background(), []string{a, filepath.Join(dir, "nope.yaml")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Preload, got %v", err)
	}
}
