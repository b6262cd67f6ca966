// Package assets loads meshes from disk or memory and shares them as immutable
// handles between scene objects.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-xr/internal/logger"
)

// Loader resolves meshes by path or from in-memory buffers.
type Loader interface {
	LoadFile(path string) (*Mesh, error)
	LoadMemory(name string, data []byte) (*Mesh, error)
}

var _ Loader = (*Manager)(nil)

// Manager handles mesh loading from search directories and memory buffers.
type Manager struct {
	dirs     []string
	decoders map[string]Decoder
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a manager with the built-in YAML decoder registered.
func NewManager() *Manager {
	m := &Manager{
		decoders: make(map[string]Decoder),
		cache:    NewCache(),
	}
	yamlDec := DecoderFunc(decodeYAML)
	m.RegisterDecoder(".yaml", yamlDec)
	m.RegisterDecoder(".yml", yamlDec)
	return m
}

// AddSearchDir adds a directory relative paths are resolved against.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding search dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
	return nil
}

// RegisterDecoder associates a file extension (including the dot) with a decoder.
func (m *Manager) RegisterDecoder(ext string, dec Decoder) {
	m.mu.Lock()
	m.decoders[ext] = dec
	m.mu.Unlock()
}

// LoadFile loads a mesh by path. Errors are *LoadError.
func (m *Manager) LoadFile(path string) (*Mesh, error) {
	key := "file:" + filepath.Clean(path)
	if mesh, ok := m.cache.Get(key); ok {
		return mesh, nil
	}

	dec, err := m.decoderFor(path)
	if err != nil {
		return nil, loadError(path, err)
	}

	data, err := m.read(path)
	if err != nil {
		return nil, loadError(path, err)
	}

	mesh, err := dec.Decode(path, data)
	if err != nil {
		return nil, loadError(path, err)
	}

	m.cache.Set(key, mesh)
	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(mesh.vertices)),
		zap.Int("triangles", len(mesh.indices)/3),
	)
	return mesh, nil
}

// LoadMemory decodes a mesh from an in-memory buffer. name selects the decoder by
// extension. Identical buffers share one cached mesh.
func (m *Manager) LoadMemory(name string, data []byte) (*Mesh, error) {
	if len(data) == 0 {
		return nil, loadError(name, ErrEmptyBuffer)
	}

	key := fmt.Sprintf("mem:%s:%016x", name, xxhash.Sum64(data))
	if mesh, ok := m.cache.Get(key); ok {
		return mesh, nil
	}

	dec, err := m.decoderFor(name)
	if err != nil {
		return nil, loadError(name, err)
	}

	mesh, err := dec.Decode(name, data)
	if err != nil {
		return nil, loadError(name, err)
	}

	m.cache.Set(key, mesh)
	logger.Debug("mesh decoded from memory",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
	)
	return mesh, nil
}

// Preload loads the given paths concurrently so later LoadFile calls hit the cache.
func (m *Manager) Preload(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := m.LoadFile(path)
			return err
		})
	}
	return g.Wait()
}

// Close drops all cached meshes.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache returns the manager's mesh cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

func (m *Manager) read(path string) ([]byte, error) {
	if filepath.IsAbs(path) {
		return readFile(path)
	}

	m.mu.RLock()
	dirs := append([]string(nil), m.dirs...)
	m.mu.RUnlock()

	for i := len(dirs) - 1; i >= 0; i-- {
		data, err := readFile(filepath.Join(dirs[i], path))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return readFile(path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Cache is a simple in-memory cache for loaded meshes.
type Cache struct {
	data map[string]*Mesh
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Mesh),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mesh, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return mesh, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, mesh *Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = mesh
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Mesh)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
