// Package scene holds the models of a running XR session and answers
// per-frame queries against all of them.
package scene

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/engine/bounds"
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/engine/picking"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// ID identifies a model within a scene.
type ID = uuid.UUID

// Pair is two colliding models, in insertion order.
type Pair struct {
	A, B ID
}

// Scene is an insertion-ordered set of models. It is not safe for concurrent
// use; the frame loop owns it.
type Scene struct {
	order  []ID
	models map[ID]*model.Model
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{models: make(map[ID]*model.Model)}
}

// Add inserts m and returns its new ID.
func (s *Scene) Add(m *model.Model) ID {
	id := uuid.New()
	s.order = append(s.order, id)
	s.models[id] = m
	logger.Debug("model added", zap.Stringer("id", id), zap.Int("count", len(s.order)))
	return id
}

// Remove deletes the model with the given ID. It reports whether it existed.
func (s *Scene) Remove(id ID) bool {
	if _, ok := s.models[id]; !ok {
		return false
	}
	delete(s.models, id)
	s.order = slices.DeleteFunc(s.order, func(other ID) bool { return other == id })
	logger.Debug("model removed", zap.Stringer("id", id), zap.Int("count", len(s.order)))
	return true
}

// Get returns the model with the given ID.
func (s *Scene) Get(id ID) (*model.Model, bool) {
	m, ok := s.models[id]
	return m, ok
}

// Len returns the number of models.
func (s *Scene) Len() int {
	return len(s.order)
}

// Each calls fn for every model in insertion order until fn returns false.
func (s *Scene) Each(fn func(id ID, m *model.Model) bool) {
	for _, id := range s.order {
		if !fn(id, s.models[id]) {
			return
		}
	}
}

// Frame draws every model once with its current pose.
func (s *Scene) Frame(r model.Renderer) {
	for _, id := range s.order {
		s.models[id].Draw(r)
	}
}

// PickPoint returns the models containing a world-space point.
func (s *Scene) PickPoint(p math.Vec3) []ID {
	var hits []ID
	s.Each(func(id ID, m *model.Model) bool {
		if m.Contains(p) {
			hits = append(hits, id)
		}
		return true
	})
	return hits
}

// PickCollider returns the models overlapping a world-space collider.
func (s *Scene) PickCollider(c collider.Collider) []ID {
	var hits []ID
	s.Each(func(id ID, m *model.Model) bool {
		if m.IntersectsCollider(c) {
			hits = append(hits, id)
		}
		return true
	})
	return hits
}

// PickRay returns the nearest model hit by a world-space ray.
func (s *Scene) PickRay(r picking.Ray) (id ID, t float32, ok bool) {
	s.Each(func(candidate ID, m *model.Model) bool {
		dist, hit := m.IntersectsRay(r)
		if hit && (!ok || dist < t) {
			id, t, ok = candidate, dist, true
		}
		return true
	})
	return id, t, ok
}

// Collisions returns every pair of models whose colliders overlap. Models
// without a collider are skipped.
func (s *Scene) Collisions() []Pair {
	var pairs []Pair
	for i, a := range s.order {
		for _, b := range s.order[i+1:] {
			if hit, ok := s.models[a].CollidesWith(s.models[b]); ok && hit {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}

// TranslateAll moves every listed model by d. Unknown IDs are ignored.
func (s *Scene) TranslateAll(ids []ID, d math.Vec3) {
	for _, id := range ids {
		if m, ok := s.models[id]; ok {
			m.TranslateVec(d)
		}
	}
}

// Bounds returns a box enclosing every model's world-space bounds, or false
// for an empty scene.
func (s *Scene) Bounds() (bounds.Bounds, bool) {
	if len(s.order) == 0 {
		return bounds.Bounds{}, false
	}
	lo := math.V3(1e30, 1e30, 1e30)
	hi := math.V3(-1e30, -1e30, -1e30)
	for _, id := range s.order {
		m := s.models[id]
		b := m.Bounds()
		mat := m.RigidMatrix()
		for corner := 0; corner < 8; corner++ {
			local := b.Min()
			for axis := 0; axis < 3; axis++ {
				if corner&(1<<axis) != 0 {
					local = local.With(axis, b.Max().Get(axis))
				}
			}
			p := mat.TransformVec3(local)
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	return bounds.FromMinMax(lo, hi), true
}
