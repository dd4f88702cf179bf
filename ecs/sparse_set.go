package ecs

import "slices"

// store is the type-erased view of a sparse set the world needs for entity
// destruction.
type store interface {
	remove(id entityID) bool
	has(id entityID) bool
	len() int
}

// sparseSet stores one component type keyed by entity id. Values live in a
// dense slice so iteration stays cache friendly.
type sparseSet[T any] struct {
	dense  []entityID
	owners []Entity
	values []*T
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) has(id entityID) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == id
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	if !s.has(id) {
		return nil, false
	}
	return s.values[s.sparse[id]], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := e.id()
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		idx := s.sparse[id]
		s.values[idx] = v
		s.owners[idx] = e
		return
	}
	s.dense = append(s.dense, id)
	s.owners = append(s.owners, e)
	s.values = append(s.values, v)
	s.sparse[id] = len(s.dense) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id]
	last := len(s.dense) - 1
	lastID := s.dense[last]

	s.dense[idx] = s.dense[last]
	s.owners[idx] = s.owners[last]
	s.values[idx] = s.values[last]
	s.sparse[lastID] = idx

	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[id] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}

// entities returns a sorted snapshot of the owners, safe to iterate while the
// set is mutated.
func (s *sparseSet[T]) entities() []Entity {
	out := slices.Clone(s.owners)
	slices.SortFunc(out, func(a, b Entity) int {
		return int(a.id()) - int(b.id())
	})
	return out
}
