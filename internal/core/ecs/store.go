package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// Store owns every entity. Structural changes are buffered: creations sit in a
// pending queue and destructions in a destroy queue until Flush, which the
// FlushSystem runs exactly once at the start of each tick. Queries only ever
// see the live list, so systems can create and destroy while iterating.
//
// Accessed only from the game loop goroutine ; no locks.
type Store struct {
	nextID EntityID

	live  []*Entity
	index map[EntityID]*Entity
	tags  *TagIndex

	pendingCreate  []*Entity
	pendingIndex   map[EntityID]*Entity
	pendingDestroy []EntityID

	pruneHooks []func(*Entity)
	log        *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		live:           make([]*Entity, 0, 256),
		index:          make(map[EntityID]*Entity, 256),
		tags:           NewTagIndex(),
		pendingCreate:  make([]*Entity, 0, 32),
		pendingIndex:   make(map[EntityID]*Entity, 32),
		pendingDestroy: make([]EntityID, 0, 32),
		log:            log,
	}
}

// Create returns a usable handle immediately. The entity joins query results
// at the next Flush.
func (s *Store) Create(tag string) *Entity {
	e := &Entity{id: s.nextID, tag: tag, alive: true}
	s.nextID++
	s.pendingCreate = append(s.pendingCreate, e)
	s.pendingIndex[e.id] = e
	return e
}

// Destroy marks the entity dead now and queues it for pruning at the next
// Flush. Unknown or already-dead ids are ignored.
func (s *Store) Destroy(id EntityID) {
	e, ok := s.index[id]
	if !ok {
		e, ok = s.pendingIndex[id]
	}
	if !ok || !e.kill() {
		return
	}
	s.pendingDestroy = append(s.pendingDestroy, id)
}

// OnPrune registers fn to run for every entity removed by Flush.
func (s *Store) OnPrune(fn func(*Entity)) {
	s.pruneHooks = append(s.pruneHooks, fn)
}

// Flush applies buffered creations in creation order, then prunes dead
// entities from the live list and the tag index.
func (s *Store) Flush() {
	for _, e := range s.pendingCreate {
		if _, dup := s.index[e.id]; dup {
			panic(fmt.Sprintf("ecs: duplicate entity id %d", e.id))
		}
		s.index[e.id] = e
		s.live = append(s.live, e)
		s.tags.Add(e)
	}
	clear(s.pendingCreate)
	s.pendingCreate = s.pendingCreate[:0]
	clear(s.pendingIndex)

	if len(s.pendingDestroy) == 0 {
		return
	}
	pruned := len(s.pendingDestroy)
	n := 0
	for _, e := range s.live {
		if e.alive {
			s.live[n] = e
			n++
			continue
		}
		delete(s.index, e.id)
		s.tags.Remove(e)
		for _, fn := range s.pruneHooks {
			fn(e)
		}
	}
	clear(s.live[n:])
	s.live = s.live[:n]
	s.pendingDestroy = s.pendingDestroy[:0]

	if s.log != nil {
		s.log.Debug("entities pruned", zap.Int("count", pruned), zap.Int("live", n))
	}
}

// QueryAll returns live entities carrying every listed kind, in insertion
// order. With no kinds it returns every live entity.
func (s *Store) QueryAll(kinds ...Kind) []*Entity {
	want := MaskOf(kinds...)
	out := make([]*Entity, 0, len(s.live))
	for _, e := range s.live {
		if e.mask.ContainsAll(want) {
			out = append(out, e)
		}
	}
	return out
}

// ByID looks up a live (flushed, not yet pruned) entity. Destroyed entities
// remain reachable with Alive()==false until the next Flush.
func (s *Store) ByID(id EntityID) (*Entity, bool) {
	e, ok := s.index[id]
	return e, ok
}

// ByTag returns the live entities with tag, in insertion order.
func (s *Store) ByTag(tag string) []*Entity {
	return s.tags.Get(tag)
}

// Len returns the number of live entities.
func (s *Store) Len() int { return len(s.live) }

// Pending returns the number of buffered creations and destructions.
func (s *Store) Pending() (creates, destroys int) {
	return len(s.pendingCreate), len(s.pendingDestroy)
}
