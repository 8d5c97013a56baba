package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/physics"
	"github.com/l1jgo/arena/internal/scripting"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// PivotID is the player's entity id. The combustion rule never fires
// against it, so the player's own projectiles cannot hurt it.
const PivotID ecs.EntityID = 0

// DamageCalculator decides how much a combustion contact hurts.
type DamageCalculator interface {
	CalcCombustionDamage(ctx scripting.DamageContext) int
}

// FixedDamage always deals the configured base damage.
type FixedDamage struct{}

func (FixedDamage) CalcCombustionDamage(ctx scripting.DamageContext) int { return ctx.BaseDamage }

// CollisionStats summarises one collision pass.
type CollisionStats struct {
	Bodies     int
	Candidates int
	Contacts   int
	Combusted  int
}

type body struct {
	e      *ecs.Entity
	pos    *component.Position
	bounds *component.Bounds
	aabb   physics.AABB
}

func (b *body) obb() physics.OBB {
	return physics.OBB{Center: b.pos.Vec, HalfExtents: b.bounds.HalfExtents, Orientation: b.bounds.Orientation}
}

type pairKey struct {
	lo, hi ecs.EntityID
}

func makePairKey(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// CollisionSystem rebuilds the broad phase and resolves overlaps.
// Phase 6 (Collision).
//
// Pairs are visited in entity insertion order, so resolution is
// reproducible: for a pair (a, b), a is always the older entity and the
// MTV points from b toward a.
type CollisionSystem struct {
	store      *ecs.Store
	grid       *world.Grid
	bus        *event.Bus
	damage     DamageCalculator
	baseDamage int
	log        *zap.Logger

	bodies    []body
	byID      map[ecs.EntityID]int
	processed map[pairKey]struct{}
	stats     CollisionStats
}

func NewCollisionSystem(store *ecs.Store, grid *world.Grid, bus *event.Bus, damage DamageCalculator, baseDamage int, log *zap.Logger) *CollisionSystem {
	if damage == nil {
		damage = FixedDamage{}
	}
	s := &CollisionSystem{
		store:      store,
		grid:       grid,
		bus:        bus,
		damage:     damage,
		baseDamage: baseDamage,
		log:        log,
		bodies:     make([]body, 0, 256),
		byID:       make(map[ecs.EntityID]int, 256),
		processed:  make(map[pairKey]struct{}, 256),
	}
	store.OnPrune(func(e *ecs.Entity) { grid.Remove(e.ID()) })
	return s
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

// Stats returns the counters from the most recent pass.
func (s *CollisionSystem) Stats() CollisionStats { return s.stats }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.stats = CollisionStats{}
	s.rebuild()
	s.resolve()
}

// rebuild clears the grid and re-inserts every collidable entity from its
// current oriented bounds.
func (s *CollisionSystem) rebuild() {
	s.grid.Clear()
	s.bodies = s.bodies[:0]
	clear(s.byID)
	ecs.Each2(s.store, func(e *ecs.Entity, pos *component.Position, bounds *component.Bounds) {
		b := body{e: e, pos: pos, bounds: bounds}
		b.aabb = b.obb().AABB()
		s.byID[e.ID()] = len(s.bodies)
		s.bodies = append(s.bodies, b)
		s.grid.Insert(e.ID(), b.aabb)
	})
	s.stats.Bodies = len(s.bodies)
}

func (s *CollisionSystem) resolve() {
	clear(s.processed)
	for i := range s.bodies {
		a := &s.bodies[i]
		for _, id := range s.grid.Query(a.aabb) {
			if id == a.e.ID() {
				continue
			}
			key := makePairKey(a.e.ID(), id)
			if _, done := s.processed[key]; done {
				continue
			}
			s.processed[key] = struct{}{}
			s.stats.Candidates++
			s.resolvePair(a, &s.bodies[s.byID[id]])
		}
	}
}

func (s *CollisionSystem) resolvePair(a, b *body) {
	if !a.e.Alive() || !b.e.Alive() {
		return
	}
	mtv, ok := physics.MTV(a.obb(), b.obb())
	if !ok {
		return
	}
	s.stats.Contacts++
	s.combust(a, b, mtv)
	separate(a, b, mtv)
}

// combust applies the combustion rule: when exactly one side is combustible
// and the other is not the pivot, the combustible side is destroyed and the
// other loses health.
func (s *CollisionSystem) combust(a, b *body, mtv mgl64.Vec3) {
	aHot := ecs.Has(a.e, component.KindCombustible)
	bHot := ecs.Has(b.e, component.KindCombustible)
	if aHot == bHot {
		return
	}
	src, dst := a, b
	if bHot {
		src, dst = b, a
	}
	if dst.e.ID() == PivotID {
		return
	}

	s.store.Destroy(src.e.ID())
	s.stats.Combusted++
	event.Emit(s.bus, event.EntityDestroyed{
		ID:       src.e.ID(),
		Tag:      src.e.Tag(),
		Cause:    event.CauseCombusted,
		Position: src.pos.Vec,
	})

	hp, ok := ecs.Get[component.Health](dst.e)
	if !ok {
		return
	}
	amount := s.damage.CalcCombustionDamage(scripting.DamageContext{
		SourceTag:     src.e.Tag(),
		TargetTag:     dst.e.Tag(),
		TargetHP:      hp.Current,
		TargetMaxHP:   hp.Max,
		BaseDamage:    s.baseDamage,
		ImpactDepth:   mtv.Len(),
		ImpactUpwards: verticalDominant(mtv),
	})
	hp.Current -= amount
	event.Emit(s.bus, event.DamageDealt{
		SourceID:  src.e.ID(),
		SourceTag: src.e.Tag(),
		TargetID:  dst.e.ID(),
		TargetTag: dst.e.Tag(),
		Amount:    amount,
		Remaining: hp.Current,
	})
	s.log.Debug("combustion",
		zap.Uint64("source", uint64(src.e.ID())),
		zap.Uint64("target", uint64(dst.e.ID())),
		zap.Int("damage", amount),
		zap.Int("hp", hp.Current),
	)
}

func verticalDominant(v mgl64.Vec3) bool {
	ay := math.Abs(v.Y())
	return ay > math.Abs(v.X()) && ay > math.Abs(v.Z())
}

// separate pushes the pair apart. mtv points from b toward a. Bodies with a
// Velocity are dynamic; a pair of statics is left alone.
func separate(a, b *body, mtv mgl64.Vec3) {
	velA, dynA := ecs.Get[component.Velocity](a.e)
	velB, dynB := ecs.Get[component.Velocity](b.e)
	vertical := verticalDominant(mtv)

	switch {
	case dynA && dynB:
		if vertical {
			// Only the body on top moves, by the full depth.
			top, vel := a, velA
			if mtv.Y() < 0 {
				top, vel = b, velB
			}
			top.pos.Vec[1] += mtv.Len()
			land(top, vel)
			return
		}
		half := mgl64.Vec3{mtv.X() * 0.5, 0, mtv.Z() * 0.5}
		a.pos.Vec = a.pos.Vec.Add(half)
		b.pos.Vec = b.pos.Vec.Sub(half)

	case dynA:
		a.pos.Vec = a.pos.Vec.Add(mtv)
		if vertical && mtv.Y() > 0 {
			land(a, velA)
		}

	case dynB:
		b.pos.Vec = b.pos.Vec.Sub(mtv)
		if vertical && mtv.Y() < 0 {
			land(b, velB)
		}
	}
}

func land(b *body, vel *component.Velocity) {
	vel.Vec[1] = 0
	b.pos.Grounded = true
}
