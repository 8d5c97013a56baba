package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
)

// LifespanSystem counts down lifespans and culls entities whose health ran
// out. Phase 7 (Lifespan). Destruction takes effect at the next Flush.
type LifespanSystem struct {
	store *ecs.Store
	bus   *event.Bus
}

func NewLifespanSystem(store *ecs.Store, bus *event.Bus) *LifespanSystem {
	return &LifespanSystem{store: store, bus: bus}
}

func (s *LifespanSystem) Phase() coresys.Phase { return coresys.PhaseLifespan }

func (s *LifespanSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	ecs.Each1(s.store, func(e *ecs.Entity, life *component.Lifespan) {
		life.Remaining -= secs
		if life.Remaining <= 0 {
			s.destroy(e, event.CauseExpired)
		}
	})
	ecs.Each1(s.store, func(e *ecs.Entity, hp *component.Health) {
		if hp.Current <= 0 {
			s.destroy(e, event.CauseKilled)
		}
	})
}

func (s *LifespanSystem) destroy(e *ecs.Entity, cause event.DestroyCause) {
	if !e.Alive() {
		return
	}
	var at mgl64.Vec3
	if pos, ok := ecs.Get[component.Position](e); ok {
		at = pos.Vec
	}
	s.store.Destroy(e.ID())
	event.Emit(s.bus, event.EntityDestroyed{ID: e.ID(), Tag: e.Tag(), Cause: cause, Position: at})
}
