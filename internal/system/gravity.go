package system

import (
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
)

// GravitySystem accelerates airborne bodies downward and integrates their
// velocity. Phase 5 (Gravity).
type GravitySystem struct {
	store   *ecs.Store
	gravity float64
}

func NewGravitySystem(store *ecs.Store, gravity float64) *GravitySystem {
	return &GravitySystem{store: store, gravity: gravity}
}

func (s *GravitySystem) Phase() coresys.Phase { return coresys.PhaseGravity }

func (s *GravitySystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	ecs.Each3(s.store, func(_ *ecs.Entity, pos *component.Position, vel *component.Velocity, _ *component.GravityAffected) {
		if pos.Grounded {
			return
		}
		vel.Vec[1] -= s.gravity * secs
		pos.Vec = pos.Vec.Add(vel.Vec.Mul(secs))
	})
}
