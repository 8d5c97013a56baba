package system

import (
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// MovementSystem resets grounded flags and integrates movement.
// Phase 4 (Movement).
//
// Player-controlled entities move from input along the camera's horizontal
// basis at a fixed speed; everything else with a velocity moves by it.
// Jumping reads the grounded flag left by the previous tick's collision pass.
type MovementSystem struct {
	store        *ecs.Store
	controls     *world.Controls
	moveSpeed    float64
	jumpStrength float64
}

func NewMovementSystem(store *ecs.Store, controls *world.Controls, moveSpeed, jumpStrength float64) *MovementSystem {
	return &MovementSystem{
		store:        store,
		controls:     controls,
		moveSpeed:    moveSpeed,
		jumpStrength: jumpStrength,
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	frame := s.controls.Frame
	cam := &s.controls.Camera

	ecs.Each2(s.store, func(e *ecs.Entity, pos *component.Position, vel *component.Velocity) {
		wasGrounded := pos.Grounded
		pos.Grounded = false

		if !ecs.Has(e, component.KindPlayerControlled) {
			pos.Vec = pos.Vec.Add(vel.Vec.Mul(secs))
			return
		}

		dir := cam.Forward().Mul(frame.Axis(world.ActionForward, world.ActionBackward)).
			Add(cam.Right().Mul(frame.Axis(world.ActionRight, world.ActionLeft)))
		if dir.LenSqr() > 0 {
			dir = dir.Normalize()
		}
		pos.Vec = pos.Vec.Add(dir.Mul(s.moveSpeed * secs))

		if wasGrounded && frame.IsHeld(world.ActionJump) {
			vel.Vec[1] = s.jumpStrength
		}
	})
}
