package component

import "github.com/l1jgo/arena/internal/core/ecs"

// Component kinds. Order is stable; it is the bit index in an entity's mask.
const (
	KindPosition ecs.Kind = iota
	KindVelocity
	KindBounds
	KindHealth
	KindLifespan
	KindPlayerControlled
	KindGravityAffected
	KindCombustible
	KindPresentation
)

func (Position) Kind() ecs.Kind         { return KindPosition }
func (Velocity) Kind() ecs.Kind         { return KindVelocity }
func (Bounds) Kind() ecs.Kind           { return KindBounds }
func (Health) Kind() ecs.Kind           { return KindHealth }
func (Lifespan) Kind() ecs.Kind         { return KindLifespan }
func (PlayerControlled) Kind() ecs.Kind { return KindPlayerControlled }
func (GravityAffected) Kind() ecs.Kind  { return KindGravityAffected }
func (Combustible) Kind() ecs.Kind      { return KindCombustible }
func (Presentation) Kind() ecs.Kind     { return KindPresentation }
