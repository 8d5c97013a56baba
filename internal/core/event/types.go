package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/core/ecs"
)

// ActionPhase distinguishes the press and release of a discrete action.
type ActionPhase int

const (
	ActionStart ActionPhase = iota
	ActionStop
)

// Action is a named one-shot input ("attack", "interact"...).
type Action struct {
	Name    string
	Phase   ActionPhase
	Payload any
}

// DamageDealt is emitted when the combustion rule hurts an entity.
type DamageDealt struct {
	SourceID  ecs.EntityID
	SourceTag string
	TargetID  ecs.EntityID
	TargetTag string
	Amount    int
	Remaining int
}

// DestroyCause explains why the pipeline destroyed an entity.
type DestroyCause string

const (
	CauseCombusted DestroyCause = "combusted"
	CauseExpired   DestroyCause = "expired"
	CauseKilled    DestroyCause = "killed"
)

// EntityDestroyed is emitted when a system requests destruction.
type EntityDestroyed struct {
	ID       ecs.EntityID
	Tag      string
	Cause    DestroyCause
	Position mgl64.Vec3
}
