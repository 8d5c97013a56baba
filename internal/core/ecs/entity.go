package ecs

import "github.com/TheBitDrifter/mask"

// EntityID is assigned from a monotonically increasing counter and never reused.
// ID 0 is the first entity created by a store (the arena spawns the player first).
type EntityID uint64

// Entity is an identity plus a component bag. Only Store.Create makes them.
type Entity struct {
	id    EntityID
	tag   string
	alive bool
	mask  mask.Mask
	comps [MaxKinds]any
}

func (e *Entity) ID() EntityID    { return e.id }
func (e *Entity) Tag() string     { return e.tag }
func (e *Entity) Alive() bool     { return e.alive }
func (e *Entity) Mask() mask.Mask { return e.mask }

// kill flips the alive flag. Reports false if the entity was already dead.
func (e *Entity) kill() bool {
	if !e.alive {
		return false
	}
	e.alive = false
	return true
}
