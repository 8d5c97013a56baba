package component

// Marker components carry no data; presence is the signal.

// PlayerControlled entities move from input instead of their velocity.
type PlayerControlled struct{}

// GravityAffected entities accelerate downward while airborne.
type GravityAffected struct{}

// Combustible entities are consumed on contact, damaging what they hit.
type Combustible struct{}

// Presentation links an entity to a visual resource owned by the presenter.
// Handle is a lookup key into the presenter's resource table, not the
// resource itself; Visual names the asset the presenter should load.
type Presentation struct {
	Handle uint32
	Visual string
}
