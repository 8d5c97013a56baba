package component

import "github.com/go-gl/mathgl/mgl64"

// Position is the world-space centre of an entity.
// Grounded is derived each tick by collision resolution.
type Position struct {
	Vec      mgl64.Vec3
	Grounded bool
}

// Velocity is in world units per second.
type Velocity struct {
	Vec mgl64.Vec3
}

// Bounds describes an oriented box centred on the entity's Position.
type Bounds struct {
	HalfExtents mgl64.Vec3
	Orientation mgl64.Quat
}
