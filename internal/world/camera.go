package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const maxPitch = 89 * math.Pi / 180

var up = mgl64.Vec3{0, 1, 0}

// Camera is the player's viewing direction. Yaw 0 looks down -Z.
type Camera struct {
	Yaw         float64
	Pitch       float64
	Sensitivity float64 // radians per pointer unit
}

// Apply turns the camera by a pointer delta. Pitch is clamped short of
// vertical so the horizontal projection never degenerates.
func (c *Camera) Apply(dx, dy float64) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	c.Pitch = mgl64.Clamp(c.Pitch, -maxPitch, maxPitch)
}

// Look returns the unit viewing direction including pitch.
func (c *Camera) Look() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{-math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

// Forward returns the viewing direction projected onto the horizontal plane.
func (c *Camera) Forward() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(c.Yaw), 0, -math.Cos(c.Yaw)}
}

// Right returns the horizontal unit vector to the right of Forward.
func (c *Camera) Right() mgl64.Vec3 {
	return c.Forward().Cross(up)
}

// Orientation returns the yaw-only rotation of the viewer.
func (c *Camera) Orientation() mgl64.Quat {
	return mgl64.QuatRotate(c.Yaw, up)
}

// Controls is the per-tick input view shared between the InputSystem, which
// writes it, and the movement stage, which reads it.
type Controls struct {
	Camera Camera
	Frame  InputFrame
}
