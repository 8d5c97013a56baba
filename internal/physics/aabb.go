package physics

import "github.com/go-gl/mathgl/mgl64"

// AABB is a world-space axis-aligned box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Overlaps reports whether the boxes intersect (touching counts).
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] < b.Min[i] || b.Max[i] < a.Min[i] {
			return false
		}
	}
	return true
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}
