package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// axisEpsilon is the squared length below which a candidate axis is skipped.
const axisEpsilon = 1e-12

var unitAxes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// OBB is an oriented box: a centre, half-extents along its local axes, and a
// rotation taking local axes to world space. A zero quaternion is treated as
// the identity.
type OBB struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Orientation mgl64.Quat
}

// Axes returns the box's local X, Y and Z axes in world space.
func (o OBB) Axes() [3]mgl64.Vec3 {
	q := o.Orientation.Normalize()
	return [3]mgl64.Vec3{
		q.Rotate(unitAxes[0]),
		q.Rotate(unitAxes[1]),
		q.Rotate(unitAxes[2]),
	}
}

// AABB returns the tightest world-space axis-aligned box enclosing o.
func (o OBB) AABB() AABB {
	axes := o.Axes()
	var ext mgl64.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ext[i] += math.Abs(axes[j][i]) * o.HalfExtents[j]
		}
	}
	return AABB{Min: o.Center.Sub(ext), Max: o.Center.Add(ext)}
}

// project returns the interval covered by o on a unit axis.
func (o OBB) project(axes [3]mgl64.Vec3, axis mgl64.Vec3) (lo, hi float64) {
	r := 0.0
	for i := 0; i < 3; i++ {
		r += math.Abs(axes[i].Dot(axis)) * o.HalfExtents[i]
	}
	c := o.Center.Dot(axis)
	return c - r, c + r
}

// MTV tests a against b on the six face normals (a's three local axes, then
// b's) and returns the minimum translation vector that pushes a out of b.
// ok is false when any tested axis separates the boxes.
//
// The nine edge-edge cross-product axes of a full 3D test are not checked, so
// some rotated configurations that are actually apart report an overlap.
// Gameplay tuning depends on this exact behaviour.
func MTV(a, b OBB) (mtv mgl64.Vec3, ok bool) {
	axesA := a.Axes()
	axesB := b.Axes()
	candidates := [6]mgl64.Vec3{axesA[0], axesA[1], axesA[2], axesB[0], axesB[1], axesB[2]}

	minOverlap := math.Inf(1)
	var best mgl64.Vec3
	found := false
	for _, axis := range candidates {
		if axis.LenSqr() < axisEpsilon {
			continue
		}
		axis = axis.Normalize()
		minA, maxA := a.project(axesA, axis)
		minB, maxB := b.project(axesB, axis)
		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return mgl64.Vec3{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			best = axis
			found = true
		}
	}
	if !found {
		return mgl64.Vec3{}, false
	}

	mtv = best.Mul(minOverlap)
	if mtv.Dot(a.Center.Sub(b.Center)) < 0 {
		mtv = mtv.Mul(-1)
	}
	return mtv, true
}
