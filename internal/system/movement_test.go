package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
	"github.com/stretchr/testify/assert"
)

func horizontal(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

func TestMovementOppositeInputsCancel(t *testing.T) {
	a := newTestArena(t)
	p := player(a.store, mgl64.Vec3{0, 0.9, 0})
	floor(a.store)

	a.input.SetHeld(world.ActionForward, true)
	a.input.SetHeld(world.ActionBackward, true)
	a.input.SetHeld(world.ActionLeft, true)
	a.input.SetHeld(world.ActionRight, true)
	a.tick(10)

	pos := posOf(t, p)
	assert.InDelta(t, 0, pos.Vec.X(), 1e-9)
	assert.InDelta(t, 0, pos.Vec.Z(), 1e-9)
}

func TestMovementDiagonalIsNotFaster(t *testing.T) {
	straight := newTestArena(t)
	ps := player(straight.store, mgl64.Vec3{0, 0.9, 0})
	floor(straight.store)
	straight.input.SetHeld(world.ActionForward, true)
	straight.tick(1)

	diag := newTestArena(t)
	pd := player(diag.store, mgl64.Vec3{0, 0.9, 0})
	floor(diag.store)
	diag.input.SetHeld(world.ActionForward, true)
	diag.input.SetHeld(world.ActionRight, true)
	diag.tick(1)

	want := testMoveSpeed * testDT.Seconds()
	assert.InDelta(t, want, horizontal(posOf(t, ps).Vec), 1e-9)
	assert.InDelta(t, want, horizontal(posOf(t, pd).Vec), 1e-9)
	// Forward at yaw 0 is -Z, right is +X.
	assert.Less(t, posOf(t, pd).Vec.Z(), 0.0)
	assert.Greater(t, posOf(t, pd).Vec.X(), 0.0)
}

func TestMovementFollowsCameraYaw(t *testing.T) {
	a := newTestArena(t)
	p := player(a.store, mgl64.Vec3{0, 0.9, 0})
	floor(a.store)
	a.controls.Camera.Yaw = math.Pi / 2 // looking down -X

	a.input.SetHeld(world.ActionForward, true)
	a.tick(1)

	pos := posOf(t, p)
	assert.InDelta(t, -testMoveSpeed*testDT.Seconds(), pos.Vec.X(), 1e-9)
	assert.InDelta(t, 0, pos.Vec.Z(), 1e-9)
}

func TestMovementIntegratesNonPlayerVelocity(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	e := box(a.store, "drone", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.1, 0.1, 0.1}, true)
	velOf(t, e).Vec = mgl64.Vec3{10, 0, 0}

	a.tick(1)

	assert.InDelta(t, 10*testDT.Seconds(), posOf(t, e).Vec.X(), 1e-9)
	assert.InDelta(t, 5, posOf(t, e).Vec.Y(), 1e-9)
}

func TestJumpRequiresGround(t *testing.T) {
	a := newTestArena(t)
	p := player(a.store, mgl64.Vec3{0, 0.9, 0})
	floor(a.store)

	a.tick(2)
	assert.True(t, posOf(t, p).Grounded)

	a.input.SetHeld(world.ActionJump, true)
	a.tick(1)
	assert.Greater(t, velOf(t, p).Vec.Y(), 0.0)
	assert.Greater(t, posOf(t, p).Vec.Y(), 0.9)
	assert.False(t, posOf(t, p).Grounded)

	// Still rising with jump held: no second impulse.
	before := velOf(t, p).Vec.Y()
	a.tick(1)
	assert.Less(t, velOf(t, p).Vec.Y(), before)
}

func TestGravitySkipsGroundedBodies(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	e := box(a.store, "crate", mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(e, component.GravityAffected{})
	a.store.Flush()

	g := NewGravitySystem(a.store, testGravity)
	posOf(t, e).Grounded = true
	g.Update(testDT)
	assert.Zero(t, velOf(t, e).Vec.Y())

	posOf(t, e).Grounded = false
	g.Update(testDT)
	assert.InDelta(t, -testGravity*testDT.Seconds(), velOf(t, e).Vec.Y(), 1e-9)
	assert.Less(t, posOf(t, e).Vec.Y(), 10.0)
}
