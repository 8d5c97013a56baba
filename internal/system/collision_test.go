package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	"github.com/l1jgo/arena/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestingBodyStaysOnStaticBlock(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	floor(a.store)
	crate := box(a.store, "crate", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(crate, component.GravityAffected{})

	a.tick(120)

	pos := posOf(t, crate)
	assert.True(t, pos.Grounded)
	assert.Zero(t, velOf(t, crate).Vec.Y())
	assert.InDelta(t, 0.5, pos.Vec.Y(), 1e-9)
}

func TestFallingBodyLandsOnTop(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	floor(a.store)
	crate := box(a.store, "crate", mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(crate, component.GravityAffected{})

	a.tick(200)

	pos := posOf(t, crate)
	assert.True(t, pos.Grounded)
	assert.InDelta(t, 0.5, pos.Vec.Y(), 1e-9)
}

func TestCombustionDamagesAndDestroys(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	fire := box(a.store, "projectile", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(fire, component.Combustible{})
	target := box(a.store, "barrel", mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, false)
	ecs.Set(target, component.Health{Current: 100, Max: 100})

	var damaged []event.DamageDealt
	var destroyed []event.EntityDestroyed
	event.Subscribe(a.bus, func(ev event.DamageDealt) { damaged = append(damaged, ev) })
	event.Subscribe(a.bus, func(ev event.EntityDestroyed) { destroyed = append(destroyed, ev) })

	a.tick(1)

	hp, _ := ecs.Get[component.Health](target)
	assert.Equal(t, 70, hp.Current)
	assert.False(t, fire.Alive())
	assert.True(t, target.Alive())
	assert.Equal(t, 1, a.collision.Stats().Combusted)

	// Events surface at the next dispatch; the flush at the start of that
	// tick prunes the projectile.
	a.tick(1)
	_, ok := a.store.ByID(fire.ID())
	assert.False(t, ok)
	require.Len(t, damaged, 1)
	assert.Equal(t, fire.ID(), damaged[0].SourceID)
	assert.Equal(t, target.ID(), damaged[0].TargetID)
	assert.Equal(t, testDamage, damaged[0].Amount)
	assert.Equal(t, 70, damaged[0].Remaining)
	require.Len(t, destroyed, 1)
	assert.Equal(t, event.CauseCombusted, destroyed[0].Cause)
	assert.Equal(t, "projectile", destroyed[0].Tag)
}

func TestCombustionWithoutHealthStillDestroys(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	fire := box(a.store, "projectile", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(fire, component.Combustible{})
	box(a.store, "wall", mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, false)

	a.tick(1)
	assert.False(t, fire.Alive())
}

func TestPivotIsExemptFromCombustion(t *testing.T) {
	a := newTestArena(t)
	p := player(a.store, mgl64.Vec3{0, 5, 0})
	fire := box(a.store, "projectile", mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{0.2, 0.2, 0.2}, true)
	ecs.Set(fire, component.Combustible{})
	require.Equal(t, PivotID, p.ID())

	a.tick(1)

	hp, _ := ecs.Get[component.Health](p)
	assert.Equal(t, 100, hp.Current)
	assert.True(t, fire.Alive())
	assert.Zero(t, a.collision.Stats().Combusted)
}

func TestTwoCombustiblesDoNotReact(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	first := box(a.store, "projectile", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	second := box(a.store, "projectile", mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(first, component.Combustible{})
	ecs.Set(second, component.Combustible{})

	a.tick(1)
	assert.True(t, first.Alive())
	assert.True(t, second.Alive())
}

type scaledDamage struct{ last scripting.DamageContext }

func (d *scaledDamage) CalcCombustionDamage(ctx scripting.DamageContext) int {
	d.last = ctx
	return ctx.BaseDamage * 2
}

func TestCombustionUsesDamageCalculator(t *testing.T) {
	a := newTestArena(t)
	calc := &scaledDamage{}
	a.collision.damage = calc

	player(a.store, mgl64.Vec3{100, 0.9, 100})
	fire := box(a.store, "projectile", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(fire, component.Combustible{})
	target := box(a.store, "crate", mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, false)
	ecs.Set(target, component.Health{Current: 100, Max: 100})

	a.tick(1)

	hp, _ := ecs.Get[component.Health](target)
	assert.Equal(t, 40, hp.Current)
	assert.Equal(t, "projectile", calc.last.SourceTag)
	assert.Equal(t, "crate", calc.last.TargetTag)
	assert.Equal(t, 100, calc.last.TargetHP)
	assert.Equal(t, testDamage, calc.last.BaseDamage)
	assert.InDelta(t, 0.5, calc.last.ImpactDepth, 1e-9)
	assert.False(t, calc.last.ImpactUpwards)
}

func TestBothDynamicHorizontalSplit(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	left := box(a.store, "crate", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	right := box(a.store, "crate", mgl64.Vec3{0.8, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)

	a.tick(1)

	assert.InDelta(t, -0.1, posOf(t, left).Vec.X(), 1e-9)
	assert.InDelta(t, 0.9, posOf(t, right).Vec.X(), 1e-9)
	assert.InDelta(t, 5, posOf(t, left).Vec.Y(), 1e-9)
	assert.InDelta(t, 5, posOf(t, right).Vec.Y(), 1e-9)
}

func TestBothDynamicVerticalLiftsUpperBody(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	upper := box(a.store, "crate", mgl64.Vec3{0, 5.8, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	lower := box(a.store, "crate", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	velOf(t, upper).Vec = mgl64.Vec3{0, -1, 0}

	a.tick(1)

	// Movement moves the upper crate down by 1*dt before the overlap is
	// resolved by lifting it the full depth.
	assert.InDelta(t, 6.0, posOf(t, upper).Vec.Y(), 1e-9)
	assert.InDelta(t, 5.0, posOf(t, lower).Vec.Y(), 1e-9)
	assert.Zero(t, velOf(t, upper).Vec.Y())
	assert.True(t, posOf(t, upper).Grounded)
	assert.False(t, posOf(t, lower).Grounded)
}

func TestStaticPairIsLeftAlone(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	w1 := box(a.store, "wall", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, false)
	w2 := box(a.store, "wall", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 1}, false)

	a.tick(1)

	assert.Equal(t, mgl64.Vec3{0, 0, 0}, posOf(t, w1).Vec)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, posOf(t, w2).Vec)
	assert.Equal(t, 1, a.collision.Stats().Contacts)
}

func TestDynamicPushedOutOfWall(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{100, 0.9, 100})
	wall := box(a.store, "wall", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 1, 1}, false)
	crate := box(a.store, "crate", mgl64.Vec3{1.3, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, true)

	a.tick(1)

	assert.InDelta(t, 1.5, posOf(t, crate).Vec.X(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 5, 0}, posOf(t, wall).Vec)
	assert.False(t, posOf(t, crate).Grounded)
}

func TestCollisionRebuildsGridEveryTick(t *testing.T) {
	a := newTestArena(t)
	player(a.store, mgl64.Vec3{0, 0.9, 0})
	floor(a.store)
	a.tick(1)
	assert.Equal(t, 2, a.grid.Len())
	assert.Equal(t, 2, a.collision.Stats().Bodies)

	box(a.store, "wall", mgl64.Vec3{10, 5, 10}, mgl64.Vec3{1, 1, 1}, false)
	a.tick(1)
	assert.Equal(t, 3, a.grid.Len())
}
