package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/spawn"
	"github.com/l1jgo/arena/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testDT        = 16 * time.Millisecond
	testGravity   = 20.0
	testMoveSpeed = 6.0
	testJump      = 8.0
	testDamage    = 30
)

// testArena wires the full pipeline the way cmd/arena does, minus
// persistence and presentation.
type testArena struct {
	store     *ecs.Store
	grid      *world.Grid
	bus       *event.Bus
	input     *world.InputState
	controls  *world.Controls
	queue     *spawn.Queue
	factory   *spawn.Factory
	collision *CollisionSystem
	runner    *coresys.Runner
}

func newTestArena(t *testing.T) *testArena {
	t.Helper()
	log := zap.NewNop()
	kinds, err := data.LoadKindTable("")
	require.NoError(t, err)

	a := &testArena{
		store:    ecs.NewStore(log),
		grid:     world.NewGrid(4),
		bus:      event.NewBus(),
		input:    world.NewInputState(),
		controls: &world.Controls{Camera: world.Camera{Sensitivity: 0.002}},
		queue:    spawn.NewQueue(),
		runner:   coresys.NewRunner(),
	}
	a.factory = spawn.NewFactory(a.store, kinds)
	a.collision = NewCollisionSystem(a.store, a.grid, a.bus, nil, testDamage, log)
	NewActionHandler(a.bus, a.store, a.controls, a.queue, nil, PivotID, log)

	a.runner.Register(NewFlushSystem(a.store))
	a.runner.Register(NewInputSystem(a.input, a.controls, a.bus, log))
	a.runner.Register(NewDispatchSystem(a.bus))
	a.runner.Register(NewSpawnSystem(a.queue, a.factory, log))
	a.runner.Register(NewMovementSystem(a.store, a.controls, testMoveSpeed, testJump))
	a.runner.Register(NewGravitySystem(a.store, testGravity))
	a.runner.Register(a.collision)
	a.runner.Register(NewLifespanSystem(a.store, a.bus))
	return a
}

func (a *testArena) tick(n int) {
	for i := 0; i < n; i++ {
		a.runner.Tick(testDT)
	}
}

// box creates a collidable entity. Dynamic boxes get a zero Velocity.
func box(store *ecs.Store, tag string, center, half mgl64.Vec3, dynamic bool) *ecs.Entity {
	e := store.Create(tag)
	ecs.Set(e, component.Position{Vec: center})
	ecs.Set(e, component.Bounds{HalfExtents: half, Orientation: mgl64.QuatIdent()})
	if dynamic {
		ecs.Set(e, component.Velocity{})
	}
	return e
}

// player creates a player-controlled body. Call it first so it gets id 0.
func player(store *ecs.Store, center mgl64.Vec3) *ecs.Entity {
	e := box(store, spawn.PlayerTag, center, mgl64.Vec3{0.4, 0.9, 0.4}, true)
	ecs.Set(e, component.PlayerControlled{})
	ecs.Set(e, component.GravityAffected{})
	ecs.Set(e, component.Health{Current: 100, Max: 100})
	return e
}

func floor(store *ecs.Store) *ecs.Entity {
	return box(store, "floor", mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{20, 0.5, 20}, false)
}

func posOf(t *testing.T, e *ecs.Entity) *component.Position {
	t.Helper()
	p, ok := ecs.Get[component.Position](e)
	require.True(t, ok)
	return p
}

func velOf(t *testing.T, e *ecs.Entity) *component.Velocity {
	t.Helper()
	v, ok := ecs.Get[component.Velocity](e)
	require.True(t, ok)
	return v
}
