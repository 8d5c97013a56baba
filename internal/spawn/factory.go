package spawn

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/data"
)

// PlayerTag labels the player-controlled entity.
const PlayerTag = "player"

var up = mgl64.Vec3{0, 1, 0}

// Factory turns spawn requests into component sets. Entities it creates
// are buffered by the store until the next flush.
type Factory struct {
	store      *ecs.Store
	kinds      *data.KindTable
	nextHandle uint32
}

func NewFactory(store *ecs.Store, kinds *data.KindTable) *Factory {
	return &Factory{store: store, kinds: kinds, nextHandle: 1}
}

// Kinds exposes the template table.
func (f *Factory) Kinds() *data.KindTable { return f.kinds }

func (f *Factory) present(e *ecs.Entity, visual string) {
	if visual == "" {
		return
	}
	ecs.Set(e, component.Presentation{Handle: f.nextHandle, Visual: visual})
	f.nextHandle++
}

func yawQuat(deg float64) mgl64.Quat {
	if deg == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(mgl64.DegToRad(deg), up)
}

// Spawn instantiates the kind named by r. Unknown kinds return an error
// wrapping data.ErrUnknownKind and create nothing.
func (f *Factory) Spawn(r Request) (*ecs.Entity, error) {
	k, err := f.kinds.Get(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}

	dir := r.Direction
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}

	e := f.store.Create(k.Tag)
	ecs.Set(e, component.Position{Vec: r.Origin.Add(dir.Mul(k.SpawnOffset))})
	ecs.Set(e, component.Bounds{HalfExtents: k.HalfExtents.Vec(), Orientation: yawQuat(k.Yaw)})
	if k.Dynamic {
		ecs.Set(e, component.Velocity{Vec: dir.Mul(k.Speed)})
	}
	if k.Gravity {
		ecs.Set(e, component.GravityAffected{})
	}
	if k.Combustible {
		ecs.Set(e, component.Combustible{})
	}
	if k.Health > 0 {
		ecs.Set(e, component.Health{Current: k.Health, Max: k.Health})
	}
	if k.Lifespan > 0 {
		ecs.Set(e, component.Lifespan{Remaining: k.Lifespan})
	}
	f.present(e, k.Visual)
	return e, nil
}

// SpawnPlayer creates the player-controlled entity. Call it before anything
// else so the player receives id 0.
func (f *Factory) SpawnPlayer(p data.PlayerSpawn) *ecs.Entity {
	e := f.store.Create(PlayerTag)
	ecs.Set(e, component.Position{Vec: p.Origin.Vec()})
	ecs.Set(e, component.Velocity{})
	ecs.Set(e, component.Bounds{HalfExtents: p.HalfExtents.Vec(), Orientation: mgl64.QuatIdent()})
	ecs.Set(e, component.Health{Current: p.Health, Max: p.Health})
	ecs.Set(e, component.PlayerControlled{})
	ecs.Set(e, component.GravityAffected{})
	f.present(e, p.Visual)
	return e
}

// SpawnStatic creates an immovable block: Position and Bounds, no Velocity.
func (f *Factory) SpawnStatic(b data.Block) *ecs.Entity {
	e := f.store.Create(b.Tag)
	ecs.Set(e, component.Position{Vec: b.Center.Vec()})
	ecs.Set(e, component.Bounds{HalfExtents: b.HalfExtents.Vec(), Orientation: yawQuat(b.Yaw)})
	f.present(e, b.Visual)
	return e
}

// SpawnArena creates the player, the static blocks and the initial props,
// in that order.
func (f *Factory) SpawnArena(a *data.Arena) (player *ecs.Entity, err error) {
	player = f.SpawnPlayer(a.Player)
	for _, b := range a.Blocks {
		f.SpawnStatic(b)
	}
	for _, p := range a.Props {
		if _, err := f.Spawn(Request{Kind: p.Kind, Origin: p.Origin.Vec(), Direction: p.Direction.Vec()}); err != nil {
			return player, fmt.Errorf("arena %q: %w", a.Name, err)
		}
	}
	return player, nil
}
