package system

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	"github.com/l1jgo/arena/internal/spawn"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// DefaultAttackKind is fired by "attack" unless a payload or script says otherwise.
const DefaultAttackKind = "projectile"

// KindResolver lets scripts pick the spawn kind for an attack action.
type KindResolver interface {
	KindOverride(action string, fallback string) string
}

// ActionHandler turns discrete action events into spawn requests.
type ActionHandler struct {
	store    *ecs.Store
	controls *world.Controls
	queue    *spawn.Queue
	resolver KindResolver
	playerID ecs.EntityID
	log      *zap.Logger
}

// NewActionHandler subscribes the handler to action events on bus.
// resolver may be nil.
func NewActionHandler(bus *event.Bus, store *ecs.Store, controls *world.Controls, queue *spawn.Queue,
	resolver KindResolver, playerID ecs.EntityID, log *zap.Logger) *ActionHandler {
	h := &ActionHandler{
		store:    store,
		controls: controls,
		queue:    queue,
		resolver: resolver,
		playerID: playerID,
		log:      log,
	}
	event.Subscribe(bus, h.handle)
	return h
}

func (h *ActionHandler) handle(a event.Action) {
	if a.Phase != event.ActionStart {
		return
	}
	switch a.Name {
	case world.ActionAttack, world.ActionAltFire:
	default:
		return
	}

	kind := DefaultAttackKind
	if s, ok := a.Payload.(string); ok && s != "" {
		kind = s
	}
	if h.resolver != nil {
		kind = h.resolver.KindOverride(a.Name, kind)
	}

	player, ok := h.store.ByID(h.playerID)
	if !ok || !player.Alive() {
		return
	}
	pos, ok := ecs.Get[component.Position](player)
	if !ok {
		return
	}
	h.queue.Push(spawn.Request{
		Kind:      kind,
		Origin:    pos.Vec,
		Direction: h.controls.Camera.Look(),
	})
}
