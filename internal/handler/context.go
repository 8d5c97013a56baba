package handler

import (
	"time"

	"github.com/l1jgo/arena/internal/net"
	"github.com/l1jgo/arena/internal/net/packet"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	Input    *world.InputState
	Hub      *net.Hub
	TickRate time.Duration
	Log      *zap.Logger
}

// RegisterAll registers all packet handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	reg.Register(packet.C_OPCODE_HELLO,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleHello(sess.(*net.Session), r, deps)
		},
	)

	ready := []packet.SessionState{packet.StateReady}

	reg.Register(packet.C_OPCODE_HOLD, ready,
		func(sess any, r *packet.Reader) {
			HandleHold(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_LOOK, ready,
		func(sess any, r *packet.Reader) {
			HandleLook(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_ACTION, ready,
		func(sess any, r *packet.Reader) {
			HandleAction(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_BUTTONS, ready,
		func(sess any, r *packet.Reader) {
			HandleButtons(sess.(*net.Session), r, deps)
		},
	)
}
