package handler

import (
	"math"

	"github.com/l1jgo/arena/internal/core/event"
	"github.com/l1jgo/arena/internal/net"
	"github.com/l1jgo/arena/internal/net/packet"
	"go.uber.org/zap"
)

// Pointer deltas beyond this are treated as garbage.
const maxLookDelta = 10000

// HandleHold processes C_HOLD: one held-action key went down or up.
func HandleHold(sess *net.Session, r *packet.Reader, deps *Deps) {
	action := r.ReadS()
	if action == "" {
		return
	}
	deps.Input.SetHeld(action, r.ReadC() != 0)
}

// HandleLook processes C_LOOK: accumulated pointer motion.
func HandleLook(sess *net.Session, r *packet.Reader, deps *Deps) {
	dx, dy := r.ReadF(), r.ReadF()
	if !finite(dx) || !finite(dy) || math.Abs(dx) > maxLookDelta || math.Abs(dy) > maxLookDelta {
		deps.Log.Debug("look delta rejected", zap.Uint64("session", sess.ID))
		return
	}
	deps.Input.AddPointerDelta(dx, dy)
}

// HandleAction processes C_ACTION: a discrete action with an optional
// string payload (a spawn kind for attacks).
func HandleAction(sess *net.Session, r *packet.Reader, deps *Deps) {
	name := r.ReadS()
	if name == "" {
		return
	}
	a := event.Action{Name: name, Phase: event.ActionStart}
	if r.ReadC() != 0 {
		a.Phase = event.ActionStop
	}
	if payload := r.ReadS(); payload != "" {
		a.Payload = payload
	}
	deps.Input.PushAction(a)
}

// HandleButtons processes C_BUTTONS: the pointer button bitmask.
func HandleButtons(sess *net.Session, r *packet.Reader, deps *Deps) {
	deps.Input.SetButtons(r.ReadDU())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
