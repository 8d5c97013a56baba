package world

import (
	"maps"
	"sync"

	"github.com/l1jgo/arena/internal/core/event"
)

// Held-action names read by the movement stage.
const (
	ActionForward  = "forward"
	ActionBackward = "backward"
	ActionLeft     = "left"
	ActionRight    = "right"
	ActionJump     = "jump"
	ActionAttack   = "attack"
	ActionAltFire  = "alt_attack"
)

// InputState is the bucket an external input collaborator writes into from
// its own goroutine. The core reads it once per tick through Drain, which
// only the InputSystem may call: it is the sole owner of the per-tick
// deltas and resets them as it consumes them.
type InputState struct {
	mu      sync.Mutex
	held    map[string]bool
	dx, dy  float64
	buttons uint32
	actions []event.Action
}

func NewInputState() *InputState {
	return &InputState{held: make(map[string]bool, 8)}
}

// SetHeld records whether a discrete action key is currently held.
func (s *InputState) SetHeld(action string, held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if held {
		s.held[action] = true
	} else {
		delete(s.held, action)
	}
}

// AddPointerDelta accumulates pointer motion until the next Drain.
func (s *InputState) AddPointerDelta(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dx += dx
	s.dy += dy
}

// SetButtons replaces the pointer button bitmask.
func (s *InputState) SetButtons(mask uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttons = mask
}

// PushAction queues a discrete action event for the next tick.
func (s *InputState) PushAction(a event.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, a)
}

// Drain snapshots the bucket and resets pointer deltas and queued actions.
// Held state and buttons persist.
func (s *InputState) Drain() InputFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := InputFrame{
		Held:    maps.Clone(s.held),
		DX:      s.dx,
		DY:      s.dy,
		Buttons: s.buttons,
		Actions: s.actions,
	}
	s.dx, s.dy = 0, 0
	s.actions = nil
	return f
}

// InputFrame is one tick's read-only view of the input bucket.
type InputFrame struct {
	Held    map[string]bool
	DX, DY  float64
	Buttons uint32
	Actions []event.Action
}

// IsHeld reports whether action was held when the frame was sampled.
func (f InputFrame) IsHeld(action string) bool {
	return f.Held[action]
}

// Axis folds two opposing actions into -1, 0 or +1.
func (f InputFrame) Axis(positive, negative string) float64 {
	v := 0.0
	if f.Held[positive] {
		v++
	}
	if f.Held[negative] {
		v--
	}
	return v
}
