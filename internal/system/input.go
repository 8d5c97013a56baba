package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// InputSystem samples the input bucket once per tick. Phase 1 (Input).
// It is the only reader of raw pointer deltas: it turns them into camera
// rotation and the Drain resets them. Discrete actions go onto the bus and
// are delivered by the DispatchSystem later in the same tick.
type InputSystem struct {
	input    *world.InputState
	controls *world.Controls
	bus      *event.Bus
	log      *zap.Logger
}

func NewInputSystem(input *world.InputState, controls *world.Controls, bus *event.Bus, log *zap.Logger) *InputSystem {
	return &InputSystem{input: input, controls: controls, bus: bus, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	f := s.input.Drain()
	s.controls.Frame = f
	if f.DX != 0 || f.DY != 0 {
		s.controls.Camera.Apply(f.DX, f.DY)
	}
	for _, a := range f.Actions {
		event.Emit(s.bus, a)
	}
	if len(f.Actions) > 0 {
		s.log.Debug("input actions queued", zap.Int("count", len(f.Actions)))
	}
}

// DispatchSystem delivers bus events. Phase 2 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
