package packet

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// SessionState is the session's protocol phase.
type SessionState int

const (
	StateHandshake SessionState = iota // connected, awaiting hello
	StateReady                         // hello accepted, input and presentation flow
	StateDisconnecting
)

func (s SessionState) String() string {
	switch s {
	case StateHandshake:
		return "Handshake"
	case StateReady:
		return "Ready"
	case StateDisconnecting:
		return "Disconnecting"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ErrEmptyPacket is returned by Dispatch for a zero-length payload.
var ErrEmptyPacket = errors.New("empty packet")

// HandlerFunc is the callback signature for packet handlers.
// The session is passed as an opaque value to avoid an import cycle.
type HandlerFunc func(sess any, r *Reader)

type handlerEntry struct {
	fn            HandlerFunc
	allowedStates map[SessionState]bool
}

// Registry maps opcodes to handlers with state-based access control.
type Registry struct {
	handlers map[byte]*handlerEntry
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[byte]*handlerEntry),
		log:      log,
	}
}

// Register maps an opcode to a handler, restricted to the given states.
func (reg *Registry) Register(opcode byte, states []SessionState, fn HandlerFunc) {
	allowed := make(map[SessionState]bool, len(states))
	for _, s := range states {
		allowed[s] = true
	}
	reg.handlers[opcode] = &handlerEntry{fn: fn, allowedStates: allowed}
}

// Dispatch runs the handler for data[0]. Unknown opcodes are ignored; an
// opcode sent in the wrong state is an error.
func (reg *Registry) Dispatch(sess any, state SessionState, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyPacket
	}
	opcode := data[0]

	entry, ok := reg.handlers[opcode]
	if !ok {
		reg.log.Debug("unknown opcode", zap.Uint8("opcode", opcode), zap.Stringer("state", state))
		return nil
	}
	if !entry.allowedStates[state] {
		return fmt.Errorf("opcode %d not allowed in state %s", opcode, state)
	}
	return reg.safeCall(entry.fn, sess, NewReader(data), opcode)
}

// safeCall keeps one malformed packet from taking down the game loop.
func (reg *Registry) safeCall(fn HandlerFunc, sess any, r *Reader, opcode byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("handler panic recovered", zap.Uint8("opcode", opcode), zap.Any("panic", rec))
			err = fmt.Errorf("handler panic for opcode %d: %v", opcode, rec)
		}
	}()
	fn(sess, r)
	return nil
}
