package system

import (
	"time"

	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/net"
	"github.com/l1jgo/arena/internal/net/packet"
	"go.uber.org/zap"
)

// NetInputSystem accepts new clients and drains their packet queues through
// the packet registry. Phase 1 (Input); register it before the InputSystem
// so remote input lands in the bucket the same tick.
type NetInputSystem struct {
	hub        *net.Hub
	registry   *packet.Registry
	maxPerTick int
	log        *zap.Logger
}

func NewNetInputSystem(hub *net.Hub, registry *packet.Registry, maxPerTick int, log *zap.Logger) *NetInputSystem {
	if maxPerTick <= 0 {
		maxPerTick = 1
	}
	return &NetInputSystem{hub: hub, registry: registry, maxPerTick: maxPerTick, log: log}
}

func (s *NetInputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *NetInputSystem) Update(_ time.Duration) {
	s.hub.Accept()
	s.hub.Each(func(sess *net.Session) {
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case data := <-sess.InQueue:
				if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
					s.log.Warn("packet rejected, closing client", zap.Uint64("session", sess.ID), zap.Error(err))
					sess.Close()
					return
				}
			default:
				return
			}
		}
	})
}

// NetOutputSystem flushes buffered presentation packets to clients.
// Phase 8 (Output); register it after the PresentSystem.
type NetOutputSystem struct {
	hub *net.Hub
}

func NewNetOutputSystem(hub *net.Hub) *NetOutputSystem {
	return &NetOutputSystem{hub: hub}
}

func (s *NetOutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *NetOutputSystem) Update(_ time.Duration) {
	s.hub.Flush()
}
