package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
)

// FlushSystem commits buffered creations and prunes destroyed entities.
// Phase 0 (Flush): it runs before any other system reads entity state, so
// destructions requested during tick N take effect at the start of N+1.
type FlushSystem struct {
	store *ecs.Store
}

func NewFlushSystem(store *ecs.Store) *FlushSystem {
	return &FlushSystem{store: store}
}

func (s *FlushSystem) Phase() coresys.Phase { return coresys.PhaseFlush }

func (s *FlushSystem) Update(_ time.Duration) {
	s.store.Flush()
}
