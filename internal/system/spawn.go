package system

import (
	"time"

	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/spawn"
	"go.uber.org/zap"
)

// SpawnSystem drains the spawn queue exactly once per tick. Phase 3 (Spawn).
// New entities stay buffered in the store until the next flush.
type SpawnSystem struct {
	queue   *spawn.Queue
	factory *spawn.Factory
	log     *zap.Logger
}

func NewSpawnSystem(queue *spawn.Queue, factory *spawn.Factory, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{queue: queue, factory: factory, log: log}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	for _, r := range s.queue.Drain() {
		e, err := s.factory.Spawn(r)
		if err != nil {
			s.log.Warn("spawn request dropped", zap.String("kind", r.Kind), zap.Error(err))
			continue
		}
		s.log.Debug("spawned", zap.String("kind", r.Kind), zap.Uint64("id", uint64(e.ID())))
	}
}
