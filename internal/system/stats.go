package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// StatsSystem logs a one-line summary of the simulation every interval
// ticks. Runs in the Persist phase, after the combat log.
type StatsSystem struct {
	store     *ecs.Store
	grid      *world.Grid
	collision *CollisionSystem
	log       *zap.Logger
	interval  int
	tickCount int
}

func NewStatsSystem(store *ecs.Store, grid *world.Grid, collision *CollisionSystem, log *zap.Logger, intervalTicks int) *StatsSystem {
	return &StatsSystem{
		store:     store,
		grid:      grid,
		collision: collision,
		log:       log,
		interval:  intervalTicks,
	}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *StatsSystem) Update(_ time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	creates, destroys := s.store.Pending()
	c := s.collision.Stats()
	s.log.Info("simulation stats",
		zap.Int("entities", s.store.Len()),
		zap.Int("pending_creates", creates),
		zap.Int("pending_destroys", destroys),
		zap.Int("grid_entities", s.grid.Len()),
		zap.Int("grid_cells", s.grid.Cells()),
		zap.Int("bodies", c.Bodies),
		zap.Int("candidates", c.Candidates),
		zap.Int("contacts", c.Contacts),
		zap.Int("combusted", c.Combusted),
	)
}
