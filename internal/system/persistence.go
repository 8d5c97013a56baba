package system

import (
	"context"
	"time"

	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/persist"
	"go.uber.org/zap"
)

// CombatLogWriter stores a batch of combat log rows for one match.
type CombatLogWriter interface {
	WriteBatch(ctx context.Context, matchID int64, entries []persist.CombatEntry) error
}

// PersistenceSystem buffers combat events and flushes them to the combat
// log every interval ticks. Phase 9 (Persist).
type PersistenceSystem struct {
	writer    CombatLogWriter
	matchID   int64
	log       *zap.Logger
	interval  int
	tickCount int
	tick      uint64
	pending   []persist.CombatEntry
}

func NewPersistenceSystem(bus *event.Bus, writer CombatLogWriter, matchID int64, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	if intervalTicks <= 0 {
		intervalTicks = 1
	}
	s := &PersistenceSystem{
		writer:   writer,
		matchID:  matchID,
		log:      log,
		interval: intervalTicks,
		pending:  make([]persist.CombatEntry, 0, 64),
	}
	event.Subscribe(bus, s.onDamage)
	event.Subscribe(bus, s.onDestroyed)
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tick++
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		s.log.Error("combat log flush failed", zap.Int("pending", len(s.pending)), zap.Error(err))
	}
}

// Flush writes everything buffered so far. Called on shutdown as well.
// On error the batch stays buffered and is retried on the next flush.
func (s *PersistenceSystem) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.writer.WriteBatch(ctx, s.matchID, s.pending); err != nil {
		return err
	}
	s.log.Debug("combat log flushed", zap.Int("entries", len(s.pending)))
	s.pending = s.pending[:0]
	return nil
}

// Pending returns the number of buffered entries.
func (s *PersistenceSystem) Pending() int { return len(s.pending) }

func (s *PersistenceSystem) onDamage(ev event.DamageDealt) {
	target := uint64(ev.TargetID)
	tag := ev.TargetTag
	s.pending = append(s.pending, persist.CombatEntry{
		Tick:      s.tick,
		Kind:      persist.EntryDamage,
		SourceID:  uint64(ev.SourceID),
		SourceTag: ev.SourceTag,
		TargetID:  &target,
		TargetTag: &tag,
		Amount:    ev.Amount,
		Remaining: ev.Remaining,
	})
}

func (s *PersistenceSystem) onDestroyed(ev event.EntityDestroyed) {
	s.pending = append(s.pending, persist.CombatEntry{
		Tick:      s.tick,
		Kind:      persist.EntryDestroyed,
		SourceID:  uint64(ev.ID),
		SourceTag: ev.Tag,
		Cause:     string(ev.Cause),
	})
}
