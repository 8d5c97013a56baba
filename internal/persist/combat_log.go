package persist

import (
	"context"
	"fmt"
)

// Combat log entry kinds.
const (
	EntryDamage    = "damage"
	EntryDestroyed = "destroyed"
)

// CombatEntry is one row of the combat log. For destroyed entries the
// source is the destroyed entity and the target is empty.
type CombatEntry struct {
	Tick      uint64
	Kind      string
	SourceID  uint64
	SourceTag string
	TargetID  *uint64
	TargetTag *string
	Amount    int
	Remaining int
	Cause     string
}

type CombatLogRepo struct {
	db *DB
}

func NewCombatLogRepo(db *DB) *CombatLogRepo {
	return &CombatLogRepo{db: db}
}

// WriteBatch inserts a batch of entries for a match in a single transaction.
func (r *CombatLogRepo) WriteBatch(ctx context.Context, matchID int64, entries []CombatEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("combat log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO combat_log (match_id, tick, kind, source_id, source_tag, target_id, target_tag, amount, remaining, cause)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			matchID, int64(e.Tick), e.Kind, int64(e.SourceID), e.SourceTag, toInt64Ptr(e.TargetID), e.TargetTag, e.Amount, e.Remaining, e.Cause,
		); err != nil {
			return fmt.Errorf("combat log insert: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func toInt64Ptr(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}
