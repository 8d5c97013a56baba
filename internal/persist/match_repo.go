package persist

import (
	"context"
	"fmt"
)

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Start records a new match and returns its id.
func (r *MatchRepo) Start(ctx context.Context, serverName, arena string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO matches (server_name, arena) VALUES ($1, $2) RETURNING id`,
		serverName, arena,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("start match: %w", err)
	}
	return id, nil
}

// Finish stamps the match end time and the number of ticks simulated.
func (r *MatchRepo) Finish(ctx context.Context, matchID int64, ticks uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE matches SET finished_at = now(), ticks = $2 WHERE id = $1`,
		matchID, int64(ticks),
	)
	if err != nil {
		return fmt.Errorf("finish match %d: %w", matchID, err)
	}
	return nil
}
