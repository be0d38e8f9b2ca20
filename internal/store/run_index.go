package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunSummary is one completed gym/server run's aggregate statistics, as
// indexed in Postgres for fast lookup (the JSONL audit log remains the
// source of truth; this index exists purely for cheap querying).
type RunSummary struct {
	RunID        string
	Lang         string
	StartedAt    time.Time
	EndedAt      time.Time
	SegmentCount int
	AvgReward    float64
}

// RunIndex upserts and queries run summaries in Postgres. Entirely
// optional: a nil *RunIndex (or simply never constructing one) leaves the
// JSONL audit log as the only record of a run.
type RunIndex struct {
	pool *pgxpool.Pool
}

// NewRunIndex connects to dsn and ensures the runs table exists.
func NewRunIndex(ctx context.Context, dsn string) (*RunIndex, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect run index: %w", err)
	}
	idx := &RunIndex{pool: pool}
	if err := idx.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *RunIndex) migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS runs (
  run_id        TEXT PRIMARY KEY,
  lang          TEXT NOT NULL,
  started_at    TIMESTAMPTZ NOT NULL,
  ended_at      TIMESTAMPTZ NOT NULL,
  segment_count INT NOT NULL,
  avg_reward    DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_lang_started_at_idx ON runs (lang, started_at DESC);
`
	if _, err := idx.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("store: migrate run index: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (idx *RunIndex) Close() { idx.pool.Close() }

// Upsert records or updates a run's summary, keyed by RunID.
func (idx *RunIndex) Upsert(ctx context.Context, s RunSummary) error {
	const q = `
INSERT INTO runs (run_id, lang, started_at, ended_at, segment_count, avg_reward)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (run_id) DO UPDATE SET
  ended_at      = EXCLUDED.ended_at,
  segment_count = EXCLUDED.segment_count,
  avg_reward    = EXCLUDED.avg_reward;
`
	_, err := idx.pool.Exec(ctx, q, s.RunID, s.Lang, s.StartedAt, s.EndedAt, s.SegmentCount, s.AvgReward)
	if err != nil {
		return fmt.Errorf("store: upsert run %s: %w", s.RunID, err)
	}
	return nil
}

// RecentRuns returns a language's most recent runs, most recent first.
func (idx *RunIndex) RecentRuns(ctx context.Context, lang string, limit int) ([]RunSummary, error) {
	const q = `
SELECT run_id, lang, started_at, ended_at, segment_count, avg_reward
FROM runs
WHERE lang = $1
ORDER BY started_at DESC
LIMIT $2;
`
	rows, err := idx.pool.Query(ctx, q, lang, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query recent runs for %s: %w", lang, err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.Lang, &s.StartedAt, &s.EndedAt, &s.SegmentCount, &s.AvgReward); err != nil {
			return nil, fmt.Errorf("store: scan run row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
