package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/armine/internal/service"
	"github.com/google/uuid"
)

// RecordRun appends a run to the mining log. A missing ID or timestamp is
// filled in on the passed run.
func (s *SQLiteStorage) RecordRun(ctx context.Context, run *service.MiningRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mining_runs (
			id, dataset, mode, support, confidence, coverage,
			rules, default_class, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Dataset, run.Mode, run.Support, run.Confidence, run.Coverage,
		run.Rules, run.DefaultClass, run.Duration.Milliseconds(), run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record mining run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. An empty dataset lists runs
// of every dataset; limit <= 0 returns all of them.
func (s *SQLiteStorage) ListRuns(ctx context.Context, dataset string, limit int) ([]service.MiningRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dataset, mode, support, confidence, coverage,
			rules, default_class, duration_ms, created_at
		FROM mining_runs
		WHERE ? = '' OR dataset = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, dataset, dataset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mining runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []service.MiningRun
	for rows.Next() {
		var (
			run        service.MiningRun
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.Dataset, &run.Mode, &run.Support, &run.Confidence,
			&run.Coverage, &run.Rules, &run.DefaultClass, &durationMS, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mining run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mining runs: %w", err)
	}

	return runs, nil
}
