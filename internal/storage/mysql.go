package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leavesmoke/internal/domain"
)

const (
	insertRunQuery = "INSERT INTO smoke_runs (run_id, base_url, total_cases, passed_cases, failed_cases, network_errors, token_acquired, duration_ms, started_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"

	insertCaseQuery = "INSERT INTO smoke_case_results (run_id, position, name, method, path, status, outcome, message, duration_ms, trace_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	recentRunsQuery = "SELECT run_id, base_url, total_cases, passed_cases, failed_cases, token_acquired, duration_ms, started_at FROM smoke_runs ORDER BY started_at DESC LIMIT ?"
)

// HistoryStore archives runs in the MySQL history database
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore wraps an open database handle
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Close closes the underlying database handle
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// Record inserts the run and its case results in one transaction
func (h *HistoryStore) Record(ctx context.Context, meta domain.RunMeta, results []domain.CaseResult) error {
	startedAt, err := time.Parse(time.RFC3339, meta.Timestamp)
	if err != nil {
		startedAt = time.Now()
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertRunQuery,
		meta.RunID,
		meta.BaseURL,
		meta.TotalCases,
		meta.PassedCases,
		meta.FailedCases,
		meta.NetworkErrors,
		meta.TokenAcquired,
		int64(meta.DurationSeconds*1000),
		startedAt,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", meta.RunID, err)
	}

	for _, r := range results {
		if _, err := tx.ExecContext(ctx, insertCaseQuery,
			meta.RunID,
			r.Index,
			r.Name,
			r.Method,
			r.Path,
			r.Status,
			string(r.Outcome),
			r.Message,
			r.Duration.Milliseconds(),
			r.TraceID,
		); err != nil {
			return fmt.Errorf("insert case %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", meta.RunID, err)
	}
	return nil
}

// Recent returns the latest archived runs, newest first
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	rows, err := h.db.QueryContext(ctx, recentRunsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var (
			rec       domain.RunRecord
			startedAt time.Time
		)
		if err := rows.Scan(
			&rec.RunID,
			&rec.BaseURL,
			&rec.TotalCases,
			&rec.PassedCases,
			&rec.FailedCases,
			&rec.TokenAcquired,
			&rec.DurationMs,
			&startedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt = startedAt.Format(time.RFC3339)
		records = append(records, rec)
	}
	return records, rows.Err()
}
