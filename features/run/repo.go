package run

import (
	"context"
	"database/sql"
)

type Repository interface {
	Save(ctx context.Context, r *Run) error
	ListByUser(ctx context.Context, uid string, limit int) ([]Run, error)
	Count(ctx context.Context) (int, error)
	CountFailed(ctx context.Context) (int, error)
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Save(ctx context.Context, run *Run) error {
	query := `INSERT INTO flow_runs (operation, user_id, status, error_kind, duration_ms, correlation_id, occurred_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, run.Operation, run.UserID, run.Status, run.ErrorKind, run.DurationMs, run.CorrelationID, run.OccurredAt).Scan(&run.ID)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, uid string, limit int) ([]Run, error) {
	query := `SELECT id, operation, user_id, status, error_kind, duration_ms, correlation_id, occurred_at FROM flow_runs WHERE user_id = $1 ORDER BY occurred_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Operation, &run.UserID, &run.Status, &run.ErrorKind, &run.DurationMs, &run.CorrelationID, &run.OccurredAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM flow_runs`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *PostgresRepo) CountFailed(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM flow_runs WHERE status = 'error'`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
