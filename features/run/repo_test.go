package run_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagewise/features/run"
)

func TestPostgresRepo_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := run.NewPostgresRepo(db)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &run.Run{Operation: "ask", UserID: "u1", Status: "ok", DurationMs: 12, CorrelationID: "cid", OccurredAt: at}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO flow_runs (operation, user_id, status, error_kind, duration_ms, correlation_id, occurred_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id")).
		WithArgs("ask", "u1", "ok", "", int64(12), "cid", at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("run-1"))

	assert.NoError(t, repo.Save(context.Background(), r))
	assert.Equal(t, "run-1", r.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := run.NewPostgresRepo(db)
	rows := sqlmock.NewRows([]string{"id", "operation", "user_id", "status", "error_kind", "duration_ms", "correlation_id", "occurred_at"}).
		AddRow("r2", "edit", "u1", "error", "not_authorized", 5, "c2", time.Now()).
		AddRow("r1", "ask", "u1", "ok", "", 40, "c1", time.Now().Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, operation, user_id, status, error_kind, duration_ms, correlation_id, occurred_at FROM flow_runs WHERE user_id = $1 ORDER BY occurred_at DESC LIMIT $2")).
		WithArgs("u1", 20).
		WillReturnRows(rows)

	runs, err := repo.ListByUser(context.Background(), "u1", 20)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "not_authorized", runs[0].ErrorKind)
	assert.Equal(t, int64(40), runs[1].DurationMs)
}

func TestPostgresRepo_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := run.NewPostgresRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM flow_runs")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM flow_runs WHERE status = 'error'")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	total, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, total)

	failed, err := repo.CountFailed(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, failed)
}
