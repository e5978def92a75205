package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/pkravets/huddle-auth/internal/observability/metrics"
)

const usersTable = "users"

// HandleQueryError records query metrics and maps pgx.ErrNoRows to the
// caller's not-found sentinel. Any other error is wrapped with the operation.
func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	duration := time.Since(startTime).Seconds()
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, usersTable).Observe(duration)

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(operation, usersTable, errorType(err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func HandleExecError(err error, operation string, startTime time.Time) error {
	duration := time.Since(startTime).Seconds()
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, usersTable).Observe(duration)

	if err == nil {
		return nil
	}
	metrics.DBQueryErrors.WithLabelValues(operation, usersTable, errorType(err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// errorType labels Postgres errors by SQLSTATE so unique violations (23505)
// stay visible in metrics even though the API reports them generically.
func errorType(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "pg_" + pgErr.Code
	}
	return fmt.Sprintf("%T", err)
}
