package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// DBConfig returns the configuration for database breakers: it opens once five consecutive
// calls have failed. Queries cancelled by their caller are not failures of the database.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
}

// DB guards a connection pool with a circuit breaker. It satisfies the querier interface of
// the persistence adapters, so repositories can run with or without protection.
type DB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewDB wraps db with a breaker configured by DBConfig.
func NewDB(db *sql.DB) *DB {
	return &DB{cb: New(DBConfig()), db: db}
}

// QueryContext runs a query unless the circuit is open.
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	result, err := d.cb.Execute(func() (interface{}, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext runs a statement unless the circuit is open.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := d.cb.Execute(func() (interface{}, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext is not guarded: sql.Row defers its error to Scan.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// Breaker returns the breaker for health reporting.
func (d *DB) Breaker() *CircuitBreaker {
	return d.cb
}

// Unwrap returns the underlying pool.
func (d *DB) Unwrap() *sql.DB {
	return d.db
}
