// Package executor translates replayed delete batches into parameterized
// PostgreSQL statements and runs them inside one transaction.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-relstore/pkg/change"
	"github.com/dd0wney/cluso-relstore/pkg/logging"
	"github.com/dd0wney/cluso-relstore/pkg/metrics"
)

// Executor applies delete batches to a PostgreSQL database.
type Executor struct {
	pool *pgxpool.Pool
	log  *logging.Logger
	reg  *metrics.Registry
}

// New builds an executor with its own connection pool.
func New(ctx context.Context, cfg Config, log *logging.Logger, reg *metrics.Registry) (*Executor, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}

	pgxCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		pgxCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pgxCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pgxCfg.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		pgxCfg.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Executor{
		pool: pool,
		log:  log.With("component", "executor"),
		reg:  reg,
	}, nil
}

// Close releases the connection pool.
func (e *Executor) Close() {
	e.pool.Close()
}

// Execute replays the batch inside a new transaction, committing on
// success and rolling back on the first failure.
func (e *Executor) Execute(ctx context.Context, batch *change.DeleteBatch) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := e.ExecuteIn(ctx, tx, batch); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	e.log.Info("delete batch committed",
		"entity", batch.Entity(),
		"operations", batch.Size(),
	)
	return nil
}

// ExecuteIn replays the batch inside a caller-managed transaction, so a
// delete cascade can share one unit of work with surrounding statements.
func (e *Executor) ExecuteIn(ctx context.Context, tx pgx.Tx, batch *change.DeleteBatch) error {
	return batch.Replay(func(op change.Operation) error {
		return e.apply(ctx, tx, op)
	})
}

func (e *Executor) apply(ctx context.Context, tx pgx.Tx, op change.Operation) error {
	e.reg.RecordOperationEmitted(op)

	stmt, err := BuildStatement(op)
	if err != nil {
		return err
	}

	start := time.Now()
	tag, err := tx.Exec(ctx, stmt.SQL, stmt.Args...)
	elapsed := time.Since(start)
	if err != nil {
		e.reg.RecordStatement(op.Kind(), "error", elapsed, 0)
		e.log.Error("statement failed",
			"kind", op.Kind().String(),
			"table", tableOf(op),
			"error", err,
		)
		return &ExecError{Kind: op.Kind(), Table: tableOf(op), Cause: err}
	}
	e.reg.RecordStatement(op.Kind(), "success", elapsed, tag.RowsAffected())

	if expected, versioned := versionedRows(op); versioned && tag.RowsAffected() < expected {
		e.reg.RecordVersionConflict()
		e.log.Warn("version conflict on root delete",
			"table", tableOf(op),
			"expected", expected,
			"deleted", tag.RowsAffected(),
		)
		return &ExecError{Kind: op.Kind(), Table: tableOf(op), Cause: ErrVersionMismatch}
	}

	e.log.Debug("statement executed",
		"kind", op.Kind().String(),
		"table", tableOf(op),
		"rows", tag.RowsAffected(),
		"duration", elapsed,
	)
	return nil
}
