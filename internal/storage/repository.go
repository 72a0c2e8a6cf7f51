package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	insertRunSQL = `INSERT INTO forecast_runs (
        run_at,
        mode,
        tier,
        history_months,
        horizon_months,
        risk_pct,
        mape,
        precision_pct,
        diagnostics
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9
    )
    RETURNING id;`

	insertRunPointSQL = `INSERT INTO run_points (
        run_id,
        month,
        kind,
        amount
    ) VALUES (
        $1,$2,$3,$4
    );`

	listRecentRunsSQL = `SELECT
        id,
        run_at,
        mode,
        tier,
        history_months,
        horizon_months,
        risk_pct,
        mape,
        precision_pct,
        diagnostics,
        created_at
    FROM forecast_runs
    ORDER BY run_at DESC
    LIMIT $1;`

	listRunPointsSQL = `SELECT
        run_id,
        month,
        kind,
        amount
    FROM run_points
    WHERE run_id = $1
    ORDER BY month, kind;`

	countRunsSQL = `SELECT COUNT(*) FROM forecast_runs;`

	tryAdvisoryLockSQL = `SELECT pg_try_advisory_lock($1);`
	advisoryUnlockSQL  = `SELECT pg_advisory_unlock($1);`
)

// RunStore defines operations for run archival.
type RunStore interface {
	InsertRun(ctx context.Context, run ForecastRun, points []RunPoint) (int64, error)
	ListRecentRuns(ctx context.Context, limit int) ([]ForecastRun, error)
	ListRunPoints(ctx context.Context, runID int64) ([]RunPoint, error)
	CountRuns(ctx context.Context) (int64, error)
}

// AdvisoryLocker exposes advisory lock helpers.
type AdvisoryLocker interface {
	TryAdvisoryLock(ctx context.Context, key int64) (unlock func(), acquired bool, err error)
}

// Store archives pipeline runs in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// TryAdvisoryLock attempts to acquire a postgres advisory lock and returns a release func.
func (s *Store) TryAdvisoryLock(ctx context.Context, key int64) (func(), bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, false, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, tryAdvisoryLockSQL, key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	unlock := func() {
		ctxUnlock, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// best-effort unlock; the session release below frees the lock anyway
		_, _ = conn.Exec(ctxUnlock, advisoryUnlockSQL, key)
		conn.Release()
	}
	return unlock, true, nil
}

// InsertRun persists a run with its points in one transaction.
func (s *Store) InsertRun(ctx context.Context, run ForecastRun, points []RunPoint) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin run insert: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int64
	if err := tx.QueryRow(ctx, insertRunSQL,
		run.RunAt,
		run.Mode,
		run.Tier,
		run.HistoryMonths,
		run.HorizonMonths,
		decimalOrNil(run.RiskPct),
		decimalOrNil(run.MAPE),
		decimalOrNil(run.PrecisionPct),
		run.Diagnostics,
	).Scan(&runID); err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, point := range points {
		batch.Queue(insertRunPointSQL, runID, point.Month, point.Kind, point.Amount.String())
	}
	results := tx.SendBatch(ctx, batch)
	for range points {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("insert run point: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close point batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit run insert: %w", err)
	}
	return runID, nil
}

// ListRecentRuns lists the most recent runs ordered by descending run time.
func (s *Store) ListRecentRuns(ctx context.Context, limit int) ([]ForecastRun, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentRunsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent runs: %w", queryErr)
	}
	defer rows.Close()

	runs := make([]ForecastRun, 0, limit)
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return runs, nil
}

// ListRunPoints lists all points belonging to one run.
func (s *Store) ListRunPoints(ctx context.Context, runID int64) ([]RunPoint, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRunPointsSQL, runID)
	if queryErr != nil {
		return nil, fmt.Errorf("list run points: %w", queryErr)
	}
	defer rows.Close()

	var points []RunPoint
	for rows.Next() {
		var point RunPoint
		var amountStr string
		if err := rows.Scan(&point.RunID, &point.Month, &point.Kind, &amountStr); err != nil {
			return nil, err
		}
		amount, convErr := decimal.NewFromString(amountStr)
		if convErr != nil {
			return nil, fmt.Errorf("parse point amount: %w", convErr)
		}
		point.Amount = amount
		points = append(points, point)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return points, nil
}

// CountRuns counts archived runs.
func (s *Store) CountRuns(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countRunsSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count runs: %w", scanErr)
	}
	return count, nil
}

func decimalOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanRun(rows pgx.Rows) (ForecastRun, error) {
	var (
		run          ForecastRun
		riskStr      sql.NullString
		mapeStr      sql.NullString
		precisionStr sql.NullString
	)

	if err := rows.Scan(
		&run.ID,
		&run.RunAt,
		&run.Mode,
		&run.Tier,
		&run.HistoryMonths,
		&run.HorizonMonths,
		&riskStr,
		&mapeStr,
		&precisionStr,
		&run.Diagnostics,
		&run.CreatedAt,
	); err != nil {
		return ForecastRun{}, err
	}

	var err error
	if run.RiskPct, err = nullDecimal(riskStr); err != nil {
		return ForecastRun{}, fmt.Errorf("parse risk pct: %w", err)
	}
	if run.MAPE, err = nullDecimal(mapeStr); err != nil {
		return ForecastRun{}, fmt.Errorf("parse mape: %w", err)
	}
	if run.PrecisionPct, err = nullDecimal(precisionStr); err != nil {
		return ForecastRun{}, fmt.Errorf("parse precision pct: %w", err)
	}

	return run, nil
}

func nullDecimal(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
