package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point kinds persisted in run_points.
const (
	PointActual      = "actual"
	PointBase        = "base"
	PointOptimistic  = "optimistic"
	PointPessimistic = "pessimistic"
	PointPredicted   = "predicted"
)

// ForecastRun is one archived pipeline invocation.
type ForecastRun struct {
	ID            int64
	RunAt         time.Time
	Mode          string
	Tier          string
	HistoryMonths int
	HorizonMonths int
	RiskPct       *decimal.Decimal
	MAPE          *decimal.Decimal
	PrecisionPct  *decimal.Decimal
	Diagnostics   []string
	CreatedAt     time.Time
}

// RunPoint is one dated value belonging to an archived run.
type RunPoint struct {
	RunID  int64
	Month  time.Time
	Kind   string
	Amount decimal.Decimal
}
