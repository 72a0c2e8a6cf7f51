package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/pipeline"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/storage"
)

// runArchive pairs a run record with its per-month points for persistence.
type runArchive struct {
	run    storage.ForecastRun
	points []storage.RunPoint
}

func forecastRunRecord(result *pipeline.Result, opts pipeline.Options, runAt time.Time) runArchive {
	risk := opts.Risk.Mul(decimal.NewFromInt(100))

	run := storage.ForecastRun{
		RunAt:         runAt,
		Mode:          string(pipeline.ModeForecast),
		Tier:          string(result.Fit.Model.Tier()),
		HistoryMonths: len(result.Series),
		HorizonMonths: len(result.Scenario.Base),
		RiskPct:       &risk,
		Diagnostics:   result.Diagnostics,
	}

	var points []storage.RunPoint
	for _, p := range result.Series {
		points = append(points, storage.RunPoint{Month: p.Date, Kind: storage.PointActual, Amount: p.Amount})
	}
	for i, p := range result.Scenario.Base {
		points = append(points,
			storage.RunPoint{Month: p.Date, Kind: storage.PointBase, Amount: p.Amount},
			storage.RunPoint{Month: p.Date, Kind: storage.PointOptimistic, Amount: result.Scenario.Optimistic[i].Amount},
			storage.RunPoint{Month: p.Date, Kind: storage.PointPessimistic, Amount: result.Scenario.Pessimistic[i].Amount},
		)
	}

	return runArchive{run: run, points: points}
}

func backtestRunRecord(result *pipeline.Result, runAt time.Time) runArchive {
	backtest := result.Backtest
	mape := backtest.MAPE
	precision := backtest.Precision

	run := storage.ForecastRun{
		RunAt:         runAt,
		Mode:          string(pipeline.ModeBacktest),
		Tier:          string(backtest.Fit.Model.Tier()),
		HistoryMonths: len(result.Series),
		HorizonMonths: len(backtest.Actuals),
		MAPE:          &mape,
		PrecisionPct:  &precision,
		Diagnostics:   result.Diagnostics,
	}

	var points []storage.RunPoint
	for _, p := range result.Series {
		points = append(points, storage.RunPoint{Month: p.Date, Kind: storage.PointActual, Amount: p.Amount})
	}
	for _, p := range backtest.Predicted {
		points = append(points, storage.RunPoint{Month: p.Date, Kind: storage.PointPredicted, Amount: p.Amount})
	}

	return runArchive{run: run, points: points}
}

// archiveRun persists the run when a database is configured; otherwise it is
// a logged no-op so the commands stay usable without PostgreSQL.
func (a *App) archiveRun(ctx context.Context, archive runArchive) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Debug().Msg("database.dsn not configured; run not archived")
		return nil
	}
	if closeStore != nil {
		defer closeStore()
	}

	runID, err := store.InsertRun(ctx, archive.run, archive.points)
	if err != nil {
		return err
	}
	a.Logger.Info().Int64("run_id", runID).Str("mode", archive.run.Mode).Msg("run archived")
	return nil
}
