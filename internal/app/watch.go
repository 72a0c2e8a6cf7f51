package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/alerting"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/forecast"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/pipeline"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/scheduler"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/source"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/storage"
)

// Watch re-runs the forward pipeline over a workbook glob on an aligned
// interval, archiving each run. Every tick is an independent pipeline
// invocation; no state is shared between ticks.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	glob := opts.Glob
	if glob == "" {
		glob = a.Config.Watch.InputGlob
	}
	if glob == "" {
		return errors.New("watch.input_glob not configured and no --glob given")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; watch runs will not be archived")
	}
	if closeStore != nil {
		defer closeStore()
	}

	src := source.NewDir(glob, a.Logger)
	notifier := a.newNotifier()
	pipe := pipeline.New(a.Logger)

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Watch.Interval,
		AlignToStart: a.Config.Watch.AlignToBucket,
		StartupDelay: a.Config.Watch.StartupDelay,
	}, a.Logger)

	a.Logger.Info().Str("glob", glob).Dur("interval", a.Config.Watch.Interval).Msg("starting watch loop")
	err = sched.Run(ctx, func(ctx context.Context, bucket time.Time) error {
		return a.watchTick(ctx, bucket, src, store, notifier, pipe)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.Logger.Info().Msg("watch loop stopped")
	return nil
}

func (a *App) watchTick(ctx context.Context, bucket time.Time, src source.WorkbookSource, store *storage.Store, notifier alerting.Notifier, pipe *pipeline.Pipeline) error {
	if store != nil && a.Config.Watch.AdvisoryLockKey != 0 {
		unlock, acquired, err := store.TryAdvisoryLock(ctx, a.Config.Watch.AdvisoryLockKey)
		if err != nil {
			return err
		}
		if !acquired {
			a.Logger.Debug().Time("run", bucket).Msg("skip run because advisory lock held elsewhere")
			return nil
		}
		defer unlock()
	}

	inputs, err := src.Workbooks(ctx)
	if err != nil {
		return err
	}

	popts := a.pipelineOptions(pipeline.ModeForecast, 0, 0, 0)
	result, err := pipe.Run(ctx, inputs, popts)
	if err != nil {
		return err
	}

	if store != nil {
		archive := forecastRunRecord(result, popts, bucket)
		if _, err := store.InsertRun(ctx, archive.run, archive.points); err != nil {
			a.Logger.Error().Err(err).Time("run", bucket).Msg("failed to archive watch run")
		}
	}

	a.auditQuality(ctx, bucket, result, notifier)
	return nil
}

// auditQuality backtests the freshly consolidated series and alerts when
// self-audit precision drops below the configured floor.
func (a *App) auditQuality(ctx context.Context, bucket time.Time, result *pipeline.Result, notifier alerting.Notifier) {
	if !a.Config.Alerting.Enabled || notifier == nil {
		return
	}

	horizon := a.Config.Forecast.HorizonMonths
	selector := forecast.NewSelector(a.Config.Forecast.SeasonalPeriod, a.Logger)
	backtest, err := forecast.Backtest(result.Series, horizon, selector)
	if errors.Is(err, forecast.ErrInsufficientHistory) {
		a.Logger.Debug().Int("months", len(result.Series)).Msg("not enough history for quality audit")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("quality audit failed")
		return
	}

	floor := decimal.NewFromFloat(a.Config.Alerting.MinPrecisionPct)
	if backtest.Precision.GreaterThanOrEqual(floor) {
		return
	}

	note := alerting.Notification{
		RunAt:           bucket,
		HistoryMonths:   len(backtest.Train),
		HorizonMonths:   len(backtest.Actuals),
		Tier:            string(backtest.Fit.Model.Tier()),
		MAPE:            backtest.MAPE,
		PrecisionPct:    backtest.Precision,
		MinPrecisionPct: floor,
	}
	if err := notifier.Notify(ctx, note); err != nil {
		a.Logger.Error().Err(err).Time("run", bucket).Msg("failed to dispatch quality alert")
	}
}
