package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/alerting"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/config"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/pipeline"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

// pipelineOptions merges CLI overrides over the configured defaults.
func (a *App) pipelineOptions(mode pipeline.Mode, year, horizon int, riskPct float64) pipeline.Options {
	if year <= 0 {
		year = a.Config.Ingest.DefaultYear
	}
	if horizon <= 0 {
		horizon = a.Config.Forecast.HorizonMonths
	}
	if riskPct <= 0 {
		riskPct = a.Config.Forecast.RiskPct
	}

	return pipeline.Options{
		Mode:           mode,
		DefaultYear:    year,
		AmountLabel:    a.Config.Ingest.AmountLabel,
		PreviewRows:    a.Config.Ingest.PreviewRows,
		Horizon:        horizon,
		Risk:           decimal.NewFromFloat(riskPct).Div(decimal.NewFromInt(100)),
		SeasonalPeriod: a.Config.Forecast.SeasonalPeriod,
	}
}

// ForecastOptions hold parameters for the forward projection command.
type ForecastOptions struct {
	Files          []string
	Year           int
	Horizon        int
	RiskPct        float64
	CSVPath        string
	XLSXPath       string
	PNGPath        string
	MaxChartPoints int
}

// BacktestOptions hold parameters for the self-audit command.
type BacktestOptions struct {
	Files    []string
	Year     int
	Horizon  int
	CSVPath  string
	XLSXPath string
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// WatchOptions configure the periodic re-forecast loop.
type WatchOptions struct {
	Glob string
}
