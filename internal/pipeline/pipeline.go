package pipeline

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/forecast"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/ingest"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

// Mode selects forward projection or historical self-audit.
type Mode string

const (
	// ModeForecast projects forward from the full history.
	ModeForecast Mode = "forecast"
	// ModeBacktest withholds trailing history and scores the model on it.
	ModeBacktest Mode = "backtest"
)

// Options parameterise one pipeline run.
type Options struct {
	Mode           Mode
	DefaultYear    int
	AmountLabel    string
	PreviewRows    int
	Horizon        int
	Risk           decimal.Decimal // fraction, 0.01-0.50
	SeasonalPeriod int
}

// Result carries everything one run produced. Diagnostics are populated even
// when the run fails, so partial progress is always reportable.
type Result struct {
	Series      series.Series
	Scenario    *forecast.Scenario
	Backtest    *forecast.BacktestResult
	Fit         *forecast.Fit
	Diagnostics []string
}

// Pipeline is the synchronous ingestion-to-forecast core. Each Run is a pure
// function of its inputs: no state survives between invocations, and
// concurrent callers must use separate input readers.
type Pipeline struct {
	logger zerolog.Logger
}

// New builds a pipeline.
func New(logger zerolog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With().Str("component", "pipeline").Logger()}
}

// Run harvests the workbooks, consolidates the canonical series, and either
// projects forward or backtests, per opts.Mode. Stages run strictly in
// sequence; ctx is only consulted between stages, never mid-fit.
func (p *Pipeline) Run(ctx context.Context, inputs []ingest.Input, opts Options) (*Result, error) {
	harvester := ingest.NewHarvester(ingest.Options{
		DefaultYear: opts.DefaultYear,
		AmountLabel: opts.AmountLabel,
		PreviewRows: opts.PreviewRows,
	}, p.logger)

	records, log := harvester.Harvest(inputs)
	result := &Result{Diagnostics: log.Entries()}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	canonical, err := series.Consolidate(records)
	if err != nil {
		return result, err
	}
	result.Series = canonical
	p.logger.Info().Int("records", len(records)).Int("months", len(canonical)).
		Time("from", canonical.First()).Time("to", canonical.Last()).Msg("canonical series built")

	if err := ctx.Err(); err != nil {
		return result, err
	}

	selector := forecast.NewSelector(opts.SeasonalPeriod, p.logger)

	switch opts.Mode {
	case ModeBacktest:
		backtest, err := forecast.Backtest(canonical, opts.Horizon, selector)
		if err != nil {
			return result, err
		}
		result.Backtest = backtest
		result.Fit = backtest.Fit
	default:
		fit, err := selector.Fit(canonical.Amounts())
		if err != nil {
			return result, err
		}
		result.Fit = fit

		base := forecast.Project(fit.Model, canonical, opts.Horizon)
		scenario, err := forecast.BuildScenario(base, opts.Risk)
		if err != nil {
			return result, err
		}
		result.Scenario = scenario
	}

	result.Diagnostics = append(result.Diagnostics, fitNotes(result.Fit)...)
	return result, nil
}

// fitNotes renders failed non-final fit attempts as informational notes.
func fitNotes(fit *forecast.Fit) []string {
	if fit == nil {
		return nil
	}
	var notes []string
	for _, attempt := range fit.Attempts {
		if attempt.Err == nil {
			continue
		}
		notes = append(notes, "nota: modelo "+string(attempt.Tier)+" no disponible ("+attempt.Err.Error()+"); se usó el siguiente nivel")
	}
	return notes
}
