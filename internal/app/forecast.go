package app

import (
	"context"
	"errors"
	"time"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/pipeline"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/source"
)

// Forecast runs the forward projection over the given workbooks, prints the
// canonical series and scenario bands, writes any requested exports, and
// archives the run when a database is configured.
func (a *App) Forecast(ctx context.Context, opts ForecastOptions) error {
	if len(opts.Files) == 0 {
		return errors.New("at least one workbook file must be provided")
	}

	inputs, err := source.NewFiles(opts.Files, a.Logger).Workbooks(ctx)
	if err != nil {
		return err
	}

	popts := a.pipelineOptions(pipeline.ModeForecast, opts.Year, opts.Horizon, opts.RiskPct)
	result, runErr := pipeline.New(a.Logger).Run(ctx, inputs, popts)

	// Diagnostics are reported even when the run fails.
	printDiagnostics(result.Diagnostics)
	if runErr != nil {
		return runErr
	}

	printSeries(result.Series)
	printScenario(result.Scenario, result.Fit)

	if opts.CSVPath != "" {
		if err := writeScenarioCSV(opts.CSVPath, result.Scenario); err != nil {
			return err
		}
	}
	if opts.XLSXPath != "" {
		if err := writeScenarioXLSX(opts.XLSXPath, result.Scenario); err != nil {
			return err
		}
	}
	if opts.PNGPath != "" {
		maxPoints := a.Config.ResolveChartPoints(opts.MaxChartPoints)
		if err := writeForecastPNG(opts.PNGPath, result.Series, result.Scenario, maxPoints); err != nil {
			return err
		}
	}

	return a.archiveRun(ctx, forecastRunRecord(result, popts, time.Now().UTC()))
}
