package app

import (
	"context"
	"errors"
	"time"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/pipeline"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/source"
)

// Backtest withholds trailing history, refits, and reports how well the
// model would have predicted the withheld months.
func (a *App) Backtest(ctx context.Context, opts BacktestOptions) error {
	if len(opts.Files) == 0 {
		return errors.New("at least one workbook file must be provided")
	}

	inputs, err := source.NewFiles(opts.Files, a.Logger).Workbooks(ctx)
	if err != nil {
		return err
	}

	popts := a.pipelineOptions(pipeline.ModeBacktest, opts.Year, opts.Horizon, 0)
	result, runErr := pipeline.New(a.Logger).Run(ctx, inputs, popts)

	printDiagnostics(result.Diagnostics)
	if runErr != nil {
		return runErr
	}

	printSeries(result.Series)
	printBacktest(result.Backtest)

	if opts.CSVPath != "" {
		if err := writeBacktestCSV(opts.CSVPath, result.Backtest); err != nil {
			return err
		}
	}
	if opts.XLSXPath != "" {
		if err := writeBacktestXLSX(opts.XLSXPath, result.Backtest); err != nil {
			return err
		}
	}

	return a.archiveRun(ctx, backtestRunRecord(result, time.Now().UTC()))
}
