package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

// Show prints recently archived runs.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show runs")
	}
	if closeStore != nil {
		defer closeStore()
	}

	runs, err := store.ListRecentRuns(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "no runs archived")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tRun (UTC)\tMode\tModel\tHistory\tHorizon\tRisk%\tMAPE%\tPrecision%\tDiags")

	for _, run := range runs {
		fmt.Fprintf(
			writer,
			"%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.RunAt.UTC().Format(time.RFC3339),
			run.Mode,
			run.Tier,
			run.HistoryMonths,
			run.HorizonMonths,
			formatOptDecimal(run.RiskPct),
			formatOptDecimal(run.MAPE),
			formatOptDecimal(run.PrecisionPct),
			len(run.Diagnostics),
		)
	}

	writer.Flush()
	return nil
}

func formatOptDecimal(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2)
}
