package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/forecast"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

const monthLayout = "2006-01"

func printDiagnostics(entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(os.Stdout, "Diagnostics:")
	for _, entry := range entries {
		fmt.Fprintf(os.Stdout, "  - %s\n", entry)
	}
	fmt.Fprintln(os.Stdout)
}

func printSeries(s series.Series) {
	fmt.Fprintf(os.Stdout, "Canonical series: %d months (%s to %s)\n",
		len(s), s.First().Format(monthLayout), s.Last().Format(monthLayout))

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Month\tAmount")
	for _, point := range s {
		fmt.Fprintf(writer, "%s\t%s\n", point.Date.Format(monthLayout), formatDecimal(point.Amount, 2))
	}
	writer.Flush()
	fmt.Fprintln(os.Stdout)
}

func printScenario(scenario *forecast.Scenario, fit *forecast.Fit) {
	fmt.Fprintf(os.Stdout, "Model: %s, trained on %d months, risk factor %s\n",
		fit.Model.Tier(), fit.Model.HistoryLen(), scenario.RiskFactor.String())
	fmt.Fprintln(os.Stdout)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Month\tPessimistic\tBase\tOptimistic")
	for i, base := range scenario.Base {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			base.Date.Format(monthLayout),
			formatDecimal(scenario.Pessimistic[i].Amount, 2),
			formatDecimal(base.Amount, 2),
			formatDecimal(scenario.Optimistic[i].Amount, 2),
		)
	}
	writer.Flush()
	fmt.Fprintln(os.Stdout)
}

func printBacktest(result *forecast.BacktestResult) {
	fmt.Fprintf(os.Stdout, "Model: %s, trained on %d months, %d withheld\n",
		result.Fit.Model.Tier(), len(result.Train), len(result.Actuals))
	fmt.Fprintln(os.Stdout)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Month\tActual\tPredicted\tDifference\tError%")
	zeroActuals := false
	for _, period := range result.Periods {
		marker := ""
		if period.ZeroActual {
			marker = " *"
			zeroActuals = true
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s%s\n",
			period.Date.Format(monthLayout),
			formatDecimal(period.Actual, 2),
			formatDecimal(period.Predicted, 2),
			formatDecimal(period.AbsoluteError, 2),
			formatDecimal(period.ErrorPct, 2),
			marker,
		)
	}
	writer.Flush()

	if zeroActuals {
		fmt.Fprintln(os.Stdout, "  * actual is zero; scored pessimistically as 100% error")
	}
	fmt.Fprintf(os.Stdout, "\nMAPE: %s%%\nPrecision: %s%%\n",
		formatDecimal(result.MAPE, 2), formatDecimal(result.Precision, 2))
}

func formatDecimal(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}
