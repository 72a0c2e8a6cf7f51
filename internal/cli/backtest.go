package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/app"
)

var (
	backtestYear     int
	backtestHorizon  int
	backtestCSVPath  string
	backtestXLSXPath string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest <workbook.xlsx> [more workbooks...]",
	Short: "Withhold trailing months and score the model against them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if backtestHorizon != 0 && (backtestHorizon < 3 || backtestHorizon > 24) {
			return fmt.Errorf("--horizon must fall in 3-24, got %d", backtestHorizon)
		}

		opts := app.BacktestOptions{
			Files:    args,
			Year:     backtestYear,
			Horizon:  backtestHorizon,
			CSVPath:  backtestCSVPath,
			XLSXPath: backtestXLSXPath,
		}
		return getApp().Backtest(cmd.Context(), opts)
	},
}

func init() {
	backtestCmd.Flags().IntVar(&backtestYear, "year", 0, "Default year for workbooks without one in the file name (defaults to config)")
	backtestCmd.Flags().IntVar(&backtestHorizon, "horizon", 0, "Months to withhold, 3-24 (defaults to config)")
	backtestCmd.Flags().StringVar(&backtestCSVPath, "csv", "", "Path to write the audit table as CSV")
	backtestCmd.Flags().StringVar(&backtestXLSXPath, "xlsx", "", "Path to write the audit table as XLSX")
}
