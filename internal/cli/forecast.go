package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/app"
)

var (
	forecastYear        int
	forecastHorizon     int
	forecastRiskPct     float64
	forecastCSVPath     string
	forecastXLSXPath    string
	forecastPNGPath     string
	forecastChartPoints int
)

var forecastCmd = &cobra.Command{
	Use:   "forecast <workbook.xlsx> [more workbooks...]",
	Short: "Project future monthly sales with optimistic/pessimistic bands",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if forecastHorizon != 0 && (forecastHorizon < 3 || forecastHorizon > 24) {
			return fmt.Errorf("--horizon must fall in 3-24, got %d", forecastHorizon)
		}
		if forecastRiskPct != 0 && (forecastRiskPct < 1 || forecastRiskPct > 50) {
			return fmt.Errorf("--risk must fall in 1-50, got %g", forecastRiskPct)
		}

		opts := app.ForecastOptions{
			Files:          args,
			Year:           forecastYear,
			Horizon:        forecastHorizon,
			RiskPct:        forecastRiskPct,
			CSVPath:        forecastCSVPath,
			XLSXPath:       forecastXLSXPath,
			PNGPath:        forecastPNGPath,
			MaxChartPoints: forecastChartPoints,
		}
		return getApp().Forecast(cmd.Context(), opts)
	},
}

func init() {
	forecastCmd.Flags().IntVar(&forecastYear, "year", 0, "Default year for workbooks without one in the file name (defaults to config)")
	forecastCmd.Flags().IntVar(&forecastHorizon, "horizon", 0, "Forecast horizon in months, 3-24 (defaults to config)")
	forecastCmd.Flags().Float64Var(&forecastRiskPct, "risk", 0, "Risk factor percentage, 1-50 (defaults to config)")
	forecastCmd.Flags().StringVar(&forecastCSVPath, "csv", "", "Path to write the scenario table as CSV")
	forecastCmd.Flags().StringVar(&forecastXLSXPath, "xlsx", "", "Path to write the scenario table as XLSX")
	forecastCmd.Flags().StringVar(&forecastPNGPath, "png", "", "Path to write a history+forecast PNG chart")
	forecastCmd.Flags().IntVar(&forecastChartPoints, "max-chart-points", 0, "Maximum chart points (defaults to config)")
}
