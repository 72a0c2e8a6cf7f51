package app

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/forecast"
	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

var scenarioHeader = []string{"Month", "Pessimistic", "Base", "Optimistic"}
var backtestHeader = []string{"Month", "Actual", "Predicted", "Difference", "Error%"}

func writeScenarioCSV(path string, scenario *forecast.Scenario) error {
	return writeCSV(path, scenarioHeader, scenarioRows(scenario))
}

func writeBacktestCSV(path string, result *forecast.BacktestResult) error {
	return writeCSV(path, backtestHeader, backtestRows(result))
}

func scenarioRows(scenario *forecast.Scenario) [][]string {
	rows := make([][]string, 0, len(scenario.Base))
	for i, base := range scenario.Base {
		rows = append(rows, []string{
			base.Date.Format(monthLayout),
			formatDecimal(scenario.Pessimistic[i].Amount, 2),
			formatDecimal(base.Amount, 2),
			formatDecimal(scenario.Optimistic[i].Amount, 2),
		})
	}
	return rows
}

func backtestRows(result *forecast.BacktestResult) [][]string {
	rows := make([][]string, 0, len(result.Periods))
	for _, period := range result.Periods {
		rows = append(rows, []string{
			period.Date.Format(monthLayout),
			formatDecimal(period.Actual, 2),
			formatDecimal(period.Predicted, 2),
			formatDecimal(period.AbsoluteError, 2),
			formatDecimal(period.ErrorPct, 2),
		})
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}

// writeScenarioXLSX writes the scenario table as one workbook sheet with
// numeric amount cells.
func writeScenarioXLSX(path string, scenario *forecast.Scenario) error {
	book, sheet := newWorkbook("Proyeccion")
	defer book.Close()

	if err := writeHeaderRow(book, sheet, scenarioHeader); err != nil {
		return err
	}
	for i, base := range scenario.Base {
		cells := []any{
			base.Date.Format(monthLayout),
			scenario.Pessimistic[i].Amount.InexactFloat64(),
			base.Amount.InexactFloat64(),
			scenario.Optimistic[i].Amount.InexactFloat64(),
		}
		if err := writeDataRow(book, sheet, i+2, cells); err != nil {
			return err
		}
	}

	return saveWorkbook(book, path)
}

// writeBacktestXLSX writes the per-period audit table as one workbook sheet.
func writeBacktestXLSX(path string, result *forecast.BacktestResult) error {
	book, sheet := newWorkbook("Backtest")
	defer book.Close()

	if err := writeHeaderRow(book, sheet, backtestHeader); err != nil {
		return err
	}
	for i, period := range result.Periods {
		cells := []any{
			period.Date.Format(monthLayout),
			period.Actual.InexactFloat64(),
			period.Predicted.InexactFloat64(),
			period.AbsoluteError.InexactFloat64(),
			period.ErrorPct.InexactFloat64(),
		}
		if err := writeDataRow(book, sheet, i+2, cells); err != nil {
			return err
		}
	}

	return saveWorkbook(book, path)
}

func newWorkbook(sheet string) (*excelize.File, string) {
	book := excelize.NewFile()
	_ = book.SetSheetName("Sheet1", sheet)
	return book, sheet
}

func writeHeaderRow(book *excelize.File, sheet string, header []string) error {
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return writeDataRow(book, sheet, 1, cells)
}

func writeDataRow(book *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, name, value); err != nil {
			return err
		}
	}
	return nil
}

func saveWorkbook(book *excelize.File, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return book.SaveAs(path)
}

// writeForecastPNG charts the history together with the base forecast and
// its bands.
func writeForecastPNG(path string, history series.Series, scenario *forecast.Scenario, maxPoints int) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	sampled := downsamplePoints(history, maxPoints)
	histX, histY := chartValues(sampled)
	baseX, baseY := chartValues(scenario.Base)
	_, optimisticY := chartValues(scenario.Optimistic)
	_, pessimisticY := chartValues(scenario.Pessimistic)

	amountFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(monthLayout),
		},
		YAxis: chart.YAxis{
			Name:           "Sales",
			ValueFormatter: amountFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "History",
				XValues: histX,
				YValues: histY,
			},
			chart.TimeSeries{
				Name:    "Forecast",
				XValues: baseX,
				YValues: baseY,
			},
			chart.TimeSeries{
				Name:    "Optimistic",
				XValues: baseX,
				YValues: optimisticY,
			},
			chart.TimeSeries{
				Name:    "Pessimistic",
				XValues: baseX,
				YValues: pessimisticY,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func chartValues(s series.Series) ([]time.Time, []float64) {
	x := make([]time.Time, len(s))
	y := make([]float64, len(s))
	for i, point := range s {
		x[i] = point.Date
		y[i] = point.Amount.InexactFloat64()
	}
	return x, y
}

func downsamplePoints(s series.Series, max int) series.Series {
	if max <= 0 || len(s) <= max {
		return s
	}

	result := make(series.Series, 0, max)
	step := float64(len(s)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(s) {
			idx = len(s) - 1
		}
		result = append(result, s[idx])
	}
	return result
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
