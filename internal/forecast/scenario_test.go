package forecast

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

func monthlySeries(start time.Time, amounts ...int64) series.Series {
	out := make(series.Series, len(amounts))
	month := start
	for i, amount := range amounts {
		out[i] = series.Point{Date: month, Amount: decimal.NewFromInt(amount)}
		month = month.AddDate(0, 1, 0)
	}
	return out
}

func TestProjectDatesFollowTraining(t *testing.T) {
	train := monthlySeries(series.MonthDate(2024, time.January), 100, 110, 120, 130)

	fit, err := NewSelector(12, zerolog.Nop()).Fit(train.Amounts())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	projected := Project(fit.Model, train, 3)
	if len(projected) != 3 {
		t.Fatalf("len = %d, want 3", len(projected))
	}
	if !projected[0].Date.Equal(series.MonthDate(2024, time.May)) {
		t.Fatalf("first forecast month = %v, want 2024-05", projected[0].Date)
	}
	if !projected[2].Date.Equal(series.MonthDate(2024, time.July)) {
		t.Fatalf("last forecast month = %v, want 2024-07", projected[2].Date)
	}
}

func TestBuildScenarioBands(t *testing.T) {
	base := monthlySeries(series.MonthDate(2025, time.January), 1000, 2000)

	scenario, err := BuildScenario(base, decimal.NewFromFloat(0.10))
	if err != nil {
		t.Fatalf("BuildScenario failed: %v", err)
	}

	if !scenario.Optimistic[0].Amount.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("optimistic[0] = %s, want 1100", scenario.Optimistic[0].Amount)
	}
	if !scenario.Pessimistic[1].Amount.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("pessimistic[1] = %s, want 1800", scenario.Pessimistic[1].Amount)
	}
	if !scenario.Optimistic[1].Date.Equal(base[1].Date) {
		t.Fatal("band dates must mirror the base forecast dates")
	}
}

func TestBuildScenarioRiskRange(t *testing.T) {
	base := monthlySeries(series.MonthDate(2025, time.January), 100)

	if _, err := BuildScenario(base, decimal.NewFromFloat(0.005)); err == nil {
		t.Fatal("risk below 0.01 must be rejected")
	}
	if _, err := BuildScenario(base, decimal.NewFromFloat(0.60)); err == nil {
		t.Fatal("risk above 0.50 must be rejected")
	}
	if _, err := BuildScenario(base, decimal.NewFromFloat(0.50)); err != nil {
		t.Fatalf("risk of exactly 0.50 is allowed: %v", err)
	}
}
