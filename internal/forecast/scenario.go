package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

// Project turns a fitted model into a dated forecast series starting the
// month after the training series ends.
func Project(model Model, train series.Series, horizon int) series.Series {
	points := model.Forecast(horizon)
	out := make(series.Series, horizon)
	month := train.Last()
	for i, v := range points {
		month = month.AddDate(0, 1, 0)
		out[i] = series.Point{Date: month, Amount: decimal.NewFromFloat(v)}
	}
	return out
}

// Scenario couples a base forecast with its optimistic and pessimistic
// bands. The bands are a flat multiplicative spread around the point
// forecast, not model-native prediction intervals, and must not be read as
// confidence bounds.
type Scenario struct {
	Base        series.Series
	Optimistic  series.Series
	Pessimistic series.Series
	RiskFactor  decimal.Decimal
}

// BuildScenario derives the bands from a base forecast and a risk factor in
// [0.01, 0.50].
func BuildScenario(base series.Series, risk decimal.Decimal) (*Scenario, error) {
	min := decimal.NewFromFloat(0.01)
	max := decimal.NewFromFloat(0.50)
	if risk.LessThan(min) || risk.GreaterThan(max) {
		return nil, fmt.Errorf("forecast: risk factor %s outside [0.01, 0.50]", risk)
	}

	one := decimal.NewFromInt(1)
	up := one.Add(risk)
	down := one.Sub(risk)

	optimistic := make(series.Series, len(base))
	pessimistic := make(series.Series, len(base))
	for i, p := range base {
		optimistic[i] = series.Point{Date: p.Date, Amount: p.Amount.Mul(up)}
		pessimistic[i] = series.Point{Date: p.Date, Amount: p.Amount.Mul(down)}
	}

	return &Scenario{
		Base:        base,
		Optimistic:  optimistic,
		Pessimistic: pessimistic,
		RiskFactor:  risk,
	}, nil
}
