package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

// ErrInsufficientHistory indicates the series cannot cover the requested
// withholding window.
var ErrInsufficientHistory = errors.New("forecast: history not longer than backtest horizon")

var hundred = decimal.NewFromInt(100)

// BacktestPeriod scores one withheld month.
type BacktestPeriod struct {
	Date          time.Time
	Actual        decimal.Decimal
	Predicted     decimal.Decimal
	AbsoluteError decimal.Decimal
	ErrorPct      decimal.Decimal
	// ZeroActual flags months whose actual is exactly zero. Percentage
	// error is undefined there, so the period is scored pessimistically at
	// 100% and flagged instead of being dropped from the aggregate.
	ZeroActual bool
}

// BacktestResult is the full self-audit outcome.
type BacktestResult struct {
	Train     series.Series
	Actuals   series.Series
	Predicted series.Series
	Periods   []BacktestPeriod
	MAPE      decimal.Decimal
	Precision decimal.Decimal
	Fit       *Fit
}

// Backtest withholds the trailing horizon months, refits on the remainder,
// forecasts the withheld window, and scores the prediction. The series must
// be strictly longer than the horizon.
func Backtest(s series.Series, horizon int, selector *Selector) (*BacktestResult, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("forecast: horizon must be positive, got %d", horizon)
	}
	if len(s) <= horizon {
		return nil, fmt.Errorf("%w: have %d months, need more than %d", ErrInsufficientHistory, len(s), horizon)
	}

	train, actuals := s.SplitTail(horizon)

	fit, err := selector.Fit(train.Amounts())
	if err != nil {
		return nil, err
	}

	predicted := Project(fit.Model, train, horizon)

	periods := make([]BacktestPeriod, horizon)
	pctSum := decimal.Zero
	for i, actual := range actuals {
		pred := predicted[i].Amount
		absErr := actual.Amount.Sub(pred).Abs()

		period := BacktestPeriod{
			Date:          actual.Date,
			Actual:        actual.Amount,
			Predicted:     pred,
			AbsoluteError: absErr,
		}
		if actual.Amount.IsZero() {
			period.ErrorPct = hundred
			period.ZeroActual = true
		} else {
			period.ErrorPct = absErr.Div(actual.Amount).Mul(hundred)
		}
		pctSum = pctSum.Add(period.ErrorPct)
		periods[i] = period
	}

	mape := pctSum.Div(decimal.NewFromInt(int64(horizon)))

	return &BacktestResult{
		Train:     train,
		Actuals:   actuals,
		Predicted: predicted,
		Periods:   periods,
		MAPE:      mape,
		Precision: hundred.Sub(mape),
		Fit:       fit,
	}, nil
}
