package forecast

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrTooShort indicates the history is too small to fit anything at all.
var ErrTooShort = errors.New("forecast: at least two observations are required")

// Attempt records the outcome of one model-family fit attempt.
type Attempt struct {
	Tier Tier
	Err  error
}

// Fit is the result of model selection: the model that succeeded plus the
// ordered attempt trail that led to it.
type Fit struct {
	Model    Model
	Attempts []Attempt
}

// Selector fits the richest model the history supports. Histories of at
// least one full seasonal cycle get a Holt-Winters attempt; shorter ones, or
// cycles on which that fit fails numerically, demote to the damped-trend
// model. Twelve seasonal indices estimated from less than a year of data
// would be degenerate, hence the demotion rather than a hard failure.
type Selector struct {
	period  int
	fitters []fitter
	logger  zerolog.Logger
}

// NewSelector builds a selector for the given seasonal period.
func NewSelector(period int, logger zerolog.Logger) *Selector {
	return &Selector{
		period: period,
		fitters: []fitter{
			holtWintersFitter{period: period},
			dampedTrendFitter{},
		},
		logger: logger.With().Str("component", "selector").Logger(),
	}
}

// newSelectorWithFitters allows tests to substitute the attempt chain.
func newSelectorWithFitters(period int, fitters []fitter, logger zerolog.Logger) *Selector {
	return &Selector{period: period, fitters: fitters, logger: logger}
}

// Fit runs the attempt chain in order and returns the first success. The
// final tier has no fallback: its failure is returned with the underlying
// cause.
func (s *Selector) Fit(values []float64) (*Fit, error) {
	if len(values) < 2 {
		return nil, ErrTooShort
	}

	result := &Fit{}
	for i, f := range s.fitters {
		if f.tier() == TierSeasonal && len(values) < s.period {
			result.Attempts = append(result.Attempts, Attempt{
				Tier: f.tier(),
				Err:  fmt.Errorf("history of %d shorter than seasonal period %d", len(values), s.period),
			})
			continue
		}

		model, err := f.fit(values)
		if err != nil {
			result.Attempts = append(result.Attempts, Attempt{Tier: f.tier(), Err: err})
			if i == len(s.fitters)-1 {
				return nil, fmt.Errorf("forecast: %s fit failed: %w", f.tier(), err)
			}
			s.logger.Info().Str("tier", string(f.tier())).Err(err).Msg("fit attempt failed, demoting")
			continue
		}

		result.Attempts = append(result.Attempts, Attempt{Tier: f.tier()})
		result.Model = model
		s.logger.Debug().Str("tier", string(model.Tier())).Int("history", model.HistoryLen()).Msg("model fitted")
		return result, nil
	}

	return nil, errors.New("forecast: no model family configured")
}
