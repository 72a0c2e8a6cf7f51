package forecast

import (
	"errors"
	"fmt"
	"math"
)

// Tier identifies which smoothing model family a fit used.
type Tier string

const (
	// TierSeasonal is additive trend + additive seasonality (Holt-Winters).
	TierSeasonal Tier = "seasonal-trend"
	// TierDamped is additive damped trend, no seasonality (Holt).
	TierDamped Tier = "damped-trend"
)

// Model is a fitted smoothing model able to project point forecasts.
type Model interface {
	// Forecast returns horizon step-ahead point forecasts.
	Forecast(horizon int) []float64
	// Tier reports the model family that produced the fit.
	Tier() Tier
	// HistoryLen reports how many observations the model was trained on.
	HistoryLen() int
}

// fitter fits one model family to a value sequence.
type fitter interface {
	tier() Tier
	fit(values []float64) (Model, error)
}

// Smoothing parameters are estimated by a deterministic grid search
// minimising one-step-ahead SSE. Fixed grids keep repeated fits on the same
// data bit-identical.
var (
	smoothingGrid = gridValues(0.05, 0.95, 0.05)
	dampingGrid   = gridValues(0.80, 0.98, 0.02)
)

func gridValues(from, to, step float64) []float64 {
	var out []float64
	for v := from; v <= to+1e-9; v += step {
		out = append(out, math.Round(v*100)/100)
	}
	return out
}

func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite observation at index %d", i)
		}
	}
	return nil
}

// --- Holt-Winters: additive trend, additive seasonality -------------------

type holtWintersFitter struct {
	period int
}

func (f holtWintersFitter) tier() Tier { return TierSeasonal }

func (f holtWintersFitter) fit(values []float64) (Model, error) {
	n := len(values)
	m := f.period
	if m < 2 {
		return nil, fmt.Errorf("seasonal period %d too small", m)
	}
	if n < m {
		return nil, fmt.Errorf("need at least %d observations for one seasonal cycle, have %d", m, n)
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	level0, trend0, seasonal0 := seasonalInit(values, m)

	best := holtWintersModel{period: m, n: n}
	bestSSE := math.Inf(1)
	for _, alpha := range smoothingGrid {
		for _, beta := range smoothingGrid {
			for _, gamma := range smoothingGrid {
				sse, ok := holtWintersSSE(values, m, alpha, beta, gamma, level0, trend0, seasonal0)
				if ok && sse < bestSSE {
					bestSSE = sse
					best.alpha, best.beta, best.gamma = alpha, beta, gamma
				}
			}
		}
	}
	if math.IsInf(bestSSE, 1) {
		return nil, errors.New("holt-winters smoothing diverged for every parameter candidate")
	}

	best.level, best.trend, best.seasonal = holtWintersState(values, m, best.alpha, best.beta, best.gamma, level0, trend0, seasonal0)
	return &best, nil
}

// seasonalInit estimates starting state from the data: the level is the
// first cycle's mean, the trend the averaged cross-cycle slope (in-cycle
// slope when only one full cycle exists), and the seasonal indices the mean
// deviation per position across all full cycles.
func seasonalInit(values []float64, m int) (level, trend float64, seasonal []float64) {
	first := mean(values[:m])
	level = first

	if len(values) >= 2*m {
		second := mean(values[m : 2*m])
		trend = (second - first) / float64(m)
	} else {
		trend = (values[m-1] - values[0]) / float64(m-1)
	}

	cycles := len(values) / m
	seasonal = make([]float64, m)
	for i := 0; i < m; i++ {
		var dev float64
		for c := 0; c < cycles; c++ {
			cycleMean := mean(values[c*m : (c+1)*m])
			dev += values[c*m+i] - cycleMean
		}
		seasonal[i] = dev / float64(cycles)
	}
	return level, trend, seasonal
}

func holtWintersSSE(values []float64, m int, alpha, beta, gamma, level0, trend0 float64, seasonal0 []float64) (float64, bool) {
	level, trend := level0, trend0
	seas := make([]float64, len(values)+m)
	copy(seas, seasonal0)

	var sse float64
	for t, y := range values {
		fitted := level + trend + seas[t]
		resid := y - fitted
		sse += resid * resid

		prevLevel := level
		level = alpha*(y-seas[t]) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seas[t+m] = gamma*(y-level) + (1-gamma)*seas[t]
	}
	if math.IsNaN(sse) || math.IsInf(sse, 0) {
		return 0, false
	}
	return sse, true
}

func holtWintersState(values []float64, m int, alpha, beta, gamma, level0, trend0 float64, seasonal0 []float64) (level, trend float64, seasonal []float64) {
	level, trend = level0, trend0
	seas := make([]float64, len(values)+m)
	copy(seas, seasonal0)

	for t, y := range values {
		prevLevel := level
		level = alpha*(y-seas[t]) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seas[t+m] = gamma*(y-level) + (1-gamma)*seas[t]
	}
	return level, trend, seas[len(values):]
}

type holtWintersModel struct {
	period             int
	n                  int
	alpha, beta, gamma float64
	level, trend       float64
	seasonal           []float64
}

func (m *holtWintersModel) Tier() Tier      { return TierSeasonal }
func (m *holtWintersModel) HistoryLen() int { return m.n }

func (m *holtWintersModel) Forecast(horizon int) []float64 {
	out := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		out[h-1] = m.level + float64(h)*m.trend + m.seasonal[(h-1)%m.period]
	}
	return out
}

// --- Holt: additive damped trend, no seasonality ---------------------------

type dampedTrendFitter struct{}

func (dampedTrendFitter) tier() Tier { return TierDamped }

func (dampedTrendFitter) fit(values []float64) (Model, error) {
	n := len(values)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 observations, have %d", n)
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	level0 := values[0]
	trend0 := values[1] - values[0]

	best := dampedTrendModel{n: n}
	bestSSE := math.Inf(1)
	for _, alpha := range smoothingGrid {
		for _, beta := range smoothingGrid {
			for _, phi := range dampingGrid {
				sse, ok := dampedSSE(values, alpha, beta, phi, level0, trend0)
				if ok && sse < bestSSE {
					bestSSE = sse
					best.alpha, best.beta, best.phi = alpha, beta, phi
				}
			}
		}
	}
	if math.IsInf(bestSSE, 1) {
		return nil, errors.New("damped-trend smoothing diverged for every parameter candidate")
	}

	best.level, best.trend = dampedState(values, best.alpha, best.beta, best.phi, level0, trend0)
	return &best, nil
}

func dampedSSE(values []float64, alpha, beta, phi, level0, trend0 float64) (float64, bool) {
	level, trend := level0, trend0

	var sse float64
	for _, y := range values {
		fitted := level + phi*trend
		resid := y - fitted
		sse += resid * resid

		prevLevel := level
		level = alpha*y + (1-alpha)*(level+phi*trend)
		trend = beta*(level-prevLevel) + (1-beta)*phi*trend
	}
	if math.IsNaN(sse) || math.IsInf(sse, 0) {
		return 0, false
	}
	return sse, true
}

func dampedState(values []float64, alpha, beta, phi, level0, trend0 float64) (level, trend float64) {
	level, trend = level0, trend0
	for _, y := range values {
		prevLevel := level
		level = alpha*y + (1-alpha)*(level+phi*trend)
		trend = beta*(level-prevLevel) + (1-beta)*phi*trend
	}
	return level, trend
}

type dampedTrendModel struct {
	n                int
	alpha, beta, phi float64
	level, trend     float64
}

func (m *dampedTrendModel) Tier() Tier      { return TierDamped }
func (m *dampedTrendModel) HistoryLen() int { return m.n }

func (m *dampedTrendModel) Forecast(horizon int) []float64 {
	out := make([]float64, horizon)
	damp := 0.0
	phiPow := 1.0
	for h := 1; h <= horizon; h++ {
		phiPow *= m.phi
		damp += phiPow
		out[h-1] = m.level + damp*m.trend
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
