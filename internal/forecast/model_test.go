package forecast

import (
	"math"
	"testing"
)

func TestDampedTrendFitsTwoPoints(t *testing.T) {
	model, err := dampedTrendFitter{}.fit([]float64{100, 110})
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if model.Tier() != TierDamped {
		t.Fatalf("tier = %s, want damped", model.Tier())
	}
	if model.HistoryLen() != 2 {
		t.Fatalf("history = %d, want 2", model.HistoryLen())
	}

	out := model.Forecast(4)
	if len(out) != 4 {
		t.Fatalf("forecast length = %d, want 4", len(out))
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("forecast[%d] = %v, want finite", i, v)
		}
	}
}

func TestDampedTrendIncrementsShrink(t *testing.T) {
	values := []float64{100, 120, 140, 160, 180, 200}
	model, err := dampedTrendFitter{}.fit(values)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	out := model.Forecast(6)
	for h := 2; h < len(out); h++ {
		prev := math.Abs(out[h-1] - out[h-2])
		cur := math.Abs(out[h] - out[h-1])
		if cur > prev+1e-9 {
			t.Fatalf("step %d grew: |Δ|=%.6f after %.6f; damping must flatten the trend", h, cur, prev)
		}
	}
}

func TestDampedTrendRejectsShortOrBrokenInput(t *testing.T) {
	if _, err := (dampedTrendFitter{}).fit([]float64{42}); err == nil {
		t.Fatal("single observation should not fit")
	}
	if _, err := (dampedTrendFitter{}).fit([]float64{1, math.NaN(), 3}); err == nil {
		t.Fatal("NaN input should not fit")
	}
}

func TestHoltWintersNeedsFullCycle(t *testing.T) {
	values := make([]float64, 11)
	for i := range values {
		values[i] = 100
	}
	if _, err := (holtWintersFitter{period: 12}).fit(values); err == nil {
		t.Fatal("11 observations should not fit a period-12 model")
	}
}

func TestHoltWintersLearnsSeasonalShape(t *testing.T) {
	// Three years with a strong December peak and a mild trend.
	values := make([]float64, 36)
	for i := range values {
		values[i] = 100 + 0.5*float64(i)
		if i%12 == 11 {
			values[i] += 60
		}
	}

	model, err := (holtWintersFitter{period: 12}).fit(values)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if model.Tier() != TierSeasonal {
		t.Fatalf("tier = %s, want seasonal", model.Tier())
	}

	out := model.Forecast(12)
	december := out[11]
	january := out[0]
	if december-january < 30 {
		t.Fatalf("December forecast %.2f should sit well above January %.2f", december, january)
	}
}

func TestHoltWintersForecastIsDeterministic(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 200 + 10*float64(i%12)
	}

	first, err := (holtWintersFitter{period: 12}).fit(values)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	second, err := (holtWintersFitter{period: 12}).fit(values)
	if err != nil {
		t.Fatalf("refit failed: %v", err)
	}

	a := first.Forecast(6)
	b := second.Forecast(6)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("forecast[%d] differs between identical fits: %v vs %v", i, a[i], b[i])
		}
	}
}
