package series

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyHarvest indicates that no monthly records survived ingestion, so
// no canonical series can be built.
var ErrEmptyHarvest = errors.New("series: no records harvested, cannot build series")

// Record is one month's total extracted from a single sheet. Records are
// immutable once emitted by the harvester.
type Record struct {
	Date   time.Time
	Amount decimal.Decimal
	Source string
}

// Point is a single (month, amount) observation of the canonical series.
type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Series is the canonical monthly sales series: sorted ascending, exactly
// one point per calendar month between its first and last date. Transformed
// copies are always rebuilt, never mutated in place.
type Series []Point

// MonthStart normalises an arbitrary timestamp to the first of its month, UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthDate builds a first-of-month date from its parts.
func MonthDate(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// Consolidate aggregates harvested records into the canonical series. Records
// landing on the same month are summed (several sheets may feed one month),
// and interior months with no data are filled with zero so the series has no
// gaps. The zero fill deliberately conflates "no data" with "no sales"; see
// Backtest for how zero actuals are scored.
func Consolidate(records []Record) (Series, error) {
	if len(records) == 0 {
		return nil, ErrEmptyHarvest
	}

	grouped := make(map[time.Time]decimal.Decimal, len(records))
	for _, rec := range records {
		month := MonthStart(rec.Date)
		grouped[month] = grouped[month].Add(rec.Amount)
	}

	months := make([]time.Time, 0, len(grouped))
	for month := range grouped {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	first := months[0]
	last := months[len(months)-1]

	out := make(Series, 0, len(grouped))
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		out = append(out, Point{Date: month, Amount: grouped[month]})
	}
	return out, nil
}

// First returns the earliest month of the series.
func (s Series) First() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// Last returns the latest month of the series.
func (s Series) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// Amounts extracts the amount column as float64 for numeric fitting.
func (s Series) Amounts() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Amount.InexactFloat64()
	}
	return out
}

// SplitTail splits the series into everything but the last n points and the
// last n points. Both halves share no backing storage with each other.
func (s Series) SplitTail(n int) (head, tail Series) {
	if n <= 0 || n >= len(s) {
		return append(Series(nil), s...), nil
	}
	cut := len(s) - n
	head = append(Series(nil), s[:cut]...)
	tail = append(Series(nil), s[cut:]...)
	return head, tail
}
