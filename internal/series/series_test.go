package series

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestConsolidateEmptyHarvest(t *testing.T) {
	if _, err := Consolidate(nil); !errors.Is(err, ErrEmptyHarvest) {
		t.Fatalf("err = %v, want ErrEmptyHarvest", err)
	}
}

func TestConsolidateSumsSameMonth(t *testing.T) {
	records := []Record{
		{Date: MonthDate(2024, time.January), Amount: amount(100), Source: "a.xlsx!Enero"},
		{Date: MonthDate(2024, time.January), Amount: amount(250), Source: "b.xlsx!Enero"},
	}

	s, err := Consolidate(records)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(s) != 1 {
		t.Fatalf("len = %d, want 1", len(s))
	}
	if !s[0].Amount.Equal(amount(350)) {
		t.Fatalf("amount = %s, want 350", s[0].Amount)
	}
}

func TestConsolidateFillsInteriorGaps(t *testing.T) {
	records := []Record{
		{Date: MonthDate(2024, time.March), Amount: amount(300)},
		{Date: MonthDate(2024, time.January), Amount: amount(100)},
	}

	s, err := Consolidate(records)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(s) != 3 {
		t.Fatalf("len = %d, want 3 (Jan, Feb, Mar)", len(s))
	}
	if !s[0].Date.Equal(MonthDate(2024, time.January)) || !s[2].Date.Equal(MonthDate(2024, time.March)) {
		t.Fatalf("range = %v..%v, want Jan..Mar", s[0].Date, s[2].Date)
	}
	if !s[1].Amount.IsZero() {
		t.Fatalf("February = %s, want 0", s[1].Amount)
	}
}

func TestConsolidateContiguousNoFill(t *testing.T) {
	records := []Record{
		{Date: MonthDate(2024, time.January), Amount: amount(1000)},
		{Date: MonthDate(2024, time.February), Amount: amount(1500)},
	}

	s, err := Consolidate(records)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("len = %d, want 2", len(s))
	}
	if !s[0].Amount.Equal(amount(1000)) || !s[1].Amount.Equal(amount(1500)) {
		t.Fatalf("amounts = %s, %s, want 1000, 1500", s[0].Amount, s[1].Amount)
	}
}

func TestConsolidateSpansYearBoundary(t *testing.T) {
	records := []Record{
		{Date: MonthDate(2023, time.November), Amount: amount(10)},
		{Date: MonthDate(2024, time.February), Amount: amount(20)},
	}

	s, err := Consolidate(records)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(s) != 4 {
		t.Fatalf("len = %d, want 4 (Nov, Dec, Jan, Feb)", len(s))
	}
	if !s[1].Amount.IsZero() || !s[2].Amount.IsZero() {
		t.Fatalf("interior months should be zero filled")
	}
}

func TestSplitTail(t *testing.T) {
	s := Series{
		{Date: MonthDate(2024, time.January), Amount: amount(1)},
		{Date: MonthDate(2024, time.February), Amount: amount(2)},
		{Date: MonthDate(2024, time.March), Amount: amount(3)},
	}

	head, tail := s.SplitTail(1)
	if len(head) != 2 || len(tail) != 1 {
		t.Fatalf("split = %d/%d, want 2/1", len(head), len(tail))
	}
	if !tail[0].Date.Equal(MonthDate(2024, time.March)) {
		t.Fatalf("tail starts at %v, want March", tail[0].Date)
	}

	head, tail = s.SplitTail(3)
	if len(head) != 3 || tail != nil {
		t.Fatalf("splitting the whole series should keep everything in head")
	}
}
