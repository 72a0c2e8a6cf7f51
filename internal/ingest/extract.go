package ingest

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// errHeaderNotFound means no preview row carried the amount label.
	errHeaderNotFound = errors.New("ingest: header row not found")
	// errAmountColumnMissing means the located header row lost the amount
	// label after normalisation.
	errAmountColumnMissing = errors.New("ingest: amount column missing after normalisation")
)

// extractAmount locates the header row carrying the amount label within the
// sheet's leading rows, then sums the amount column below it into a single
// scalar. Non-numeric cells are treated as missing and their rows dropped.
// Rows whose first column mentions "total" are dropped too, so subtotal and
// grand-total lines are never double counted.
func extractAmount(rows [][]string, amountLabel string, previewRows int) (decimal.Decimal, error) {
	folded := strings.ToLower(strings.TrimSpace(amountLabel))

	headerIdx := -1
	limit := previewRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for i := 0; i < limit && headerIdx < 0; i++ {
		for _, cell := range rows[i] {
			if strings.ToLower(strings.TrimSpace(cell)) == folded {
				headerIdx = i
				break
			}
		}
	}
	if headerIdx < 0 {
		return decimal.Zero, errHeaderNotFound
	}

	normalized := strings.ToUpper(strings.TrimSpace(amountLabel))
	amountCol := -1
	for j, cell := range rows[headerIdx] {
		if strings.ToUpper(strings.TrimSpace(cell)) == normalized {
			amountCol = j
			break
		}
	}
	if amountCol < 0 {
		return decimal.Zero, errAmountColumnMissing
	}

	sum := decimal.Zero
	for _, row := range rows[headerIdx+1:] {
		if len(row) > 0 && strings.Contains(strings.ToLower(row[0]), "total") {
			continue
		}
		if len(row) <= amountCol {
			continue
		}
		amount, ok := parseAmount(row[amountCol])
		if !ok {
			continue
		}
		sum = sum.Add(amount)
	}
	return sum, nil
}

// parseAmount coerces a cell to a decimal amount. Thousands separators are
// tolerated; anything else non-numeric counts as missing.
func parseAmount(cell string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return decimal.Zero, false
	}
	if amount, err := decimal.NewFromString(trimmed); err == nil {
		return amount, true
	}
	stripped := strings.ReplaceAll(trimmed, ",", "")
	if amount, err := decimal.NewFromString(stripped); err == nil {
		return amount, true
	}
	return decimal.Zero, false
}
