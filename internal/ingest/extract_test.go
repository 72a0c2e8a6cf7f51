package ingest

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmountSumsColumn(t *testing.T) {
	rows := [][]string{
		{"VENTAS MENSUALES ENERO"},
		{"PRODUCTO", "VENTAS"},
		{"Widget A", "100.50"},
		{"Widget B", "200"},
		{"Widget C", "49.50"},
	}

	sum, err := extractAmount(rows, "VENTAS", 15)
	if err != nil {
		t.Fatalf("extractAmount failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromFloat(350)) {
		t.Fatalf("sum = %s, want 350", sum)
	}
}

func TestExtractAmountDropsNonNumericAndTotals(t *testing.T) {
	rows := [][]string{
		{"producto", "ventas"},
		{"Widget A", "100"},
		{"Widget B", "n/a"},
		{"", ""},
		{"TOTAL", "400"},
		{"Sub-Total general", "300"},
		{"Widget C", "200"},
	}

	sum, err := extractAmount(rows, "VENTAS", 15)
	if err != nil {
		t.Fatalf("extractAmount failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("sum = %s, want 300 (non-numeric and total rows excluded)", sum)
	}
}

func TestExtractAmountCaseFoldedHeader(t *testing.T) {
	rows := [][]string{
		{"algo"},
		{"fecha", "  ventas  "},
		{"2024-01-05", "1000"},
	}

	sum, err := extractAmount(rows, "VENTAS", 15)
	if err != nil {
		t.Fatalf("extractAmount failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("sum = %s, want 1000", sum)
	}
}

func TestExtractAmountThousandsSeparators(t *testing.T) {
	rows := [][]string{
		{"PRODUCTO", "VENTAS"},
		{"Widget A", "1,250"},
		{"Widget B", "2,000.50"},
	}

	sum, err := extractAmount(rows, "VENTAS", 15)
	if err != nil {
		t.Fatalf("extractAmount failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromFloat(3250.50)) {
		t.Fatalf("sum = %s, want 3250.50", sum)
	}
}

func TestExtractAmountHeaderNotFound(t *testing.T) {
	rows := [][]string{
		{"PRODUCTO", "MONTO"},
		{"Widget A", "100"},
	}

	if _, err := extractAmount(rows, "VENTAS", 15); !errors.Is(err, errHeaderNotFound) {
		t.Fatalf("err = %v, want errHeaderNotFound", err)
	}
}

func TestExtractAmountHeaderBeyondPreviewWindow(t *testing.T) {
	rows := make([][]string, 0, 20)
	for i := 0; i < 16; i++ {
		rows = append(rows, []string{"relleno"})
	}
	rows = append(rows, []string{"PRODUCTO", "VENTAS"}, []string{"Widget", "10"})

	if _, err := extractAmount(rows, "VENTAS", 15); !errors.Is(err, errHeaderNotFound) {
		t.Fatalf("err = %v, want errHeaderNotFound for header past the preview window", err)
	}
}
