package ingest

import (
	"testing"
	"time"
)

func TestResolveMonthFromLabel(t *testing.T) {
	cases := []struct {
		label string
		want  time.Month
	}{
		{"Enero", time.January},
		{"  FEBRERO  ", time.February},
		{"ventas marzo 2024", time.March},
		{"Reporte-Diciembre", time.December},
		{"septiembre", time.September},
	}

	for _, tc := range cases {
		got, ok := ResolveMonth(tc.label, "")
		if !ok {
			t.Fatalf("ResolveMonth(%q) should resolve", tc.label)
		}
		if got != tc.want {
			t.Fatalf("ResolveMonth(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestResolveMonthEarliestWinsOnAmbiguity(t *testing.T) {
	// Calendar-ordered scan: the earlier month wins regardless of position.
	got, ok := ResolveMonth("reporte de febrero y enero", "")
	if !ok || got != time.January {
		t.Fatalf("ambiguous label resolved to %v, want January", got)
	}

	got, ok = ResolveMonth("Hoja1", "cierre noviembre incluye ajuste de abril")
	if !ok || got != time.April {
		t.Fatalf("ambiguous preview resolved to %v, want April", got)
	}
}

func TestResolveMonthPreviewFallback(t *testing.T) {
	got, ok := ResolveMonth("Hoja3", "VENTAS DEL MES DE JULIO")
	if !ok || got != time.July {
		t.Fatalf("preview fallback resolved to %v, want July", got)
	}
}

func TestResolveMonthUnresolved(t *testing.T) {
	if _, ok := ResolveMonth("Resumen", "totales anuales"); ok {
		t.Fatal("label without month names should not resolve")
	}
	if _, ok := ResolveMonth("", ""); ok {
		t.Fatal("empty inputs should not resolve")
	}
}
