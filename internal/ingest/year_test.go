package ingest

import "testing"

func TestResolveYearDetected(t *testing.T) {
	cases := []struct {
		file string
		want int
	}{
		{"ventas_2024.xlsx", 2024},
		{"2039-cierre.xlsx", 2039},
		{"resumen 2020 final.xlsx", 2020},
		{"v2025_y_2026.xlsx", 2025}, // first token wins
	}

	for _, tc := range cases {
		year, prov := ResolveYear(tc.file, 2022)
		if year != tc.want {
			t.Fatalf("ResolveYear(%q) = %d, want %d", tc.file, year, tc.want)
		}
		if prov != YearDetected {
			t.Fatalf("ResolveYear(%q) provenance = %q, want detected", tc.file, prov)
		}
	}
}

func TestResolveYearDefault(t *testing.T) {
	cases := []string{
		"ventas.xlsx",
		"ventas_2019.xlsx", // below the recognised window
		"ventas_2040.xlsx", // above the recognised window
		"ledger-v2.xlsx",
	}

	for _, file := range cases {
		year, prov := ResolveYear(file, 2023)
		if year != 2023 {
			t.Fatalf("ResolveYear(%q) = %d, want default 2023", file, year)
		}
		if prov != YearDefault {
			t.Fatalf("ResolveYear(%q) provenance = %q, want default", file, prov)
		}
	}
}
