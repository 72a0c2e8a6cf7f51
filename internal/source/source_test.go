package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileSourceRequiresPaths(t *testing.T) {
	if _, err := NewFiles(nil, zerolog.Nop()).Workbooks(context.Background()); err == nil {
		t.Fatal("empty path list must be rejected")
	}
}

func TestFileSourceDefersReadFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ventas_2024.xlsx")
	missing := filepath.Join(dir, "no_existe.xlsx")

	inputs, err := NewFiles([]string{good, missing}, zerolog.Nop()).Workbooks(context.Background())
	if err != nil {
		t.Fatalf("Workbooks failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want 2; a missing file must still yield an input", len(inputs))
	}

	if _, err := io.ReadAll(inputs[0].Reader); err != nil {
		t.Fatalf("readable file should read cleanly: %v", err)
	}
	if _, err := io.ReadAll(inputs[1].Reader); err == nil {
		t.Fatal("missing file must surface its error at read time")
	}
	if inputs[1].Name != "no_existe.xlsx" {
		t.Fatalf("input name = %q, want base name", inputs[1].Name)
	}
}

func TestDirSourceFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_ventas.xlsx")
	writeFile(t, dir, "a_ventas.XLSM")
	writeFile(t, dir, "notas.txt")
	writeFile(t, dir, "resumen.csv")

	inputs, err := NewDir(filepath.Join(dir, "*"), zerolog.Nop()).Workbooks(context.Background())
	if err != nil {
		t.Fatalf("Workbooks failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want only the 2 spreadsheets", len(inputs))
	}
	if inputs[0].Name != "a_ventas.XLSM" || inputs[1].Name != "b_ventas.xlsx" {
		t.Fatalf("order = %q, %q; want stable name order", inputs[0].Name, inputs[1].Name)
	}
}

func TestDirSourceRequiresGlob(t *testing.T) {
	if _, err := NewDir("", zerolog.Nop()).Workbooks(context.Background()); err == nil {
		t.Fatal("empty glob must be rejected")
	}
}
