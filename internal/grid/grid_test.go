package grid

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestWorkbook(t *testing.T, dir, name string, header []string, rows [][]interface{}) string {
	t.Helper()

	w := NewWorkbook("Dados")
	if err := w.SetHeader(header); err != nil {
		t.Fatalf("SetHeader failed: %v", err)
	}
	for _, row := range rows {
		if err := w.AppendRow(row); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := w.SaveAtomic(path); err != nil {
		t.Fatalf("SaveAtomic failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return EnsureXLSXExt(path)
}

func TestWorkbookRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path := writeTestWorkbook(t, dir, "out.xlsx",
		[]string{"Código", "Valor"},
		[][]interface{}{
			{"123456", 1500.5},
			{"654321", 10.0},
		})

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}

	if table.Rows[0]["Código"] != "123456" {
		t.Errorf("Expected Código 123456, got %q", table.Rows[0]["Código"])
	}

	if !table.HasColumn("Valor") {
		t.Error("Expected Valor column to be present")
	}
}

func TestLoadGrid_PreservesRowOrder(t *testing.T) {
	dir := t.TempDir()

	path := writeTestWorkbook(t, dir, "grid.xlsx",
		[]string{"a"},
		[][]interface{}{{"first"}, {"second"}, {"third"}})

	rows, err := LoadGrid(path)
	if err != nil {
		t.Fatalf("LoadGrid failed: %v", err)
	}

	// Header plus three data rows, in original order
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[1][0] != "first" || rows[3][0] != "third" {
		t.Errorf("Expected original row order, got %v", rows)
	}
}

func TestLoadGrid_MissingFile(t *testing.T) {
	_, err := LoadGrid(filepath.Join(t.TempDir(), "missing.xlsx"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestTable_RequireColumns(t *testing.T) {
	table := &Table{Headers: []string{"Código", "Valor (R$)"}}

	if err := table.RequireColumns("ledger.xlsx", []string{"Código"}); err != nil {
		t.Errorf("Expected required column to be found, got %v", err)
	}

	err := table.RequireColumns("ledger.xlsx", []string{"Código", "Filial"})
	if err == nil {
		t.Fatal("Expected error for missing Filial column")
	}
}

func TestEnsureXLSXExt(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"out", "out.xlsx"},
		{"out.xlsx", "out.xlsx"},
		{"out.XLSX", "out.XLSX"},
		{"out.xls", "out.xls"},
		{"dir/report", "dir/report.xlsx"},
	}

	for _, tt := range tests {
		if got := EnsureXLSXExt(tt.input); got != tt.expected {
			t.Errorf("EnsureXLSXExt(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestEnsureWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	if err := EnsureWritableDir(dir); err != nil {
		t.Fatalf("Expected directory to be created, got %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatal("Expected directory to exist after EnsureWritableDir")
	}
}

func TestSaveAtomic_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	path := writeTestWorkbook(t, dir, "clean.xlsx", []string{"x"}, [][]interface{}{{"1"}})

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be renamed away")
	}
}
