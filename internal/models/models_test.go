package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseOperationType(t *testing.T) {
	tests := []struct {
		input    string
		expected OperationType
		ok       bool
	}{
		{"Entrada", OperationEntrada, true},
		{"Saída", OperationSaida, true},
		{"  Entrada  ", OperationEntrada, true},
		{"entrada", "", false},
		{"Transfer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		op, ok := ParseOperationType(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseOperationType(%q): expected ok=%v, got %v", tt.input, tt.ok, ok)
			continue
		}
		if ok && op != tt.expected {
			t.Errorf("ParseOperationType(%q): expected %s, got %s", tt.input, tt.expected, op)
		}
	}
}

func TestOperationType_IsValid(t *testing.T) {
	if !OperationEntrada.IsValid() || !OperationSaida.IsValid() {
		t.Error("Expected known directions to be valid")
	}
	if OperationType("Other").IsValid() {
		t.Error("Expected unknown direction to be invalid")
	}
}

func TestMovementRecord_Key(t *testing.T) {
	record := NewMovementRecord("123456", "001", "CLIENTE A", "Loja 2", decimal.NewFromFloat(1500.0), "Dinheiro")

	key := record.Key()
	if key.Identifier != "123456" {
		t.Errorf("Expected identifier 123456, got %s", key.Identifier)
	}
	if key.Amount != "1500.00" {
		t.Errorf("Expected amount 1500.00, got %s", key.Amount)
	}
	if key.Branch != "Loja 2" {
		t.Errorf("Expected branch 'Loja 2', got %s", key.Branch)
	}
}

func TestNewKey_Rounding(t *testing.T) {
	a := NewKey("123456", decimal.NewFromFloat(10.005), "Loja 1")
	b := NewKey("123456", decimal.NewFromFloat(10.01), "Loja 1")

	if a != b {
		t.Errorf("Expected keys to agree after rounding: %s vs %s", a, b)
	}

	c := NewKey("123456", decimal.NewFromFloat(10.02), "Loja 1")
	if a == c {
		t.Error("Expected different amounts to produce different keys")
	}
}

func TestNewKey_TrimsIdentifier(t *testing.T) {
	key := NewKey("  123456  ", decimal.NewFromInt(10), "Loja 1")
	if key.Identifier != "123456" {
		t.Errorf("Expected trimmed identifier, got %q", key.Identifier)
	}
}

func TestLedgerEntry_Key_MatchesRecordKey(t *testing.T) {
	record := NewMovementRecord("123456", "001", "CLIENTE A", "Loja 2", decimal.NewFromFloat(1500.0), "Dinheiro")
	entry := NewLedgerEntry("123456", decimal.NewFromFloat(1500.0), "Loja 2", "2024-01-15", "CLIENTE A")

	if record.Key() != entry.Key() {
		t.Errorf("Expected matching keys, got %s vs %s", record.Key(), entry.Key())
	}
}

func TestMovementRecord_Validate(t *testing.T) {
	record := NewMovementRecord("", "001", "X", "Loja 1", decimal.Zero, "")
	if err := record.Validate(); err == nil {
		t.Error("Expected validation error for empty movement identifier")
	}

	record.Movement = "123456"
	if err := record.Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}
}

func TestDefaultPaymentMethods(t *testing.T) {
	methods := DefaultPaymentMethods()
	if len(methods) != 7 {
		t.Errorf("Expected 7 payment methods, got %d", len(methods))
	}

	seen := make(map[string]bool)
	for _, m := range methods {
		if seen[m] {
			t.Errorf("Duplicate payment method: %s", m)
		}
		seen[m] = true
	}

	if !seen["Dinheiro"] || !seen["Transferência Pix"] {
		t.Error("Expected core payment methods in vocabulary")
	}
}
