package reconciler

import (
	"testing"

	"github.com/shopspring/decimal"

	"caixasync/internal/models"
	"caixasync/pkg/errors"
)

func TestBuildImportRows(t *testing.T) {
	entries := []*models.LedgerEntry{
		{
			Code:         "123456",
			Amount:       decimal.NewFromFloat(1500.00),
			Branch:       "Loja 2",
			MovementDate: "2026-03-15",
			Counterparty: "CLIENTE A",
		},
	}

	rows, err := BuildImportRows(entries, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.CompetenceDate != "15/03/2026" {
		t.Errorf("Expected canonical date, got %q", row.CompetenceDate)
	}
	if row.DueDate != row.CompetenceDate {
		t.Error("Expected the movement date to stamp the due date")
	}
	if row.PaymentDate != "" {
		t.Errorf("Expected empty payment date, got %q", row.PaymentDate)
	}
	if row.Category != "Receitas de Vendas" {
		t.Errorf("Expected fixed category, got %q", row.Category)
	}
	if row.Description != "Recebimento Mov. Nº 123456" {
		t.Errorf("Unexpected description %q", row.Description)
	}
	if row.CostCenter != "Loja 02 - São Francisco" {
		t.Errorf("Unexpected cost center %q", row.CostCenter)
	}
	if row.CounterpartyTaxID != "" {
		t.Errorf("Expected empty tax id, got %q", row.CounterpartyTaxID)
	}
	if !row.Amount.Equal(decimal.NewFromFloat(1500.00)) {
		t.Errorf("Unexpected amount %s", row.Amount)
	}
}

func TestBuildImportRows_BadDateIsHardError(t *testing.T) {
	entries := []*models.LedgerEntry{
		{Code: "123456", MovementDate: "not a date", Branch: "Loja 1"},
	}

	_, err := BuildImportRows(entries, nil)
	if err == nil {
		t.Fatal("Expected error for unparsable date")
	}

	procErr, ok := errors.AsProcessorError(err)
	if !ok {
		t.Fatalf("Expected ProcessorError, got %T", err)
	}
	if procErr.Code != errors.CodeInvalidDate {
		t.Errorf("Expected invalid_date code, got %s", procErr.Code)
	}
}

func TestBuildImportRows_EmptyDatePasses(t *testing.T) {
	entries := []*models.LedgerEntry{
		{Code: "123456", MovementDate: "", Branch: "Loja 1"},
	}

	rows, err := BuildImportRows(entries, nil)
	if err != nil {
		t.Fatalf("Expected empty date to pass through, got %v", err)
	}
	if rows[0].CompetenceDate != "" {
		t.Errorf("Expected empty date columns, got %q", rows[0].CompetenceDate)
	}
}
