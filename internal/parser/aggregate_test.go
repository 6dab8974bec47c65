package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func pendingFixture() []PendingRecord {
	return []PendingRecord{
		{
			Movement:      "123456",
			Code:          "001",
			Counterparty:  "CLIENTE A",
			Document:      "NF 10",
			Amount:        decimal.NewFromFloat(1500.00),
			PaymentMethod: "Dinheiro",
			Operator:      "geizy",
		},
		{
			Movement:      "123456",
			Code:          "002",
			Counterparty:  "CLIENTE B",
			Document:      "NF 11",
			Amount:        decimal.NewFromFloat(1500.00),
			PaymentMethod: "Dinheiro",
			Operator:      "geizy",
		},
		{
			Movement:      "654321",
			Code:          "003",
			Counterparty:  "CLIENTE C",
			Document:      "",
			Amount:        decimal.NewFromFloat(75.50),
			PaymentMethod: "Transferência Pix",
			Operator:      "jozimara oliveira",
		},
	}
}

func TestAggregate_FirstWinsPerMovement(t *testing.T) {
	aggregator := NewAggregator(nil)

	records := aggregator.Aggregate(pendingFixture())

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Movement != "123456" {
		t.Errorf("Expected first-seen movement first, got %s", first.Movement)
	}
	if first.Code != "001" {
		t.Errorf("Expected first line item's code, got %s", first.Code)
	}
	if first.Counterparty != "CLIENTE A" {
		t.Errorf("Expected first line item's counterparty, got %s", first.Counterparty)
	}
	if !first.Amount.Equal(decimal.NewFromFloat(1500.00)) {
		t.Errorf("Expected first amount under the default policy, got %s", first.Amount)
	}
	if first.Branch != "Loja 2" {
		t.Errorf("Expected geizy to resolve to Loja 2, got %q", first.Branch)
	}

	second := records[1]
	if second.Branch != "Loja 1" {
		t.Errorf("Expected jozimara to resolve to Loja 1, got %q", second.Branch)
	}
	if second.PaymentMethod != "Transferência Pix" {
		t.Errorf("Expected payment method preserved, got %s", second.PaymentMethod)
	}
}

func TestAggregate_SumPolicy(t *testing.T) {
	config := DefaultConfig()
	config.AmountPolicy = AmountSum
	aggregator := NewAggregator(config)

	records := aggregator.Aggregate(pendingFixture())

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if !records[0].Amount.Equal(decimal.NewFromFloat(3000.00)) {
		t.Errorf("Expected summed amount 3000.00, got %s", records[0].Amount)
	}
}

func TestAggregate_UnknownOperatorBlankBranch(t *testing.T) {
	aggregator := NewAggregator(nil)

	records := aggregator.Aggregate([]PendingRecord{{
		Movement: "111111",
		Code:     "001",
		Amount:   decimal.NewFromFloat(10),
		Operator: "desconhecido",
	}})

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Branch != "" {
		t.Errorf("Expected blank branch for unknown operator, got %q", records[0].Branch)
	}
}

func TestAggregate_Empty(t *testing.T) {
	aggregator := NewAggregator(nil)

	if records := aggregator.Aggregate(nil); len(records) != 0 {
		t.Errorf("Expected no records for empty input, got %d", len(records))
	}
}
