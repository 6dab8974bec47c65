package reconciler

import (
	"testing"

	"github.com/shopspring/decimal"

	"caixasync/internal/models"
)

func record(movement, branch, payment string, amount float64) *models.MovementRecord {
	return models.NewMovementRecord(movement, "001", "CLIENTE", branch, decimal.NewFromFloat(amount), payment)
}

func entry(code, branch string, amount float64) *models.LedgerEntry {
	return models.NewLedgerEntry(code, decimal.NewFromFloat(amount), branch, "15/03/2026", "CLIENTE")
}

func TestReconcile_MatchAnnotatesEntry(t *testing.T) {
	engine := NewEngine(nil)

	records := []*models.MovementRecord{
		record("123456", "Loja 1", "Dinheiro", 1500.00),
	}
	entries := []*models.LedgerEntry{
		entry("123456", "Loja 1", 1500.00),
	}

	result := engine.Reconcile(records, entries)

	if entries[0].PaymentMethod != "Dinheiro" {
		t.Errorf("Expected payment method annotated, got %q", entries[0].PaymentMethod)
	}
	if entries[0].BankAccount != "CAIXA 01" {
		t.Errorf("Expected CAIXA 01, got %q", entries[0].BankAccount)
	}
	if result.Stats.MatchedEntries != 1 {
		t.Errorf("Expected 1 matched entry, got %d", result.Stats.MatchedEntries)
	}
	if len(result.Unrelated) != 0 {
		t.Errorf("Expected no unrelated records, got %d", len(result.Unrelated))
	}
	if got := result.Accounts["CAIXA 01"]; len(got) != 1 {
		t.Errorf("Expected entry routed to CAIXA 01, got %d", len(got))
	}
}

func TestReconcile_KeyRequiresAllThreeComponents(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name   string
		ledger *models.LedgerEntry
	}{
		{"amount differs", entry("123456", "Loja 1", 1500.01)},
		{"branch differs", entry("123456", "Loja 2", 1500.00)},
		{"identifier differs", entry("123457", "Loja 1", 1500.00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*models.MovementRecord{
				record("123456", "Loja 1", "Dinheiro", 1500.00),
			}

			result := engine.Reconcile(records, []*models.LedgerEntry{tt.ledger})

			if tt.ledger.PaymentMethod != "" {
				t.Errorf("Expected no payment method, got %q", tt.ledger.PaymentMethod)
			}
			if len(result.Unrelated) != 1 {
				t.Errorf("Expected 1 unrelated record, got %d", len(result.Unrelated))
			}
		})
	}
}

func TestReconcile_UnmatchedEntryStillInEntries(t *testing.T) {
	engine := NewEngine(nil)

	entries := []*models.LedgerEntry{entry("999999", "Loja 1", 42.00)}
	result := engine.Reconcile(nil, entries)

	if len(result.Entries) != 1 {
		t.Fatalf("Expected the unmatched entry preserved, got %d", len(result.Entries))
	}
	if result.Entries[0].BankAccount != "" {
		t.Errorf("Expected empty account without a payment method, got %q", result.Entries[0].BankAccount)
	}
	if len(result.Accounts) != 0 {
		t.Errorf("Expected no routed accounts, got %d", len(result.Accounts))
	}
}

func TestReconcile_DuplicateKeyLastWins(t *testing.T) {
	engine := NewEngine(nil)

	records := []*models.MovementRecord{
		record("123456", "Loja 1", "Dinheiro", 1500.00),
		record("123456", "Loja 1", "Transferência Pix", 1500.00),
	}
	entries := []*models.LedgerEntry{entry("123456", "Loja 1", 1500.00)}

	result := engine.Reconcile(records, entries)

	if entries[0].PaymentMethod != "Transferência Pix" {
		t.Errorf("Expected later record to win, got %q", entries[0].PaymentMethod)
	}
	if result.Stats.DuplicateKeys != 1 {
		t.Errorf("Expected 1 duplicate key counted, got %d", result.Stats.DuplicateKeys)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	engine := NewEngine(nil)

	records := []*models.MovementRecord{
		record("123456", "Loja 2", "Transferência Pix", 75.50),
	}
	entries := []*models.LedgerEntry{entry("123456", "Loja 2", 75.50)}

	first := engine.Reconcile(records, entries)
	second := engine.Reconcile(records, entries)

	if first.Stats != second.Stats {
		t.Errorf("Expected identical stats across passes: %+v vs %+v", first.Stats, second.Stats)
	}
	if entries[0].BankAccount != "BRADESCO C/C" {
		t.Errorf("Expected BRADESCO C/C, got %q", entries[0].BankAccount)
	}
}

func TestReconcile_RoutesByAccount(t *testing.T) {
	engine := NewEngine(nil)

	records := []*models.MovementRecord{
		record("111111", "Loja 1", "Dinheiro", 10.00),
		record("222222", "Loja 1", "Cartão de Débito ELO", 20.00),
		record("333333", "Loja 2", "Dinheiro", 30.00),
	}
	entries := []*models.LedgerEntry{
		entry("111111", "Loja 1", 10.00),
		entry("222222", "Loja 1", 20.00),
		entry("333333", "Loja 2", 30.00),
	}

	result := engine.Reconcile(records, entries)

	expected := map[string]int{
		"CAIXA 01":                  1,
		"MAQUINETA ÚNICA PETROLINA": 1,
		"CAIXA 02":                  1,
	}
	for account, count := range expected {
		if got := len(result.Accounts[account]); got != count {
			t.Errorf("Expected %d entries for %s, got %d", count, account, got)
		}
	}

	names := result.AccountNames()
	if len(names) != 3 {
		t.Fatalf("Expected 3 account names, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted account names, got %v", names)
		}
	}
}

func TestAccountFor(t *testing.T) {
	routing := DefaultRoutingConfig()

	tests := []struct {
		payment  string
		branch   string
		expected string
	}{
		{"Dinheiro", "Loja 1", "CAIXA 01"},
		{"Dinheiro", "Loja 2", "CAIXA 02"},
		{"Transferência Pix", "Loja 1", "SICOOB"},
		{"Transferência Pix", "Loja 2", "BRADESCO C/C"},
		{"PIx Instantâneo Bradesco LJ02", "Loja 2", "BRADESCO C/C"},
		{"PIx Instantâneo Bradesco LJ02", "Loja 1", ""},
		{"Cartão de Crédito ELO", "Loja 1", "MAQUINETA ÚNICA PETROLINA"},
		{"Cartão de Crédito ELO", "Loja 2", "MAQUINETA ÚNICA SÃO FRANCISCO"},
		{"", "Loja 1", ""},
		{"Dinheiro", "", ""},
	}

	for _, tt := range tests {
		if got := routing.AccountFor(tt.payment, tt.branch); got != tt.expected {
			t.Errorf("AccountFor(%q, %q) = %q, expected %q", tt.payment, tt.branch, got, tt.expected)
		}
	}
}

func TestCostCenterFor(t *testing.T) {
	routing := DefaultRoutingConfig()

	if got := routing.CostCenterFor("Loja 1"); got != "Loja 01 - Petrolina" {
		t.Errorf("Expected Petrolina cost center, got %q", got)
	}
	if got := routing.CostCenterFor("Loja 2"); got != "Loja 02 - São Francisco" {
		t.Errorf("Expected São Francisco cost center, got %q", got)
	}
	if got := routing.CostCenterFor(""); got != "Loja 02 - São Francisco" {
		t.Errorf("Expected default cost center for blank branch, got %q", got)
	}
}

func TestRoutingConfigValidate(t *testing.T) {
	if err := DefaultRoutingConfig().Validate(); err != nil {
		t.Errorf("Expected default routing to validate, got %v", err)
	}

	empty := &RoutingConfig{DefaultCostCenter: "x"}
	if err := empty.Validate(); err == nil {
		t.Error("Expected error for empty account table")
	}

	noDefault := DefaultRoutingConfig()
	noDefault.DefaultCostCenter = ""
	if err := noDefault.Validate(); err == nil {
		t.Error("Expected error for missing default cost center")
	}
}
