package reconciler

import (
	"fmt"
	"strings"
)

// RoutingConfig maps matched ledger entries to their accounting
// destinations. The tables are data, not logic: adding a branch, account or
// payment method is a configuration change.
type RoutingConfig struct {
	// Accounts routes (branch, payment method) to a bank account. Pairs
	// absent from the table resolve to the empty string and are excluded
	// from per-account outputs.
	Accounts map[string]map[string]string

	// CostCenters maps a canonical branch label to its accounting cost
	// center; unlisted branches fall through to DefaultCostCenter.
	CostCenters       map[string]string
	DefaultCostCenter string
}

// DefaultRoutingConfig returns the routing tables for the two known
// branches
func DefaultRoutingConfig() *RoutingConfig {
	return &RoutingConfig{
		Accounts: map[string]map[string]string{
			"Loja 1": {
				"Dinheiro":                        "CAIXA 01",
				"Transferência Pix":               "SICOOB",
				"Cartão de Débito VISA/ MASTER":   "MAQUINETA ÚNICA PETROLINA",
				"Cartão de Crédito VISA / MASTER": "MAQUINETA ÚNICA PETROLINA",
				"Cartão de Débito ELO":            "MAQUINETA ÚNICA PETROLINA",
				"Cartão de Crédito ELO":           "MAQUINETA ÚNICA PETROLINA",
			},
			"Loja 2": {
				"Dinheiro":                        "CAIXA 02",
				"Transferência Pix":               "BRADESCO C/C",
				"PIx Instantâneo Bradesco LJ02":   "BRADESCO C/C",
				"Cartão de Débito VISA/ MASTER":   "MAQUINETA ÚNICA SÃO FRANCISCO",
				"Cartão de Crédito VISA / MASTER": "MAQUINETA ÚNICA SÃO FRANCISCO",
				"Cartão de Débito ELO":            "MAQUINETA ÚNICA SÃO FRANCISCO",
				"Cartão de Crédito ELO":           "MAQUINETA ÚNICA SÃO FRANCISCO",
			},
		},
		CostCenters: map[string]string{
			"Loja 1": "Loja 01 - Petrolina",
		},
		DefaultCostCenter: "Loja 02 - São Francisco",
	}
}

// Validate checks if the routing configuration is usable
func (c *RoutingConfig) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("account routing table cannot be empty")
	}
	for branch, methods := range c.Accounts {
		if len(methods) == 0 {
			return fmt.Errorf("branch %q routes no payment methods", branch)
		}
	}
	if c.DefaultCostCenter == "" {
		return fmt.Errorf("default cost center cannot be empty")
	}
	return nil
}

// AccountFor resolves the destination bank account for a payment method and
// branch. Unknown combinations, including an empty payment method on
// unmatched entries, return the empty string. The payment method matches
// case-insensitively as a fallback; config-file loading lowercases map keys.
func (c *RoutingConfig) AccountFor(payment, branch string) string {
	if payment == "" {
		return ""
	}

	methods := c.Accounts[branch]
	if account, ok := methods[payment]; ok {
		return account
	}
	for method, account := range methods {
		if strings.EqualFold(method, payment) {
			return account
		}
	}
	return ""
}

// CostCenterFor maps a canonical branch label to its accounting cost center
func (c *RoutingConfig) CostCenterFor(branch string) string {
	if center, ok := c.CostCenters[branch]; ok {
		return center
	}
	return c.DefaultCostCenter
}
