// Package models defines the record types shared by the movement formatter
// and the reconciliation engine.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OperationType represents the direction of a movement
type OperationType string

const (
	// OperationEntrada represents an incoming movement
	OperationEntrada OperationType = "Entrada"
	// OperationSaida represents an outgoing movement; Saída movements are
	// never reconciled and are dropped during block reconstruction
	OperationSaida OperationType = "Saída"
)

// String returns the string representation of OperationType
func (o OperationType) String() string {
	return string(o)
}

// IsValid checks if the operation type is one of the known directions
func (o OperationType) IsValid() bool {
	return o == OperationEntrada || o == OperationSaida
}

// ParseOperationType parses an operation direction from a raw cell value.
// The empty string and unknown values return false.
func ParseOperationType(s string) (OperationType, bool) {
	switch OperationType(strings.TrimSpace(s)) {
	case OperationEntrada:
		return OperationEntrada, true
	case OperationSaida:
		return OperationSaida, true
	default:
		return "", false
	}
}

// DefaultPaymentMethods returns the fixed payment-method vocabulary used by
// the point-of-sale export. Classification matches these strings exactly.
func DefaultPaymentMethods() []string {
	return []string{
		"Dinheiro",
		"Transferência Pix",
		"Cartão de Débito VISA/ MASTER",
		"Cartão de Crédito VISA / MASTER",
		"Cartão de Débito ELO",
		"Cartão de Crédito ELO",
		"PIx Instantâneo Bradesco LJ02",
	}
}

// MovementRecord is one aggregated movement in the formatted spreadsheet:
// the output of the format stage and one of the two inputs of reconciliation.
type MovementRecord struct {
	Movement      string          `json:"movement"`
	Code          string          `json:"code"`
	Counterparty  string          `json:"counterparty"`
	Branch        string          `json:"branch"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// NewMovementRecord creates a new MovementRecord instance
func NewMovementRecord(movement, code, counterparty, branch string, amount decimal.Decimal, paymentMethod string) *MovementRecord {
	return &MovementRecord{
		Movement:      movement,
		Code:          code,
		Counterparty:  counterparty,
		Branch:        branch,
		Amount:        amount,
		PaymentMethod: paymentMethod,
	}
}

// Validate performs basic validation on the MovementRecord
func (r *MovementRecord) Validate() error {
	if strings.TrimSpace(r.Movement) == "" {
		return fmt.Errorf("movement identifier cannot be empty")
	}
	return nil
}

// Key returns the composite reconciliation key for this record
func (r *MovementRecord) Key() Key {
	return NewKey(r.Movement, r.Amount, r.Branch)
}

// String returns a string representation of the MovementRecord
func (r *MovementRecord) String() string {
	return fmt.Sprintf("MovementRecord{Movement: %s, Code: %s, Branch: %s, Amount: %s, PaymentMethod: %s}",
		r.Movement, r.Code, r.Branch, r.Amount.StringFixed(2), r.PaymentMethod)
}

// LedgerEntry is one row of the independently-sourced bank movement ledger.
// Extra preserves passthrough columns that are not interpreted here.
type LedgerEntry struct {
	Code         string          `json:"code"`
	Amount       decimal.Decimal `json:"amount"`
	Branch       string          `json:"branch"`
	MovementDate string          `json:"movement_date"`
	Counterparty string          `json:"counterparty"`
	Extra        map[string]string `json:"extra,omitempty"`

	// PaymentMethod is attached during reconciliation; empty when the entry
	// did not match any formatted record
	PaymentMethod string `json:"payment_method,omitempty"`
	// BankAccount is resolved from (payment method, branch); entries with an
	// empty account are excluded from per-account outputs
	BankAccount string `json:"bank_account,omitempty"`
}

// NewLedgerEntry creates a new LedgerEntry instance
func NewLedgerEntry(code string, amount decimal.Decimal, branch, movementDate, counterparty string) *LedgerEntry {
	return &LedgerEntry{
		Code:         code,
		Amount:       amount,
		Branch:       branch,
		MovementDate: movementDate,
		Counterparty: counterparty,
	}
}

// Validate performs basic validation on the LedgerEntry
func (e *LedgerEntry) Validate() error {
	if strings.TrimSpace(e.Code) == "" {
		return fmt.Errorf("ledger code cannot be empty")
	}
	return nil
}

// Key returns the composite reconciliation key for this entry
func (e *LedgerEntry) Key() Key {
	return NewKey(e.Code, e.Amount, e.Branch)
}

// String returns a string representation of the LedgerEntry
func (e *LedgerEntry) String() string {
	return fmt.Sprintf("LedgerEntry{Code: %s, Amount: %s, Branch: %s}",
		e.Code, e.Amount.StringFixed(2), e.Branch)
}

// Key is the composite reconciliation key: identifier, amount rounded to two
// decimals, canonical branch. Keys are comparable and used directly as map
// keys; uniqueness is not guaranteed by the source data.
type Key struct {
	Identifier string
	Amount     string
	Branch     string
}

// NewKey builds a Key, rounding the amount to two decimal places
func NewKey(identifier string, amount decimal.Decimal, branch string) Key {
	return Key{
		Identifier: strings.TrimSpace(identifier),
		Amount:     amount.Round(2).StringFixed(2),
		Branch:     branch,
	}
}

// String returns a string representation of the Key
func (k Key) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.Identifier, k.Amount, k.Branch)
}

// ImportRow is one row of a per-account accounting-import spreadsheet,
// synthesized from a matched ledger entry.
type ImportRow struct {
	CompetenceDate    string
	DueDate           string
	PaymentDate       string
	Amount            decimal.Decimal
	Category          string
	Description       string
	Counterparty      string
	CounterpartyTaxID string
	CostCenter        string
	Observations      string
}
