// Package parser reconstructs structured movement records from the
// header-less point-of-sale spreadsheet export.
//
// The export has no schema: record boundaries, operation direction, payment
// method and operator attribution are inferred from a sequence of
// loosely-typed rows by positional and content heuristics. Parsing is a
// strict single forward pass: the classifier labels each row, the
// Reconstructor accumulates one movement block at a time and emits its line
// items when the block closes, and the Aggregator collapses line items into
// one record per movement.
package parser

import (
	"fmt"

	"caixasync/internal/models"
	"caixasync/internal/normalize"
)

// Column indices of the raw export. The same physical column carries
// different semantic content depending on the row kind: column 0 is a
// movement identifier, a payment-method token or a line-item code; column 5
// is the movement amount on direction rows but a document reference on
// line-item rows.
const (
	// ColIdentifier holds the movement identifier, payment-method token or
	// line-item code
	ColIdentifier = 0
	// ColCounterparty holds the counterparty name on line-item rows
	ColCounterparty = 1
	// ColDirection holds the operation direction (Entrada/Saída)
	ColDirection = 4
	// ColAmount holds the movement amount on direction rows
	ColAmount = 5
	// ColDocument holds the raw document reference on line-item rows
	ColDocument = 5
	// ColOperator holds the free-text operator field on direction rows
	ColOperator = 6
)

// Movement identifiers are zero-padded to exactly six digits; line-item
// codes are at most five.
const (
	MovementIDLength  = 6
	MaxLineItemDigits = 5
)

// AmountPolicy selects how line-item amounts collapse into one movement
// amount during aggregation.
type AmountPolicy string

const (
	// AmountFirst keeps the first line item's amount; all line items of a
	// movement share the block-level amount, so this is the default
	AmountFirst AmountPolicy = "first"
	// AmountSum adds the line-item amounts together
	AmountSum AmountPolicy = "sum"
)

// IsValid checks if the amount policy is supported
func (p AmountPolicy) IsValid() bool {
	return p == AmountFirst || p == AmountSum
}

// Config holds the vocabularies and policies driving classification and
// aggregation. Vocabularies and the operator roster are data, not logic:
// supporting a new payment method or branch is a configuration change.
type Config struct {
	// PaymentMethods is the exact-match vocabulary for payment-method rows
	PaymentMethods []string

	// OperatorRoster maps operator name fragments to branches
	OperatorRoster []normalize.OperatorBranch

	// AmountPolicy selects the aggregation policy for amounts
	AmountPolicy AmountPolicy
}

// DefaultConfig returns the configuration matching the production export
func DefaultConfig() *Config {
	return &Config{
		PaymentMethods: models.DefaultPaymentMethods(),
		OperatorRoster: normalize.DefaultOperatorRoster(),
		AmountPolicy:   AmountFirst,
	}
}

// Validate checks if the parser configuration is valid
func (c *Config) Validate() error {
	if len(c.PaymentMethods) == 0 {
		return fmt.Errorf("payment-method vocabulary cannot be empty")
	}

	if len(c.OperatorRoster) == 0 {
		return fmt.Errorf("operator roster cannot be empty")
	}

	if !c.AmountPolicy.IsValid() {
		return fmt.Errorf("invalid amount policy: %s", c.AmountPolicy)
	}

	return nil
}

// paymentSet builds the exact-match lookup set from the vocabulary
func (c *Config) paymentSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.PaymentMethods))
	for _, method := range c.PaymentMethods {
		set[method] = struct{}{}
	}
	return set
}
