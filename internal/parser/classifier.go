package parser

import (
	"strings"

	"caixasync/internal/models"
	"caixasync/internal/normalize"
)

// RowKind identifies what one raw row represents
type RowKind int

const (
	// RowSkip marks rows with a blank first cell
	RowSkip RowKind = iota
	// RowMovementStart opens a new movement block
	RowMovementStart
	// RowDirection carries the operation direction, and optionally the
	// movement amount and the operator
	RowDirection
	// RowPaymentMethod carries a payment-method token
	RowPaymentMethod
	// RowLineItem carries a line-item code, counterparty and document
	RowLineItem
	// RowUnclassified marks rows matching no known kind; they are ignored
	RowUnclassified
)

// String returns a human-readable name for the row kind
func (k RowKind) String() string {
	switch k {
	case RowSkip:
		return "skip"
	case RowMovementStart:
		return "movement_start"
	case RowDirection:
		return "direction"
	case RowPaymentMethod:
		return "payment_method"
	case RowLineItem:
		return "line_item"
	default:
		return "unclassified"
	}
}

// ClassifiedRow is the classifier's verdict on one raw row. Only the fields
// relevant to the Kind are populated.
type ClassifiedRow struct {
	Kind RowKind

	// MovementStart
	MovementID string

	// Direction
	Direction  models.OperationType
	AmountCell string
	Operator   string

	// PaymentMethod
	PaymentMethod string

	// LineItem
	Code         string
	Counterparty string
	Document     string
}

// Classifier labels raw rows by positional and content heuristics
type Classifier struct {
	config   *Config
	payments map[string]struct{}
}

// NewClassifier creates a classifier from the given configuration
func NewClassifier(config *Config) *Classifier {
	if config == nil {
		config = DefaultConfig()
	}

	return &Classifier{
		config:   config,
		payments: config.paymentSet(),
	}
}

// Classify decides which row kind a raw row represents. The precedence
// order is load-bearing: the same column index carries different semantic
// content across row kinds, so the tests below must run in exactly this
// order.
//
//  1. Blank first cell: skip.
//  2. First cell whose digits total exactly six: movement start.
//  3. Direction column holding Entrada/Saída: direction row.
//  4. First cell matching the payment vocabulary exactly: payment method.
//  5. All-digit first cell of at most five digits: line item.
//  6. Anything else: unclassified.
func (c *Classifier) Classify(row []string) ClassifiedRow {
	first := strings.TrimSpace(cell(row, ColIdentifier))
	if first == "" {
		return ClassifiedRow{Kind: RowSkip}
	}

	if digits := normalize.DigitsOnly(first); len(digits) == MovementIDLength {
		return ClassifiedRow{Kind: RowMovementStart, MovementID: digits}
	}

	if direction, ok := models.ParseOperationType(cell(row, ColDirection)); ok {
		return ClassifiedRow{
			Kind:       RowDirection,
			Direction:  direction,
			AmountCell: strings.TrimSpace(cell(row, ColAmount)),
			Operator:   strings.TrimSpace(cell(row, ColOperator)),
		}
	}

	if _, ok := c.payments[first]; ok {
		return ClassifiedRow{Kind: RowPaymentMethod, PaymentMethod: first}
	}

	if normalize.IsAllDigits(first) && len(first) <= MaxLineItemDigits {
		return ClassifiedRow{
			Kind:         RowLineItem,
			Code:         first,
			Counterparty: strings.TrimSpace(cell(row, ColCounterparty)),
			Document:     strings.TrimSpace(cell(row, ColDocument)),
		}
	}

	return ClassifiedRow{Kind: RowUnclassified}
}

// cell reads a column by index, tolerating ragged rows
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
