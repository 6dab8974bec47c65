package parser

import (
	"github.com/shopspring/decimal"

	"caixasync/internal/models"
	"caixasync/internal/normalize"
	"caixasync/pkg/logger"
)

// PendingRecord is one line item stamped with its movement's final
// metadata, emitted when a block closes. Operator and Document are carried
// for branch derivation and dropped during aggregation.
type PendingRecord struct {
	Movement      string
	Code          string
	Counterparty  string
	Document      string
	Amount        decimal.Decimal
	PaymentMethod string
	Operator      string
}

// lineItem is a buffered sub-row awaiting its block's final metadata
type lineItem struct {
	code         string
	counterparty string
	document     string
}

// movementBlock accumulates one movement while its rows stream in. Direction,
// payment method, operator and amount typically arrive on rows interleaved
// between or after the line items they govern, so items are buffered and
// stamped only at close.
type movementBlock struct {
	id        string
	direction models.OperationType
	payment   string
	operator  string
	amount    decimal.Decimal
	amountSet bool
	items     []lineItem
}

// ReconstructStats summarizes one reconstruction pass
type ReconstructStats struct {
	RowsSeen        int
	MovementsOpened int
	BlocksDropped   int
	LineItemsKept   int
	RecordsEmitted  int
}

// Reconstructor is the block state machine. It consumes classified rows in
// original order, holds at most one open block, and emits stamped pending
// records when a block closes. Feed rows with Consume and finish with
// Flush; rows arriving before the first movement identifier fall outside
// any block and are dropped.
type Reconstructor struct {
	config  *Config
	logger  logger.Logger
	block   *movementBlock
	pending []PendingRecord
	stats   ReconstructStats
}

// NewReconstructor creates a block reconstructor with the given
// configuration
func NewReconstructor(config *Config) *Reconstructor {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reconstructor{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("reconstructor"),
	}
}

// Consume advances the state machine by one classified row
func (r *Reconstructor) Consume(row ClassifiedRow) {
	r.stats.RowsSeen++

	switch row.Kind {
	case RowMovementStart:
		r.closeBlock()
		r.block = &movementBlock{id: row.MovementID}
		r.stats.MovementsOpened++
		r.logger.WithField("movement", row.MovementID).Debug("Opened movement block")

	case RowDirection:
		if r.block == nil {
			return
		}
		r.block.direction = row.Direction
		if row.AmountCell != "" {
			r.block.amount = signAdjust(normalize.ParseAmount(row.AmountCell), row.Direction)
			r.block.amountSet = true
		}
		if row.Operator != "" {
			r.block.operator = row.Operator
		}

	case RowPaymentMethod:
		if r.block == nil {
			return
		}
		// Last payment-method row wins
		r.block.payment = row.PaymentMethod

	case RowLineItem:
		if r.block == nil {
			return
		}
		// Saída blocks are dropped at close; once the direction is known
		// there is nothing to buffer for them
		if r.block.direction == models.OperationSaida {
			return
		}
		r.block.items = append(r.block.items, lineItem{
			code:         row.Code,
			counterparty: row.Counterparty,
			document:     row.Document,
		})
	}
}

// Flush closes the open block, if any, and returns every pending record
// emitted during the pass. The reconstructor is reset for reuse.
func (r *Reconstructor) Flush() []PendingRecord {
	r.closeBlock()
	records := r.pending
	r.pending = nil
	return records
}

// Stats returns counters for the pass so far
func (r *Reconstructor) Stats() ReconstructStats {
	return r.stats
}

// closeBlock finalizes the current block. Saída blocks are discarded whole;
// anything else stamps each buffered line item with the block's final
// amount, payment method and operator.
func (r *Reconstructor) closeBlock() {
	block := r.block
	r.block = nil
	if block == nil {
		return
	}

	if block.direction == models.OperationSaida {
		r.stats.BlocksDropped++
		r.logger.WithField("movement", block.id).Debug("Dropped outgoing movement block")
		return
	}

	for _, item := range block.items {
		r.pending = append(r.pending, PendingRecord{
			Movement:      block.id,
			Code:          item.code,
			Counterparty:  item.counterparty,
			Document:      item.document,
			Amount:        block.amount,
			PaymentMethod: block.payment,
			Operator:      block.operator,
		})
		r.stats.LineItemsKept++
		r.stats.RecordsEmitted++
	}
}

// signAdjust normalizes the monetary sign by direction: Entrada amounts are
// non-negative, Saída amounts non-positive. Reversed tokens already parse
// to zero, which both directions preserve.
func signAdjust(amount decimal.Decimal, direction models.OperationType) decimal.Decimal {
	if direction == models.OperationSaida {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// Reconstruct runs the full classify-and-rebuild pass over a raw grid
func Reconstruct(rows [][]string, config *Config) ([]PendingRecord, ReconstructStats) {
	classifier := NewClassifier(config)
	reconstructor := NewReconstructor(config)

	for _, row := range rows {
		reconstructor.Consume(classifier.Classify(row))
	}

	records := reconstructor.Flush()
	return records, reconstructor.Stats()
}
