package parser

import (
	"caixasync/internal/models"
	"caixasync/internal/normalize"
	"caixasync/pkg/logger"
)

// Aggregator collapses pending records into one formatted record per
// movement identifier, resolving the row-to-record ambiguity with
// deterministic per-field policies: first-wins for identifier, code,
// counterparty, payment method and operator; the configured policy for the
// amount. The branch is derived from the resolved operator via the roster;
// operator and document are dropped from the emitted shape.
type Aggregator struct {
	config *Config
	logger logger.Logger
}

// NewAggregator creates an aggregator with the given configuration
func NewAggregator(config *Config) *Aggregator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Aggregator{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("aggregator"),
	}
}

// Aggregate groups pending records by movement identifier, preserving
// first-seen group order, and produces one MovementRecord per group.
func (a *Aggregator) Aggregate(pending []PendingRecord) []*models.MovementRecord {
	groups := make(map[string][]PendingRecord)
	var order []string

	for _, record := range pending {
		if _, seen := groups[record.Movement]; !seen {
			order = append(order, record.Movement)
		}
		groups[record.Movement] = append(groups[record.Movement], record)
	}

	records := make([]*models.MovementRecord, 0, len(order))
	for _, movement := range order {
		records = append(records, a.resolve(groups[movement]))
	}

	a.logger.WithFields(logger.Fields{
		"line_items": len(pending),
		"movements":  len(records),
	}).Debug("Aggregated movement records")

	return records
}

// resolve collapses one group into a single formatted record
func (a *Aggregator) resolve(group []PendingRecord) *models.MovementRecord {
	first := group[0]

	amount := first.Amount
	if a.config.AmountPolicy == AmountSum {
		for _, record := range group[1:] {
			amount = amount.Add(record.Amount)
		}
	}

	branch := normalize.BranchFromOperator(first.Operator, a.config.OperatorRoster)

	return models.NewMovementRecord(
		first.Movement,
		first.Code,
		first.Counterparty,
		branch,
		amount,
		first.PaymentMethod,
	)
}
