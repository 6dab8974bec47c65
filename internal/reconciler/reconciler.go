// Package reconciler matches the formatted movement spreadsheet against the
// independently-sourced bank ledger and routes the matched entries to
// per-account accounting imports.
package reconciler

import (
	"sort"

	"caixasync/internal/models"
	"caixasync/pkg/logger"
)

const (
	// ImportCategory labels every synthesized accounting-import row
	ImportCategory = "Receitas de Vendas"
)

// Result holds everything one reconciliation pass produces: the ledger
// entries annotated with payment method and bank account, the formatted
// records that matched no ledger entry, and the matched entries grouped by
// destination account.
type Result struct {
	Entries   []*models.LedgerEntry
	Unrelated []*models.MovementRecord
	Accounts  map[string][]*models.LedgerEntry

	// Routing is the configuration the pass matched with, carried along so
	// downstream import synthesis uses the same tables
	Routing *RoutingConfig

	Stats Stats
}

// Stats summarizes a reconciliation pass
type Stats struct {
	FormattedRecords int
	LedgerEntries    int
	MatchedEntries   int
	UnrelatedRecords int
	DuplicateKeys    int
	AccountsRouted   int
}

// AccountNames returns the destination accounts in deterministic order
func (r *Result) AccountNames() []string {
	names := make([]string, 0, len(r.Accounts))
	for name := range r.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Engine performs the matching pass
type Engine struct {
	routing *RoutingConfig
	logger  logger.Logger
}

// NewEngine creates a reconciliation engine with the given routing tables
func NewEngine(routing *RoutingConfig) *Engine {
	if routing == nil {
		routing = DefaultRoutingConfig()
	}

	return &Engine{
		routing: routing,
		logger:  logger.GetGlobalLogger().WithComponent("reconciler"),
	}
}

// Reconcile matches ledger entries against formatted records by composite
// key. Matching mutates nothing in its inputs beyond annotating the ledger
// entries in place; running the pass twice over the same data yields the
// same result.
func (e *Engine) Reconcile(records []*models.MovementRecord, entries []*models.LedgerEntry) *Result {
	payments := make(map[models.Key]string, len(records))
	duplicates := 0
	for _, record := range records {
		key := record.Key()
		if _, exists := payments[key]; exists {
			duplicates++
			e.logger.WithFields(logger.Fields{
				"key":            key.String(),
				"payment_method": record.PaymentMethod,
			}).Warn("Duplicate reconciliation key, keeping the later record")
		}
		payments[key] = record.PaymentMethod
	}

	ledgerKeys := make(map[models.Key]struct{}, len(entries))
	matched := 0
	accounts := make(map[string][]*models.LedgerEntry)
	for _, entry := range entries {
		key := entry.Key()
		ledgerKeys[key] = struct{}{}

		if method, ok := payments[key]; ok {
			entry.PaymentMethod = method
			matched++
		}
		entry.BankAccount = e.routing.AccountFor(entry.PaymentMethod, entry.Branch)

		if entry.BankAccount != "" {
			accounts[entry.BankAccount] = append(accounts[entry.BankAccount], entry)
		}
	}

	var unrelated []*models.MovementRecord
	for _, record := range records {
		if _, ok := ledgerKeys[record.Key()]; !ok {
			unrelated = append(unrelated, record)
		}
	}

	result := &Result{
		Entries:   entries,
		Unrelated: unrelated,
		Accounts:  accounts,
		Routing:   e.routing,
		Stats: Stats{
			FormattedRecords: len(records),
			LedgerEntries:    len(entries),
			MatchedEntries:   matched,
			UnrelatedRecords: len(unrelated),
			DuplicateKeys:    duplicates,
			AccountsRouted:   len(accounts),
		},
	}

	e.logger.WithFields(logger.Fields{
		"formatted": result.Stats.FormattedRecords,
		"ledger":    result.Stats.LedgerEntries,
		"matched":   result.Stats.MatchedEntries,
		"unrelated": result.Stats.UnrelatedRecords,
		"accounts":  result.Stats.AccountsRouted,
	}).Info("Reconciliation pass completed")

	return result
}
