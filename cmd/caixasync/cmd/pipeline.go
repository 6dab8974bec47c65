package cmd

import (
	"caixasync/internal/grid"
	"caixasync/internal/parser"
	"caixasync/internal/reconciler"
	"caixasync/internal/reporter"
)

// pipeline wires the processing stages behind the CLI commands. Commands
// own flag handling and user-facing output; the pipeline owns the order of
// operations.
type pipeline struct {
	reporter *reporter.Reporter
}

func newPipeline() *pipeline {
	return &pipeline{
		reporter: reporter.NewReporter(),
	}
}

// Format runs the full format stage: load the raw grid, reconstruct
// movement blocks, aggregate line items, write the formatted spreadsheet.
// Nothing is written when the export yields no incoming movements.
func (p *pipeline) Format(cfg *parser.Config, input, output string) (*FormatSummary, error) {
	rows, err := grid.LoadGrid(input)
	if err != nil {
		return nil, err
	}

	pending, stats := parser.Reconstruct(rows, cfg)
	records := parser.NewAggregator(cfg).Aggregate(pending)

	summary := &FormatSummary{
		RowsSeen:      stats.RowsSeen,
		LineItems:     stats.LineItemsKept,
		Records:       len(records),
		BlocksDropped: stats.BlocksDropped,
	}

	if len(records) == 0 {
		return summary, nil
	}

	if err := p.reporter.WriteFormatted(records, output); err != nil {
		return nil, err
	}
	return summary, nil
}

// Reconcile runs the full reconcile stage: load both inputs, match by
// composite key, write the per-account imports and the unrelated report.
func (p *pipeline) Reconcile(routing *reconciler.RoutingConfig, formatted, ledger, outputDir string) (*ReconcileSummary, error) {
	records, err := reconciler.LoadFormatted(formatted)
	if err != nil {
		return nil, err
	}
	entries, err := reconciler.LoadLedger(ledger)
	if err != nil {
		return nil, err
	}

	result := reconciler.NewEngine(routing).Reconcile(records, entries)

	summary := &ReconcileSummary{Stats: result.Stats}

	if result.Stats.AccountsRouted > 0 {
		written, err := p.reporter.WriteAccounts(result, outputDir)
		if err != nil {
			return nil, err
		}
		summary.AccountFiles = written
	}

	unrelatedPath, err := p.reporter.WriteUnrelated(result.Unrelated, outputDir)
	if err != nil {
		return nil, err
	}
	summary.UnrelatedFile = unrelatedPath

	return summary, nil
}

// ReconcileSummary reports what one reconcile run did
type ReconcileSummary struct {
	Stats         reconciler.Stats
	AccountFiles  []string
	UnrelatedFile string
}
