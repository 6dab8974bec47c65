package reconciler

import (
	"strings"

	"caixasync/internal/grid"
	"caixasync/internal/models"
	"caixasync/internal/normalize"
	"caixasync/pkg/errors"
	"caixasync/pkg/logger"
)

// ParseFormattedTable converts a header-keyed table loaded from the
// intermediate formatted spreadsheet into movement records. A missing
// required column is a hard error; individual cells are normalized the same
// way the formatter normalizes them so keys built from both sides agree.
func ParseFormattedTable(table *grid.Table, file string) ([]*models.MovementRecord, error) {
	required := []string{models.ColMovement, models.ColAmount, models.ColBranch, models.ColPaymentMethod}
	if err := table.RequireColumns(file, required); err != nil {
		return nil, err
	}

	log := logger.GetGlobalLogger().WithComponent("reconciler")

	records := make([]*models.MovementRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		movement := strings.TrimSpace(row[models.ColMovement])
		if movement == "" {
			continue
		}

		records = append(records, models.NewMovementRecord(
			movement,
			strings.TrimSpace(row[models.ColCode]),
			strings.TrimSpace(row[models.ColCounterparty]),
			normalize.NormalizeBranch(row[models.ColBranch], normalize.BranchPatternLoja),
			normalize.ParseAmount(row[models.ColAmount]).Round(2),
			strings.TrimSpace(row[models.ColPaymentMethod]),
		))
	}

	log.WithFields(logger.Fields{
		"file":    file,
		"records": len(records),
	}).Debug("Parsed formatted spreadsheet")

	return records, nil
}

// ParseLedgerTable converts a header-keyed table loaded from the bank
// movement ledger into ledger entries. Columns outside the interpreted set
// are preserved in Extra so reports can carry them through untouched.
func ParseLedgerTable(table *grid.Table, file string) ([]*models.LedgerEntry, error) {
	if err := table.RequireColumns(file, models.LedgerRequiredColumns()); err != nil {
		return nil, err
	}

	log := logger.GetGlobalLogger().WithComponent("reconciler")

	interpreted := map[string]struct{}{
		models.LedgerColCode:         {},
		models.LedgerColAmount:       {},
		models.LedgerColBranch:       {},
		models.LedgerColMovementDate: {},
		models.LedgerColCounterparty: {},
	}

	entries := make([]*models.LedgerEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		code := strings.TrimSpace(row[models.LedgerColCode])
		if code == "" {
			continue
		}

		entry := models.NewLedgerEntry(
			code,
			normalize.ParseAmount(row[models.LedgerColAmount]).Round(2),
			normalize.NormalizeBranch(row[models.LedgerColBranch], normalize.BranchPatternLJ),
			strings.TrimSpace(row[models.LedgerColMovementDate]),
			strings.TrimSpace(row[models.LedgerColCounterparty]),
		)

		for _, header := range table.Headers {
			if header == "" {
				continue
			}
			if _, ok := interpreted[header]; ok {
				continue
			}
			if entry.Extra == nil {
				entry.Extra = make(map[string]string)
			}
			entry.Extra[header] = row[header]
		}

		entries = append(entries, entry)
	}

	log.WithFields(logger.Fields{
		"file":    file,
		"entries": len(entries),
	}).Debug("Parsed bank ledger")

	return entries, nil
}

// LoadFormatted reads and parses the formatted spreadsheet from disk
func LoadFormatted(path string) ([]*models.MovementRecord, error) {
	table, err := grid.LoadTable(path)
	if err != nil {
		return nil, err
	}
	if len(table.Headers) == 0 {
		return nil, errors.ParseError(errors.CodeInvalidFormat, path, 1, "", "", nil).
			WithSuggestion("the formatted spreadsheet must carry a header row")
	}
	return ParseFormattedTable(table, path)
}

// LoadLedger reads and parses the bank movement ledger from disk
func LoadLedger(path string) ([]*models.LedgerEntry, error) {
	table, err := grid.LoadTable(path)
	if err != nil {
		return nil, err
	}
	if len(table.Headers) == 0 {
		return nil, errors.ParseError(errors.CodeInvalidFormat, path, 1, "", "", nil).
			WithSuggestion("the ledger spreadsheet must carry a header row")
	}
	return ParseLedgerTable(table, path)
}
