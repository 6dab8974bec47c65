// Package reporter writes the pipeline's spreadsheet outputs: the formatted
// intermediate file, the unrelated-movements report and the per-account
// accounting imports.
package reporter

import (
	"path/filepath"

	"caixasync/internal/grid"
	"caixasync/internal/models"
	"caixasync/internal/normalize"
	"caixasync/internal/reconciler"
	"caixasync/pkg/logger"
)

const (
	// UnrelatedReportName is the fixed file name of the unmatched-movements
	// report
	UnrelatedReportName = "Não Relacionados.xlsx"

	sheetName = "Planilha1"
)

// Reporter writes workbooks for the processing pipeline
type Reporter struct {
	logger logger.Logger
}

// NewReporter creates a reporter
func NewReporter() *Reporter {
	return &Reporter{
		logger: logger.GetGlobalLogger().WithComponent("reporter"),
	}
}

// WriteFormatted writes the formatted movement spreadsheet. The amount
// column is written as a numeric cell with a two-decimal format so the
// reconcile stage and human reviewers read the same value.
func (r *Reporter) WriteFormatted(records []*models.MovementRecord, path string) error {
	if err := r.writeMovements(records, path); err != nil {
		return err
	}

	r.logger.WithFields(logger.Fields{
		"file":    path,
		"records": len(records),
	}).Info("Wrote formatted spreadsheet")

	return nil
}

// WriteUnrelated writes the unmatched-movements report into the output
// directory under its fixed name. Nothing is written when every movement
// matched.
func (r *Reporter) WriteUnrelated(records []*models.MovementRecord, outputDir string) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	path := filepath.Join(outputDir, UnrelatedReportName)
	if err := r.writeMovements(records, path); err != nil {
		return "", err
	}

	r.logger.WithFields(logger.Fields{
		"file":    path,
		"records": len(records),
	}).Info("Wrote unrelated movements report")

	return path, nil
}

// WriteAccounts writes one accounting-import workbook per destination
// account into the output directory, named after the account. Returns the
// written file paths.
func (r *Reporter) WriteAccounts(result *reconciler.Result, outputDir string) ([]string, error) {
	var written []string

	for _, account := range result.AccountNames() {
		rows, err := reconciler.BuildImportRows(result.Accounts[account], result.Routing)
		if err != nil {
			return written, err
		}

		path := filepath.Join(outputDir, normalize.SanitizeFileName(account)+".xlsx")
		if err := r.writeImport(rows, path); err != nil {
			return written, err
		}

		r.logger.WithFields(logger.Fields{
			"account": account,
			"file":    path,
			"rows":    len(rows),
		}).Info("Wrote account import")

		written = append(written, path)
	}

	return written, nil
}

// writeMovements writes records in the formatted spreadsheet shape
func (r *Reporter) writeMovements(records []*models.MovementRecord, path string) error {
	wb := grid.NewWorkbook(sheetName)
	defer wb.Close()

	if err := wb.SetHeader(models.FormattedColumns()); err != nil {
		return err
	}

	for _, record := range records {
		amount, _ := record.Amount.Float64()
		if err := wb.AppendRow([]interface{}{
			record.Movement,
			record.Code,
			record.Counterparty,
			record.Branch,
			amount,
			record.PaymentMethod,
		}); err != nil {
			return err
		}
	}

	amountStyle, err := wb.AmountStyle()
	if err != nil {
		return err
	}
	if err := wb.StyleColumn(4, amountStyle); err != nil {
		return err
	}
	if err := wb.AutosizeColumns(); err != nil {
		return err
	}

	return wb.SaveAtomic(path)
}

// writeImport writes one accounting-import workbook
func (r *Reporter) writeImport(rows []models.ImportRow, path string) error {
	wb := grid.NewWorkbook(sheetName)
	defer wb.Close()

	if err := wb.SetHeader(models.ImportColumns()); err != nil {
		return err
	}

	for _, row := range rows {
		amount, _ := row.Amount.Float64()
		if err := wb.AppendRow([]interface{}{
			row.CompetenceDate,
			row.DueDate,
			row.PaymentDate,
			amount,
			row.Category,
			row.Description,
			row.Counterparty,
			row.CounterpartyTaxID,
			row.CostCenter,
			row.Observations,
		}); err != nil {
			return err
		}
	}

	dateStyle, err := wb.DateStyle()
	if err != nil {
		return err
	}
	amountStyle, err := wb.AmountStyle()
	if err != nil {
		return err
	}
	textStyle, err := wb.TextStyle()
	if err != nil {
		return err
	}

	for col := 0; col <= 2; col++ {
		if err := wb.StyleColumn(col, dateStyle); err != nil {
			return err
		}
	}
	if err := wb.StyleColumn(3, amountStyle); err != nil {
		return err
	}
	for col := 4; col <= 9; col++ {
		if err := wb.StyleColumn(col, textStyle); err != nil {
			return err
		}
	}

	if err := wb.AutosizeColumns(); err != nil {
		return err
	}

	return wb.SaveAtomic(path)
}
