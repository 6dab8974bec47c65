package grid

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"caixasync/pkg/errors"
	"caixasync/pkg/logger"
)

// Workbook builds a single-sheet output spreadsheet. Rows are appended
// below the header; cell styles are applied per column before saving.
type Workbook struct {
	file    *excelize.File
	sheet   string
	nextRow int
	numCols int
	logger  logger.Logger
}

// NewWorkbook creates an empty workbook with one named sheet
func NewWorkbook(sheet string) *Workbook {
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	if sheet != "Sheet1" {
		f.SetSheetName("Sheet1", sheet)
	}

	return &Workbook{
		file:    f,
		sheet:   sheet,
		nextRow: 1,
		logger:  logger.GetGlobalLogger().WithComponent("workbook"),
	}
}

// SetHeader writes the header row with a bold style
func (w *Workbook) SetHeader(columns []string) error {
	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return errors.InternalError(errors.CodeUnexpectedError, "header style", err)
	}

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "header cell", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, name); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "header cell", err)
		}
		if err := w.file.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "header style", err)
		}
	}

	w.numCols = len(columns)
	w.nextRow = 2
	return nil
}

// AppendRow writes one data row below the rows written so far. Values may
// be strings or numeric types; excelize stores them with their native cell
// type so number formats apply.
func (w *Workbook) AppendRow(values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.nextRow)
		if err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "row cell", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "row cell", err)
		}
	}
	if len(values) > w.numCols {
		w.numCols = len(values)
	}
	w.nextRow++
	return nil
}

// RowCount returns the number of data rows appended so far
func (w *Workbook) RowCount() int {
	if w.nextRow <= 2 {
		return 0
	}
	return w.nextRow - 2
}

// DateStyle returns a style ID formatting cells as dd/mm/yyyy
func (w *Workbook) DateStyle() (int, error) {
	format := "dd/mm/yyyy"
	return w.file.NewStyle(&excelize.Style{CustomNumFmt: &format})
}

// AmountStyle returns a style ID formatting cells with two decimal places
func (w *Workbook) AmountStyle() (int, error) {
	// Built-in number format 2 is "0.00"
	return w.file.NewStyle(&excelize.Style{NumFmt: 2})
}

// TextStyle returns a style ID formatting cells as plain text
func (w *Workbook) TextStyle() (int, error) {
	// Built-in number format 49 is "@"
	return w.file.NewStyle(&excelize.Style{NumFmt: 49})
}

// StyleColumn applies a style to one column across all data rows
func (w *Workbook) StyleColumn(col int, styleID int) error {
	if w.nextRow <= 2 {
		return nil
	}

	top, err := excelize.CoordinatesToCellName(col+1, 2)
	if err != nil {
		return errors.InternalError(errors.CodeUnexpectedError, "column style", err)
	}
	bottom, err := excelize.CoordinatesToCellName(col+1, w.nextRow-1)
	if err != nil {
		return errors.InternalError(errors.CodeUnexpectedError, "column style", err)
	}

	if err := w.file.SetCellStyle(w.sheet, top, bottom, styleID); err != nil {
		return errors.InternalError(errors.CodeUnexpectedError, "column style", err)
	}
	return nil
}

// AutosizeColumns widens each column to fit its longest cell value
func (w *Workbook) AutosizeColumns() error {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return errors.InternalError(errors.CodeUnexpectedError, "column sizing", err)
	}

	widths := make([]int, w.numCols)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "column sizing", err)
		}
		if err := w.file.SetColWidth(w.sheet, name, name, float64(width+2)); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "column sizing", err)
		}
	}

	return nil
}

// SaveAtomic writes the workbook to path through a temporary file and an
// atomic rename, so a failed save never leaves a truncated artifact. The
// parent directory is created when missing.
func (w *Workbook) SaveAtomic(path string) error {
	path = EnsureXLSXExt(path)

	if err := resolveParent(path); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}
	if _, err := w.file.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}

	w.logger.WithFields(logger.Fields{
		"file": path,
		"rows": w.RowCount(),
	}).Debug("Saved workbook")

	return nil
}

// Close releases the underlying file resources
func (w *Workbook) Close() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing workbook: %w", err)
	}
	return nil
}
