// Package grid wraps spreadsheet I/O for the processing pipeline.
//
// Reading comes in two shapes: LoadGrid returns the raw header-less 2-D cell
// grid the row classifier consumes positionally, and LoadTable returns
// header-keyed rows for the structured intermediate and ledger files.
// Writing goes through Workbook, which applies cell styles and saves through
// a temporary file followed by a rename so a failed write never leaves a
// half-written artifact.
package grid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"caixasync/pkg/errors"
	"caixasync/pkg/logger"
)

// LoadGrid reads the first sheet of a workbook into a 2-D grid of cell
// strings. The grid is header-less; callers address columns by index.
// Rows keep their original order and may have ragged lengths (excelize trims
// trailing blank cells).
func LoadGrid(path string) ([][]string, error) {
	log := logger.GetGlobalLogger().WithComponent("grid")

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.FileError(errors.CodeFileCorrupted, path, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}

	log.WithFields(logger.Fields{
		"file":  path,
		"sheet": sheet,
		"rows":  len(rows),
	}).Debug("Loaded raw grid")

	return rows, nil
}

// Table holds header-keyed spreadsheet rows
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// LoadTable reads the first sheet of a workbook as a table whose first row
// is the header. Cell values are keyed by header name; cells beyond the
// header width are dropped, missing trailing cells read as empty strings.
func LoadTable(path string) (*Table, error) {
	rows, err := LoadGrid(path)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &Table{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// HasColumn reports whether the table carries the given header
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// RequireColumns returns a parse error naming the first missing column
func (t *Table) RequireColumns(file string, names []string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return errors.ParseError(errors.CodeMissingColumn, file, 1, name, "", nil)
		}
	}
	return nil
}

func openWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	return f, nil
}

// EnsureXLSXExt appends ".xlsx" when the path carries no spreadsheet
// extension
func EnsureXLSXExt(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		return path
	}
	return path + ".xlsx"
}

// EnsureWritableDir creates the directory when missing and verifies it is
// writable by probing with a temporary file. Called eagerly, before any
// transformation work, so permission problems surface before processing.
func EnsureWritableDir(dir string) error {
	if dir == "" || dir == "." {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		if os.IsPermission(err) {
			return errors.FileError(errors.CodeFilePermission, dir, err)
		}
		return errors.FileError(errors.CodeDirectoryError, dir, err)
	}

	probe, err := os.CreateTemp(dir, ".caixasync-probe-*")
	if err != nil {
		return errors.FileError(errors.CodeFilePermission, dir, err)
	}
	name := probe.Name()
	probe.Close()
	if err := os.Remove(name); err != nil {
		return errors.FileError(errors.CodeDirectoryError, dir, err)
	}

	return nil
}

// resolveParent makes sure the parent directory of an output path exists
// and is writable
func resolveParent(path string) error {
	dir := filepath.Dir(path)
	return EnsureWritableDir(dir)
}
