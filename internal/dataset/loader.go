package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/clientforge/schemagen/internal/models"
)

// Load reads the tabular dataset at path into ordered Records. The file
// format is chosen by extension: .xlsx workbooks are read from their first
// sheet, anything else is parsed as CSV. The first row is the header.
func Load(path string) ([]*models.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	default:
		return loadCSV(path)
	}
}

func loadExcel(path string) ([]*models.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	// First sheet is the primary record source.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return rowsToRecords(rows)
}

func loadCSV(path string) ([]*models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %s: %w", path, err)
	}

	return rowsToRecords(rows)
}

func rowsToRecords(rows [][]string) ([]*models.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset has no header row")
	}

	columns := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		columns = append(columns, strings.TrimSpace(h))
	}

	records := make([]*models.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record := models.NewRecord(i, columns)
		for j, column := range columns {
			if column == "" {
				continue
			}
			// Rows may be shorter than the header when trailing cells
			// are blank; those columns stay Missing.
			if j < len(row) && row[j] != "" {
				record.Set(column, models.Present(row[j]))
			} else {
				record.Set(column, models.Missing())
			}
		}
		records = append(records, record)
	}

	return records, nil
}
