package pastefile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXExtension marks a paste file exported straight from a spreadsheet.
const XLSXExtension = ".xlsx"

// IsSpreadsheet reports whether path is read as a spreadsheet.
func IsSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), XLSXExtension)
}

// ReadSheetLines reads the first sheet of an XLSX paste file. The non-empty
// cells of each row are joined with single spaces, so a row laid out as
//
//	| Gucci Bag (LG25) | 350 | https://drive.google.com/open?id=ABC123 |
//
// parses exactly like the pasted line. Line breaks inside a cell become
// spaces, so one row is always one line. Empty rows come back as "" so line
// numbers stay equal to row numbers.
func ReadSheetLines(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = joinRow(row)
	}
	return lines, nil
}

var cellBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func joinRow(row []string) string {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		if c = strings.TrimSpace(cellBreaks.Replace(c)); c != "" {
			cells = append(cells, c)
		}
	}
	return strings.Join(cells, " ")
}
