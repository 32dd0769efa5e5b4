// =============================================================================
// Listing Toolkit - XLSX Exporter
// =============================================================================
//
// Some marketplaces take the bulk-upload table as a workbook instead of CSV.
// This file writes the same 21 columns into a single "Listings" sheet.
//
// Cells are written as strings so costs such as "120.50" keep their exact
// text; the workbook never reformats a value.
//
// =============================================================================

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
)

// SheetName is the name of the sheet holding the table.
const SheetName = "Listings"

// =============================================================================
// FORMATS
// =============================================================================

// Format selects the export encoding.
type Format string

const (
	// FormatCSV is the delimited text table.
	FormatCSV Format = "csv"

	// FormatXLSX is the Excel workbook.
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name from flags or configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
	}
}

// MediaType returns the media-type hint passed to the save collaborator.
func (f Format) MediaType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv;charset=utf-8"
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// =============================================================================
// WORKBOOK
// =============================================================================

// XLSX builds the upload table as a workbook.
//
// RETURNS:
//   - The workbook. The caller closes it.
//   - ErrNoRecords if records is empty.
func XLSX(records []listing.Record, fields listing.BusinessFields) (*excelize.File, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, 1, Columns); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range records {
		if err := writeRow(f, i+2, Row(r, fields)); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// writeRow writes values as string cells starting at column A of the given row.
func writeRow(f *excelize.File, rowNum int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellStr(SheetName, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

// =============================================================================
// STREAMING
// =============================================================================

// Write encodes the records in the given format to w.
//
// RETURNS:
//   - ErrNoRecords if records is empty; nothing is written.
//   - An error if encoding or writing fails.
func Write(w io.Writer, format Format, records []listing.Record, fields listing.BusinessFields) error {
	switch format {
	case FormatXLSX:
		f, err := XLSX(records, fields)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.Write(w); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		return nil
	default:
		payload, err := CSV(records, fields)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, payload); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		return nil
	}
}
