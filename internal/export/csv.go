// =============================================================================
// Listing Toolkit - Table Exporter
// =============================================================================
//
// This module serializes an ordered list of records into the marketplace's
// bulk-upload table. The transform is pure: it returns the payload and leaves
// saving to the caller's Saver.
//
// TABLE LAYOUT (21 columns):
//   | Category | Sub Category | Title | Description | Quantity | Type | Price |
//   | Shipping Profile | Offerable | Hazmat | Condition | Cost Per Item | SKU |
//   | Image URL 1 ... Image URL 8 |
//
// ESCAPING:
//   Only the title is quoted, with embedded quotes doubled. Every other
//   value is written as-is, exactly as the upload template expects.
//
// =============================================================================

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
)

// ErrNoRecords is returned when an export is requested for an empty list.
var ErrNoRecords = errors.New("scroll is empty: add at least one listing before exporting")

// =============================================================================
// HEADER
// =============================================================================

// Columns is the literal header of the upload table, in order.
var Columns = []string{
	"Category",
	"Sub Category",
	"Title",
	"Description",
	"Quantity",
	"Type",
	"Price",
	"Shipping Profile",
	"Offerable",
	"Hazmat",
	"Condition",
	"Cost Per Item",
	"SKU",
	"Image URL 1",
	"Image URL 2",
	"Image URL 3",
	"Image URL 4",
	"Image URL 5",
	"Image URL 6",
	"Image URL 7",
	"Image URL 8",
}

// titleColumn is the position of the only quoted column.
const titleColumn = 2

// =============================================================================
// ROW BUILDING
// =============================================================================

// Row returns the unescaped cell values of one record, in Columns order.
//
// PARAMETERS:
//   - r: The record to lay out.
//   - fields: The constant business columns.
func Row(r listing.Record, fields listing.BusinessFields) []string {
	row := make([]string, 0, len(Columns))
	row = append(row,
		fields.Category,
		fields.SubCategory,
		r.Title,
		fields.Description,
		fields.Quantity,
		fields.Type,
		fields.Price,
		fields.ShippingProfile,
		fields.Offerable,
		fields.Hazmat,
		fields.Condition,
		r.Cost,
		r.SKU,
	)
	row = append(row, r.Links[:]...)
	return row
}

// =============================================================================
// CSV SERIALIZATION
// =============================================================================

// CSV builds the upload table as delimited text.
//
// PARAMETERS:
//   - records: The records in export order.
//   - fields: The constant business columns.
//
// RETURNS:
//   - The payload: header line plus one line per record, each ending in "\n".
//   - ErrNoRecords if records is empty. No payload is produced.
func CSV(records []listing.Record, fields listing.BusinessFields) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	var b strings.Builder
	b.WriteString(strings.Join(Columns, ","))
	b.WriteByte('\n')

	for _, r := range records {
		row := Row(r, fields)
		row[titleColumn] = QuoteTitle(row[titleColumn])
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// QuoteTitle wraps a title in double quotes, doubling any quote inside it.
func QuoteTitle(title string) string {
	return `"` + strings.ReplaceAll(title, `"`, `""`) + `"`
}

// =============================================================================
// FILE NAMING
// =============================================================================

// FileName returns the export file name for the given moment and extension.
//
// EXAMPLE:
//   FileName(now, "csv") -> "LUSH_MASTER_1718000000000.csv"
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("LUSH_MASTER_%d.%s", now.UnixMilli(), ext)
}

// SourceFileName is FileName for batch runs, where several paste files can
// finish in the same millisecond. The paste file's stem keeps names apart.
//
// EXAMPLE:
//   SourceFileName("in/monday.txt", now, "csv") -> "LUSH_MASTER_monday_1718000000000.csv"
func SourceFileName(source string, now time.Time, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return fmt.Sprintf("LUSH_MASTER_%s_%d.%s", stem, now.UnixMilli(), ext)
}
