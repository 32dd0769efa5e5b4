package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
)

const wantHeader = "Category,Sub Category,Title,Description,Quantity,Type,Price,Shipping Profile," +
	"Offerable,Hazmat,Condition,Cost Per Item,SKU,Image URL 1,Image URL 2,Image URL 3," +
	"Image URL 4,Image URL 5,Image URL 6,Image URL 7,Image URL 8"

func sampleRecords() []listing.Record {
	return []listing.Record{
		listing.Parse("Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123"),
		listing.Parse(`Chanel "Classic" Flap, Black 1200.50`),
		listing.Parse("Plain Item No Links"),
	}
}

func TestCSV_EmptyFails(t *testing.T) {
	payload, err := CSV(nil, listing.DefaultBusinessFields())
	require.ErrorIs(t, err, ErrNoRecords)
	assert.Empty(t, payload)
}

func TestCSV_Layout(t *testing.T) {
	records := sampleRecords()
	payload, err := CSV(records, listing.DefaultBusinessFields())
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(payload, "\n"))
	lines := strings.Split(strings.TrimSuffix(payload, "\n"), "\n")
	require.Len(t, lines, len(records)+1)
	assert.Equal(t, wantHeader, lines[0])
	assert.Len(t, Columns, 21)

	wantFirst := `Bags & Accessories,Luxury Bags & Accessories,"Gucci Bag (LG25)",Pre-Owned,1,Auction,1,1lbs,` +
		`TRUE,Not Hazardous,Very Good,350,LG25,https://drive.google.com/uc?export=view&id=ABC123,,,,,,,`
	assert.Equal(t, wantFirst, lines[1])

	assert.Contains(t, lines[2], `"Chanel ""Classic"" Flap, Black"`)
	assert.Contains(t, lines[2], ",1200.50,,")
}

func TestCSV_LineCountMatchesRecords(t *testing.T) {
	for _, n := range []int{1, 2, 10} {
		var records []listing.Record
		for i := 0; i < n; i++ {
			records = append(records, listing.Parse("Item 5"))
		}
		payload, err := CSV(records, listing.DefaultBusinessFields())
		require.NoError(t, err)
		assert.Equal(t, n+1, strings.Count(payload, "\n"))
	}
}

func TestCSV_TitleRoundTrip(t *testing.T) {
	titles := []string{
		`Plain`,
		`Has "quotes" inside`,
		`Comma, separated, title`,
		`""`,
		`Ends with quote"`,
	}

	var records []listing.Record
	for _, title := range titles {
		records = append(records, listing.Record{ID: title, Title: title, Cost: "1"})
	}

	payload, err := CSV(records, listing.DefaultBusinessFields())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(titles)+1)

	for i, title := range titles {
		assert.Equal(t, title, rows[i+1][titleColumn])
		assert.Len(t, rows[i+1], len(Columns))
	}
}

func TestCSV_CustomBusinessFields(t *testing.T) {
	fields := listing.BusinessFields{Condition: "Excellent", Price: "25"}.WithDefaults()
	payload, err := CSV([]listing.Record{listing.Parse("Bag 9")}, fields)
	require.NoError(t, err)
	assert.Contains(t, payload, ",25,1lbs,")
	assert.Contains(t, payload, ",Excellent,9,")
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	assert.Equal(t, "LUSH_MASTER_1718000000123.csv", FileName(now, "csv"))
	assert.Equal(t, "LUSH_MASTER_1718000000123.xlsx", FileName(now, FormatXLSX.Extension()))
	assert.Equal(t, "LUSH_MASTER_monday_1718000000123.csv", SourceFileName("input/monday.txt", now, "csv"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Contains(t, f.MediaType(), "spreadsheetml")
	assert.Equal(t, "text/csv;charset=utf-8", FormatCSV.MediaType())

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestXLSX(t *testing.T) {
	_, err := XLSX(nil, listing.DefaultBusinessFields())
	require.ErrorIs(t, err, ErrNoRecords)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleRecords(), listing.DefaultBusinessFields()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Gucci Bag (LG25)", rows[1][titleColumn])
	assert.Equal(t, "1200.50", rows[2][11])
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleRecords(), listing.DefaultBusinessFields()))
	assert.True(t, strings.HasPrefix(buf.String(), wantHeader+"\n"))

	buf.Reset()
	require.ErrorIs(t, Write(&buf, FormatCSV, nil, listing.DefaultBusinessFields()), ErrNoRecords)
	assert.Zero(t, buf.Len())
}
