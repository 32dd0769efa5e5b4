package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
	"github.com/ginjaninja78/lush-listing-kit/internal/sequencer"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
)

// Table helpers shared by the commands. Every table goes to the command's
// writer so tests can capture it.

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func renderRecords(out io.Writer, records []listing.Record) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "ID", "Title", "SKU", "Cost", "Links"})
	for i, r := range records {
		sku := r.SKU
		if sku == "" {
			sku = "-"
		}
		t.AppendRow(table.Row{i + 1, shortID(r.ID), r.Title, sku, r.Cost, r.LinkCount()})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d listing(s)", len(records))})
	t.Render()
}

func renderRecordDetail(out io.Writer, r listing.Record) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"ID", r.ID})
	t.AppendRow(table.Row{"Title", r.Title})
	t.AppendRow(table.Row{"SKU", r.SKU})
	t.AppendRow(table.Row{"Cost", r.Cost})
	for i, l := range r.Links {
		if l != "" {
			t.AppendRow(table.Row{fmt.Sprintf("Image %d", i+1), l})
		}
	}
	t.Render()
}

func renderWarnings(out io.Writer, ws []*validation.Warning) {
	for _, w := range ws {
		fmt.Fprintf(out, "  ! %s\n", w.Message)
	}
}

func renderBatches(out io.Writer, batches []sequencer.Batch) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "SKU", "Files", "Locked At"})
	for _, b := range batches {
		t.AppendRow(table.Row{shortID(b.ID), b.Identifier, len(b.Files), b.CreatedAt.Format("15:04:05")})
	}
	t.Render()
}

func renderNames(out io.Writer, files []sequencer.NamedFile) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Original", "New Name"})
	for _, f := range files {
		t.AppendRow(table.Row{filepath.Base(f.Source.Name()), f.Name})
	}
	t.Render()
}

// shortID trims a UUID for display. Lookups accept any unique prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
