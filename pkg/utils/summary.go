package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ProcessingSummary aggregates one `process` run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalRecords    int
	TotalWarnings   int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo describes one converted paste file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	Records     int
	Warnings    int
	ProcessTime time.Duration
}

// FailedFileInfo describes one paste file that could not be converted.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// Render formats the summary as plain text with a table per section.
func (s *ProcessingSummary) Render() string {
	var b strings.Builder

	b.WriteString("Listing Toolkit - Processing Summary\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	fmt.Fprintf(&b, "  Start Time:  %s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  End Time:    %s\n", s.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  Duration:    %s\n\n", s.EndTime.Sub(s.StartTime).Round(time.Millisecond))
	fmt.Fprintf(&b, "  Total Files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "  Successful:  %d\n", s.SuccessfulFiles)
	fmt.Fprintf(&b, "  Failed:      %d\n", s.FailedFiles)
	fmt.Fprintf(&b, "  Records:     %d\n", s.TotalRecords)
	fmt.Fprintf(&b, "  Warnings:    %d\n\n", s.TotalWarnings)

	if len(s.ProcessedFiles) > 0 {
		t := table.NewWriter()
		t.SetTitle("Successful Files")
		t.AppendHeader(table.Row{"Input", "Output", "Records", "Warnings", "Time"})
		for _, pf := range s.ProcessedFiles {
			t.AppendRow(table.Row{
				filepath.Base(pf.InputFile),
				filepath.Base(pf.OutputFile),
				pf.Records,
				pf.Warnings,
				pf.ProcessTime.Round(time.Millisecond),
			})
		}
		b.WriteString(t.Render() + "\n\n")
	}

	if len(s.FailedFilesList) > 0 {
		t := table.NewWriter()
		t.SetTitle("Failed Files")
		t.AppendHeader(table.Row{"Input", "Error"})
		for _, ff := range s.FailedFilesList {
			t.AppendRow(table.Row{filepath.Base(ff.InputFile), ff.ErrorMessage})
		}
		b.WriteString(t.Render() + "\n\n")
	}

	return b.String()
}

// WriteSummaryLog saves the rendered summary through saver as
// summary_<timestamp>.txt.
//
// RETURNS:
//   - The path of the summary file.
//   - An error if saving fails.
func WriteSummaryLog(saver Saver, summary *ProcessingSummary) (string, error) {
	name := fmt.Sprintf("summary_%s.txt", summary.EndTime.Format("20060102_150405"))
	path, err := saver.Save([]byte(summary.Render()), name, "text/plain;charset=utf-8")
	if err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}
