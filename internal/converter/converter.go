// =============================================================================
// Listing Toolkit - Conversion Pipeline
// =============================================================================
//
// This module turns one paste file into one master upload file. It is the
// core of both `lush export` (one file) and `lush process` (every file in the
// input directory, concurrently).
//
// PROCESSING PIPELINE:
//   1. Read the paste file line by line
//   2. Parse each non-blank line into a listing record
//   3. Check every record and log the warnings
//   4. Render the records as CSV or XLSX
//   5. Save the rendered file through the save collaborator
//   6. Move the paste file into the input archive (when an archiver is set)
//
// A Converter owns its own collection; nothing is shared between runs, so
// several Converters can run at once.
//
// =============================================================================

package converter

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ginjaninja78/lush-listing-kit/internal/export"
	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
	"github.com/ginjaninja78/lush-listing-kit/internal/pastefile"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result represents the outcome of converting one paste file.
type Result struct {
	// FilePath is the paste file that was processed.
	FilePath string

	// OutputFile is the saved export. Empty on failure or dry run.
	OutputFile string

	// ArchivedTo is where the paste file was moved. Empty when not archived.
	ArchivedTo string

	// Success indicates whether the conversion succeeded.
	Success bool

	// Error contains the error if the conversion failed.
	Error error

	// Warnings are the record checks that fired.
	Warnings []*validation.Warning

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about one conversion.
type ProcessingStats struct {
	LinesRead      int
	RecordsCreated int
	RecordsFlagged int
	LinksExported  int
	ProcessingTime time.Duration
}

// Archiver moves a processed paste file out of the input directory.
type Archiver interface {
	ArchiveInputFile(path string) (string, error)
}

// Options tune a Converter.
type Options struct {
	// Format is the export format. Zero means CSV.
	Format export.Format

	// Fields are the constant columns of every row.
	Fields listing.BusinessFields

	// DryRun parses and checks but neither saves nor archives.
	DryRun bool

	// NameBySource includes the paste file's name in the export name.
	NameBySource bool

	// Checks turns individual record checks off.
	Checks validation.Options

	// Archiver, when set, receives the paste file after a successful save.
	Archiver Archiver
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter processes a single paste file.
type Converter struct {
	pastePath string
	opts      Options
	saver     utils.Saver
	validator *validation.Validator
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Converter for pastePath.
//
// PARAMETERS:
//   - pastePath: The paste file to convert.
//   - saver: Where the export goes.
//   - opts: Format, business fields and run mode.
//   - log: The logger; nil discards messages.
func New(pastePath string, saver utils.Saver, opts Options, log logger.Logger) *Converter {
	if opts.Format == "" {
		opts.Format = export.FormatCSV
	}
	opts.Fields = opts.Fields.WithDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Converter{
		pastePath: pastePath,
		opts:      opts,
		saver:     saver,
		validator: validation.NewValidatorWithOptions(opts.Checks),
		logger:    log.With(logger.String("file", pastePath)),
		now:       time.Now,
	}
}

// Run executes the pipeline. It stops between steps when ctx is done.
func (c *Converter) Run(ctx context.Context) (result Result) {
	start := time.Now()
	result = Result{FilePath: c.pastePath}
	defer func() { result.Stats.ProcessingTime = time.Since(start) }()

	c.logger.Info("Processing paste file")

	// =========================================================================
	// STEP 1-3: READ, PARSE AND CHECK
	// =========================================================================

	records, checks, lines, err := c.collect()
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.LinesRead = lines
	result.Stats.RecordsCreated = len(records)
	result.Stats.RecordsFlagged = checks.RecordsFlagged
	result.Warnings = checks.Warnings

	for _, w := range checks.Warnings {
		c.logger.Warn("Record check", logger.String("rule", w.Rule), logger.String("detail", w.Error()))
	}
	for _, r := range records {
		result.Stats.LinksExported += r.LinkCount()
	}

	c.logger.Debug("Parsed paste file",
		logger.Int("records", len(records)),
		logger.Int("warnings", len(checks.Warnings)),
	)

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 4: RENDER
	// =========================================================================

	var buf bytes.Buffer
	if err := export.Write(&buf, c.opts.Format, records, c.opts.Fields); err != nil {
		result.Error = fmt.Errorf("failed to render export: %w", err)
		return result
	}

	if c.opts.DryRun {
		c.logger.Info("Dry run, nothing saved", logger.Int("records", len(records)))
		result.Success = true
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 5: SAVE
	// =========================================================================

	path, err := c.saver.Save(buf.Bytes(), c.fileName(), c.opts.Format.MediaType())
	if err != nil {
		result.Error = fmt.Errorf("failed to save export: %w", err)
		return result
	}
	result.OutputFile = path
	c.logger.Info("Saved export", logger.String("output", path), logger.Int("records", len(records)))

	// =========================================================================
	// STEP 6: ARCHIVE INPUT
	// =========================================================================

	if c.opts.Archiver != nil {
		archived, err := c.opts.Archiver.ArchiveInputFile(c.pastePath)
		if err != nil {
			// The export exists; a stuck input only means it is processed again.
			c.logger.Warn("Failed to archive paste file", logger.Error(err))
		} else {
			result.ArchivedTo = archived
		}
	}

	result.Success = true
	return result
}

// collect reads the paste file into records and checks each one.
func (c *Converter) collect() ([]listing.Record, *validation.Result, int, error) {
	r, err := pastefile.Open(c.pastePath)
	if err != nil {
		return nil, nil, 0, err
	}
	defer r.Close()

	coll := listing.NewCollection()
	checks := &validation.Result{}
	for r.Next() {
		rec, ok := listing.ParseLine(r.Line())
		if !ok {
			continue
		}
		coll.Append(rec)
		checks.Add(c.validator.Check(rec, r.Line(), r.LineNumber()))
	}
	if err := r.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to read paste file: %w", err)
	}
	return coll.Records(), checks, r.LineNumber(), nil
}

func (c *Converter) fileName() string {
	now := c.now()
	if c.opts.NameBySource {
		return export.SourceFileName(c.pastePath, now, c.opts.Format.Extension())
	}
	return export.FileName(now, c.opts.Format.Extension())
}
