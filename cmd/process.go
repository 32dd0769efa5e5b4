// =============================================================================
// Listing Toolkit - Process Command
// =============================================================================
//
// This file defines the 'process' command, the batch entry point. It:
//   1. Discovers *.txt paste files in the input directory
//   2. Converts each into its own master upload file, concurrently
//   3. Moves successfully converted paste files to the input archive
//   4. Prints and saves a processing summary
//
// COMMAND USAGE:
//   lush process
//   lush process --dry-run
//
// CONCURRENCY MODEL:
//   One goroutine per file, at most max_concurrency running at once. Each
//   Converter owns its records, so the goroutines share nothing but the
//   results channel.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lush-listing-kit/internal/config"
	"github.com/ginjaninja78/lush-listing-kit/internal/converter"
	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

var (
	dryRun         bool
	processPattern string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every paste file in the input directory",
	Long: `The process command scans the input directory for paste files and converts
each one into its own master upload file. Files are processed concurrently.

On success:
  - The upload file is saved in the output directory
  - The paste file is moved to the input archive

On error:
  - The paste file stays in the input directory
  - Processing continues for the other files (see continue_on_error)

A summary is printed and saved next to the exports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fm := newFileManager()
		summary, err := runProcess(cmd.Context(), cmd.OutOrStdout(), appConfig, fm, appLog)
		if err != nil {
			return err
		}
		if summary.FailedFiles > 0 {
			return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and check without saving or archiving")
	processCmd.Flags().StringVar(&processPattern, "pattern", "*.txt", "Glob of paste files in the input directory")
}

// runProcess converts every discovered paste file and reports on out.
//
// RETURNS:
//   - The summary of the run, with zero totals when no paste file was found.
//   - An error when discovery or the summary save fails.
func runProcess(ctx context.Context, out io.Writer, cfg *config.Config, fm *utils.FileManager, log logger.Logger) (*utils.ProcessingSummary, error) {
	summary := &utils.ProcessingSummary{StartTime: time.Now()}

	if err := fm.EnsureDirectories(); err != nil {
		return nil, err
	}

	files, err := fm.DiscoverInputFiles(processPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No paste files found in %s\n", fm.InputDir)
		return summary, nil
	}

	summary.TotalFiles = len(files)
	log.Info("Processing paste files", logger.Int("files", len(files)), logger.Bool("dry_run", dryRun))

	// =========================================================================
	// FAN OUT
	// =========================================================================

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := converter.Options{
		Format:       cfg.Format(),
		Fields:       cfg.ListingDefaults,
		DryRun:       dryRun,
		NameBySource: true,
		Archiver:     fm,
		Checks:       cfg.Checks(),
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.MaxConcurrency)
	results := make(chan converter.Result, len(files))

	for _, file := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := converter.New(path, fm, opts, log).Run(ctx)
			if !res.Success && !cfg.ContinueOnError {
				cancel()
			}
			results <- res
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// COLLECT
	// =========================================================================

	var collected []converter.Result
	for res := range results {
		collected = append(collected, res)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].FilePath < collected[j].FilePath })

	for _, res := range collected {
		name := filepath.Base(res.FilePath)
		if len(res.Warnings) > 0 {
			log.Debug("Record checks",
				logger.String("file", name),
				logger.String("warnings", validation.FormatWarnings(res.Warnings)),
			)
		}
		if res.Success {
			summary.SuccessfulFiles++
			summary.TotalRecords += res.Stats.RecordsCreated
			summary.TotalWarnings += len(res.Warnings)
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   res.FilePath,
				OutputFile:  res.OutputFile,
				Records:     res.Stats.RecordsCreated,
				Warnings:    len(res.Warnings),
				ProcessTime: res.Stats.ProcessingTime,
			})
			target := res.OutputFile
			if target == "" {
				target = "(dry run)"
			}
			fmt.Fprintf(out, "  ✓ %s -> %s (%d listing(s))\n", name, target, res.Stats.RecordsCreated)
			continue
		}

		summary.FailedFiles++
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    res.FilePath,
			ErrorMessage: res.Error.Error(),
		})
		fmt.Fprintf(out, "  ✗ %s: %v\n", name, res.Error)
	}

	summary.EndTime = time.Now()
	fmt.Fprintln(out)
	fmt.Fprint(out, summary.Render())

	if !dryRun {
		path, err := utils.WriteSummaryLog(fm, summary)
		if err != nil {
			return summary, err
		}
		fmt.Fprintf(out, "Summary saved to %s\n", path)
	}
	return summary, nil
}
