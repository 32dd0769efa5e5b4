package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lush-listing-kit/internal/config"
	"github.com/ginjaninja78/lush-listing-kit/internal/converter"
	"github.com/ginjaninja78/lush-listing-kit/internal/export"
	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

var (
	exportInput  string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert one paste file into a master upload file",
	Long: `Export reads a paste file (one product per line), parses every non-blank
line and saves LUSH_MASTER_<timestamp>.csv (or .xlsx) into the output
directory. The paste file is left where it is.

  lush export --input pastes/monday.txt
  lush export --input pastes/monday.txt --format xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := appConfig.Format()
		if exportFormat != "" {
			f, err := export.ParseFormat(exportFormat)
			if err != nil {
				return err
			}
			format = f
		}
		_, err := runExport(cmd.Context(), cmd.OutOrStdout(), appConfig, newFileManager(), appLog, exportInput, format)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Paste file to export")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: csv or xlsx (default from config)")
	_ = exportCmd.MarkFlagRequired("input")
}

// runExport converts one paste file and prints the record checks followed
// by the saved path.
func runExport(ctx context.Context, out io.Writer, cfg *config.Config, fm *utils.FileManager, log logger.Logger, input string, format export.Format) (converter.Result, error) {
	conv := converter.New(input, fm, converter.Options{
		Format: format,
		Fields: cfg.ListingDefaults,
		Checks: cfg.Checks(),
	}, log)

	res := conv.Run(ctx)
	if res.Error != nil {
		return res, res.Error
	}

	fmt.Fprint(out, validation.FormatWarnings(res.Warnings))
	if len(res.Warnings) == 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Exported %d listing(s) to %s\n", res.Stats.RecordsCreated, res.OutputFile)
	return res, nil
}
