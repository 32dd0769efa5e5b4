package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
)

var parseOutput string

var parseCmd = &cobra.Command{
	Use:   "parse <text...>",
	Short: "Parse one pasted line and show the resulting listing",
	Long: `Parse joins its arguments with spaces and runs them through the listing
parser, then prints the record and any warnings. Nothing is saved.

  lush parse "Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123"
  lush parse --output yaml Prada Wallet 120`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.Join(args, " ")
		rec, ok := listing.ParseLine(raw)
		if !ok {
			return fmt.Errorf("nothing to parse: the line is blank")
		}

		out := cmd.OutOrStdout()
		switch parseOutput {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("failed to encode record: %w", err)
			}
			return enc.Close()
		case "table":
			renderRecordDetail(out, rec)
			renderWarnings(out, validation.NewValidatorWithOptions(appConfig.Checks()).Check(rec, raw, 0))
			return nil
		default:
			return fmt.Errorf("unknown output %q (want table or yaml)", parseOutput)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "table", "Output format: table or yaml")
}
