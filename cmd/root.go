// =============================================================================
// Listing Toolkit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (lush)
//   ├── parseCmd    (lush parse)
//   ├── exportCmd   (lush export)
//   ├── processCmd  (lush process)
//   ├── renameCmd   (lush rename)
//   ├── archiveCmd  (lush archive)
//   ├── sessionCmd  (lush session)
//   └── versionCmd  (lush version)
//
// Before any subcommand runs, the root command loads the configuration and
// builds the logger. Subcommands read both from the package state below.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lush-listing-kit/internal/config"
	"github.com/ginjaninja78/lush-listing-kit/internal/logger"
	"github.com/ginjaninja78/lush-listing-kit/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file (--config).
var cfgFile string

// verbose switches the logger to debug level (--verbose).
var verbose bool

// appConfig and appLog are set by the root command before a subcommand runs.
var (
	appConfig *config.Config
	appLog    logger.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "lush",
	Short: "Listing toolkit - turn pasted product lines into marketplace upload files",
	Long: `lush prepares bulk listings for an auction marketplace.

It parses free-form product lines such as

  Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123

into a fixed 21-column upload sheet, and renames product photos into
SKU-numbered zip archives.

Example Usage:
  lush parse "Gucci Bag (LG25) 350 https://drive.google.com/open?id=ABC123"
  lush export --input pastes/monday.txt --format xlsx
  lush process                         # every *.txt in the input directory
  lush rename --sku LG-25 photos/lg25/
  lush session                         # interactive workbench`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// APPLICATION STATE
// =============================================================================

// initApp loads the configuration and builds the logger.
func initApp() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := logger.Config{Level: cfg.LogLevel}
	if verbose {
		logCfg.Level = "debug"
	}
	if cfg.LogFile != "" {
		logCfg.OutputPaths = []string{"stderr", cfg.LogFile}
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = cfg
	appLog = log
	appLog.Debug("Configuration loaded",
		logger.String("config", cfgFile),
		logger.String("output_dir", cfg.OutputDir),
		logger.String("export_format", cfg.ExportFormat),
	)
	return nil
}

// newFileManager builds the file manager from the loaded configuration.
func newFileManager() *utils.FileManager {
	return utils.NewFileManager(appConfig.InputDir, appConfig.OutputDir, appConfig.InputArchiveDir, appLog)
}
