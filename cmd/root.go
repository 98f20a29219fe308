// =============================================================================
// SC Allocation List - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (allocproc)
//   ├── mappingsCmd (allocproc mappings)
//   ├── previewCmd  (allocproc preview FILE)
//   ├── validateCmd (allocproc validate FILE)
//   ├── processCmd  (allocproc process [FILE...])
//   └── versionCmd  (allocproc version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file (or defaults when it is absent)
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sc-allocation-list/internal/config"
	"github.com/ginjaninja78/sc-allocation-list/internal/converter"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "allocproc",
	Short: "SC Allocation List processor - map, validate and export allocation spreadsheets",
	Long: `allocproc reads SC allocation list spreadsheets, maps their columns onto the
SC_ALLOC_LIST schema, checks the business rules and exports the result.

Expected upload layout (xlsx, xlsm or csv):
  Row 1   title
  Row 2   effective date
  Row 3   column headers
  Row 4+  one account per row

Example Usage:
  allocproc mappings                      # Show the column mapping table
  allocproc preview allocations.xlsx      # Show the first transformed rows
  allocproc validate allocations.xlsx     # Check every row against the rules
  allocproc process allocations.xlsx      # Write CSV and XLSX exports
  allocproc process                       # Process every upload in input_dir`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
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
// SHARED SETUP
// =============================================================================

// app bundles what every data command needs.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	processor *converter.Processor
}

// setup loads the configuration, builds the logger and the processor, and
// stores the logger in the command context.
//
// A missing config file is only tolerated when --config was not given.
func setup(cmd *cobra.Command) (*app, error) {
	allowMissing := true
	if f := cmd.Flag("config"); f != nil && f.Changed {
		allowMissing = false
	}

	cfg, err := config.LoadOrDefault(cfgFile, allowMissing)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)

	mappings, err := cfg.ColumnMappings()
	if err != nil {
		return nil, err
	}

	if missing := domain.UncoveredTargets(mappings); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = string(m)
		}
		logger.Warn().Strs("targets", names).Msg("mapping table leaves target columns unset")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, logger))

	return &app{
		cfg:       cfg,
		logger:    logger,
		processor: converter.New(mappings, logger),
	}, nil
}
