package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/csvtex/internal/output"
	"github.com/salmonumbrella/csvtex/internal/table"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Global flags
var (
	encodingFlag  string
	delimiterFlag string
	quoteFlag     string
	skipHeader    bool
	localeFlag    string
	outputFmt     string
	outputType    output.Format
	queryExpr     string
	errorFmt      string
	quietFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "csvtex <file> [outpath]",
	Short: "Generate LaTeX tables from CSV files",
	Long: `csvtex converts CSV files into LaTeX table fragments.

A YAML conversion description lists the files to process and how to
render each column (header label, numeric rounding, inclusion).
Numeric fields are parsed under the configured locale and rounded to
a fixed number of significant figures.

With only <file> given, every table fragment is printed to stdout in
description order. With <outpath> given, one .tex file per table is
written into that directory.

Examples:
  # Print all tables to stdout
  csvtex tables.yaml

  # Write one .tex file per table into out/
  csvtex tables.yaml out/

  # Comma-delimited data with US number formatting
  csvtex tables.yaml --delimiter , --locale en_US`,
	Args:    cobra.RangeArgs(1, 2),
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true

		format, err := output.ParseFormat(outputFmt)
		if err != nil {
			return err
		}
		outputType = format

		// Default quiet mode when output is not going to a terminal.
		if !flagChanged(cmd, "quiet") && !isTerminal(cmd.OutOrStdout()) {
			quietFlag = true
		}

		ctx := cmd.Context()
		ctx = withIO(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx = output.WithFormat(ctx, outputType)
		ctx = output.WithQuery(ctx, queryExpr)
		ctx = output.WithQuiet(ctx, quietFlag)
		ctx = WithErrorFormat(ctx, errorFmt)
		cmd.SetContext(ctx)

		if err := validateErrorFormat(errorFmt); err != nil {
			return err
		}
		if effectiveErrorFormat(ctx) != "text" {
			cmd.SilenceUsage = true
		}
		return nil
	},
	RunE: runRender,
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printCommandError(rootCmd.Context(), err)
		return err
	}
	return nil
}

// csvOptionsFromFlags validates the CSV flags and builds the parsing
// options shared by every table in the run.
func csvOptionsFromFlags() (table.CSVOptions, error) {
	delim, err := singleRune("delimiter", delimiterFlag)
	if err != nil {
		return table.CSVOptions{}, err
	}
	quote, err := singleRune("quote-char", quoteFlag)
	if err != nil {
		return table.CSVOptions{}, err
	}
	return table.CSVOptions{
		Encoding:   encodingFlag,
		Delimiter:  delim,
		Quote:      quote,
		SkipHeader: skipHeader,
	}, nil
}

func singleRune(flag, value string) (rune, error) {
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("--%s must be exactly one character, got %q", flag, value)
	}
	return runes[0], nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("csvtex version %s (commit: %s, built: %s)\n", version, commit, date))

	// Global flags
	rootCmd.PersistentFlags().StringVar(&encodingFlag, "encoding", "utf-8", "CSV character encoding (IANA charset name)")
	rootCmd.PersistentFlags().StringVar(&delimiterFlag, "delimiter", ";", "CSV field delimiter")
	rootCmd.PersistentFlags().StringVar(&quoteFlag, "quote-char", `"`, "CSV quote character")
	rootCmd.PersistentFlags().BoolVar(&skipHeader, "skip-header", false, "Skip the first record of every CSV file")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "de_DE.UTF-8", "Locale for parsing numeric values")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format for describe (text|json|yaml)")
	rootCmd.PersistentFlags().StringVar(&queryExpr, "query", "", "jq expression to filter JSON output")
	rootCmd.PersistentFlags().StringVar(&errorFmt, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress progress output")

	rootCmd.AddCommand(describeCmd)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
