package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/csvtex/internal/config"
	"github.com/salmonumbrella/csvtex/internal/table"
)

// DescribeOutput represents the structured output of describe.
type DescribeOutput struct {
	Source string              `json:"source" yaml:"source"`
	Count  int                 `json:"count" yaml:"count"`
	Tables []table.Description `json:"tables" yaml:"tables"`
}

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Show the parsed table descriptions",
	Long: `Parse a conversion description and print the resolved table models
without touching any CSV file.

Useful for checking resolved paths, column defaults and border options
before rendering.

Examples:
  # Human-readable listing
  csvtex describe tables.yaml

  # Resolved paths only
  csvtex describe tables.yaml --output json --query '.tables[].path'`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	descs, err := config.Load(args[0])
	if err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(cmd.Context(), DescribeOutput{
			Source: args[0],
			Count:  len(descs),
			Tables: descs,
		})
	}

	out := stdoutFromContext(cmd.Context())
	for _, d := range descs {
		fmt.Fprintf(out, "%s (%d columns, %d rendered)\n", d.Path, d.ColCount(), d.RenderedColCount())
		for i, c := range d.Columns {
			fmt.Fprintf(out, "  [%d] label=%q numerical=%v significant_digits=%d render=%v\n",
				i, c.Label, c.Numerical, c.SignificantDigits, c.Render)
		}
	}
	return nil
}
