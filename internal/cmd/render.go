package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/csvtex/internal/config"
	"github.com/salmonumbrella/csvtex/internal/numfmt"
	"github.com/salmonumbrella/csvtex/internal/output"
	"github.com/salmonumbrella/csvtex/internal/table"
)

// runRender drives the full pipeline: load the conversion description,
// render every table in order, write fragments to stdout or into the
// output directory. Any failure aborts the whole run.
func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	descPath := args[0]
	outDir := ""
	if len(args) == 2 {
		outDir = args[1]
	}

	opts, err := csvOptionsFromFlags()
	if err != nil {
		return err
	}
	nf, err := numfmt.ForLocale(localeFlag)
	if err != nil {
		return err
	}

	descs, err := config.Load(descPath)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, desc := range descs {
		progressf(ctx, "parsing table %s", desc.Path)
		fragment, err := table.Render(desc, opts, nf)
		if err != nil {
			return err
		}

		if outDir == "" {
			fmt.Fprint(stdoutFromContext(ctx), fragment)
			continue
		}

		outFile := outputFilePath(outDir, desc.Path)
		progressf(ctx, "writing %s", outFile)
		if err := os.WriteFile(outFile, []byte(fragment), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outFile, err)
		}
	}
	return nil
}

// outputFilePath places the table's .tex file inside outDir, keyed by
// the CSV's base name only. Directory components of the source path
// are discarded so output never escapes outDir.
func outputFilePath(outDir, csvPath string) string {
	base := filepath.Base(csvPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".tex")
}

func progressf(ctx context.Context, format string, args ...interface{}) {
	if output.QuietFromContext(ctx) {
		return
	}
	fmt.Fprintf(stderrFromContext(ctx), format+"\n", args...)
}
