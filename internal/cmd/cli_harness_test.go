package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// runCLI executes the root command with fresh flag state and captured
// output streams.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(t)

	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	rootCmd.SetContext(context.Background())

	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func resetFlags(t *testing.T) {
	t.Helper()
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	})
	outputType = ""
}

// writeFixture creates a workdir with one CSV and a matching
// conversion description, returning the description path and workdir.
func writeFixture(t *testing.T) (descPath, dir string) {
	t.Helper()
	dir = t.TempDir()

	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte("1234.5;hello\n0;world\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	desc := strings.Join([]string{
		"workdir: " + dir,
		"tables:",
		"  - data.csv:",
		"      columns:",
		"        - label: A",
		"          significant_digits: 2",
		"        - label: B",
		"          numerical: false",
		"",
	}, "\n")
	descPath = filepath.Join(dir, "tables.yaml")
	if err := os.WriteFile(descPath, []byte(desc), 0o644); err != nil {
		t.Fatal(err)
	}
	return descPath, dir
}
