package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDescribeText(t *testing.T) {
	descPath, _ := writeFixture(t)

	stdout, _, err := runCLI(t, "describe", descPath)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "data.csv") {
		t.Errorf("stdout should name the table:\n%s", stdout)
	}
	if !strings.Contains(stdout, `label="A"`) || !strings.Contains(stdout, "significant_digits=2") {
		t.Errorf("stdout should list column options:\n%s", stdout)
	}
}

func TestDescribeJSON(t *testing.T) {
	descPath, _ := writeFixture(t)

	stdout, _, err := runCLI(t, "describe", descPath, "--output", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var parsed DescribeOutput
	if err := json.Unmarshal([]byte(stdout), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if parsed.Count != 1 || len(parsed.Tables) != 1 {
		t.Fatalf("unexpected output: %+v", parsed)
	}
	if parsed.Tables[0].Columns[0].Label != "A" {
		t.Fatalf("unexpected first column: %+v", parsed.Tables[0].Columns[0])
	}
}

func TestDescribeJSONWithQuery(t *testing.T) {
	descPath, _ := writeFixture(t)

	stdout, _, err := runCLI(t, "describe", descPath, "--output", "json", "--query", ".count")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "1" {
		t.Fatalf("query output = %q, want 1", got)
	}
}

func TestDescribeBadDescription(t *testing.T) {
	_, _, err := runCLI(t, "describe", "does-not-exist.yaml")
	if err == nil {
		t.Fatalf("expected error for missing description")
	}
}

func TestDescribeRejectsBadOutputFormat(t *testing.T) {
	descPath, _ := writeFixture(t)

	_, _, err := runCLI(t, "describe", descPath, "--output", "xml")
	if err == nil {
		t.Fatalf("expected error for invalid output format")
	}
}
