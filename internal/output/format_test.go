package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsStructured(t *testing.T) {
	if IsStructured(FormatText) {
		t.Errorf("text should not be structured")
	}
	if !IsStructured(FormatJSON) || !IsStructured(FormatYAML) {
		t.Errorf("json and yaml should be structured")
	}
}

func TestPrinterJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)
	data := map[string]interface{}{"count": 2, "source": "tables.yaml"}

	if err := p.Print(context.Background(), data); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"count": 2`) || !strings.Contains(out, `"source": "tables.yaml"`) {
		t.Fatalf("unexpected JSON output: %s", out)
	}
}

func TestPrinterJSONWithQuery(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)
	ctx := WithQuery(context.Background(), ".count")

	if err := p.Print(ctx, map[string]interface{}{"count": 2}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "2" {
		t.Fatalf("query output = %q, want 2", got)
	}
}

func TestPrinterJSONWithBadQuery(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, FormatJSON)
	ctx := WithQuery(context.Background(), ".[invalid")

	if err := p.Print(ctx, map[string]interface{}{}); err == nil {
		t.Fatalf("expected error for invalid query")
	}
}

func TestPrinterYAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML)

	if err := p.Print(context.Background(), map[string]string{"source": "tables.yaml"}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "source: tables.yaml") {
		t.Fatalf("unexpected YAML output: %s", buf.String())
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if FormatFromContext(ctx) != FormatText {
		t.Errorf("default format should be text")
	}
	if QueryFromContext(ctx) != "" {
		t.Errorf("default query should be empty")
	}
	if QuietFromContext(ctx) {
		t.Errorf("default quiet should be false")
	}

	ctx = WithFormat(ctx, FormatJSON)
	ctx = WithQuery(ctx, ".x")
	ctx = WithQuiet(ctx, true)
	if FormatFromContext(ctx) != FormatJSON || QueryFromContext(ctx) != ".x" || !QuietFromContext(ctx) {
		t.Errorf("context values not round-tripped")
	}
}
