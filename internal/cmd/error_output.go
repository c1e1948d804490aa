package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/csvtex/internal/output"
	"github.com/salmonumbrella/csvtex/internal/table"
)

type errorFormatKey struct{}

// WithErrorFormat attaches the --error-format value to the context.
func WithErrorFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, errorFormatKey{}, format)
}

// ErrorFormatFromContext retrieves the --error-format value.
func ErrorFormatFromContext(ctx context.Context) string {
	if ctx != nil {
		if v, ok := ctx.Value(errorFormatKey{}).(string); ok {
			return v
		}
	}
	return ""
}

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid --error-format %q (expected auto|text|json|yaml)", format)
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), err)
}

func buildErrorEnvelope(err error) map[string]interface{} {
	payload := map[string]interface{}{
		"error": map[string]interface{}{
			"message": err.Error(),
		},
	}

	errMap := payload["error"].(map[string]interface{})
	errMap["category"] = "system"
	errMap["type"] = "error"

	var configErr table.ConfigError
	if errors.As(err, &configErr) {
		errMap["type"] = "config"
		errMap["category"] = "user"
	}

	var structErr table.StructuralError
	if errors.As(err, &structErr) {
		errMap["type"] = "structural"
		errMap["category"] = "user"
		errMap["path"] = structErr.Path
		errMap["row"] = structErr.Row
		errMap["column"] = structErr.Column
	}

	var convErr table.ConversionError
	if errors.As(err, &convErr) {
		errMap["type"] = "conversion"
		errMap["category"] = "user"
		errMap["path"] = convErr.Path
		errMap["row"] = convErr.Row
		errMap["value"] = convErr.Value
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		errMap["type"] = "io"
		errMap["path"] = pathErr.Path
	}

	return payload
}
