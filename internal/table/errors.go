package table

import "fmt"

type (
	// ConfigError indicates a malformed conversion description.
	ConfigError struct{ Message string }

	// StructuralError indicates a CSV record with fewer fields than
	// the table declares columns.
	StructuralError struct {
		Path   string
		Row    int
		Column int
	}

	// ConversionError indicates a field declared numerical that could
	// not be parsed under the active locale.
	ConversionError struct {
		Path  string
		Row   int
		Value string
		Err   error
	}
)

func (e ConfigError) Error() string { return e.Message }

func (e StructuralError) Error() string {
	return fmt.Sprintf("column %d doesn't exist on row %d in file %s", e.Column, e.Row, e.Path)
}

func (e ConversionError) Error() string {
	return fmt.Sprintf("offending value %q on row %d in file %s: %v", e.Value, e.Row, e.Path, e.Err)
}

func (e ConversionError) Unwrap() error { return e.Err }
