// Package table holds the column/table model and renders one table
// description into a LaTeX fragment.
package table

// Column describes the rendering and conversion rules for one CSV
// field position. Order of columns within a Description is positional:
// column i consumes field i of every record.
type Column struct {
	// Label is the header text for the column.
	Label string `json:"label" yaml:"label"`
	// Numerical marks the column's values for locale parsing and
	// significant-figure rounding.
	Numerical bool `json:"numerical" yaml:"numerical"`
	// SignificantDigits is the rounding precision for numerical
	// columns. Must be at least 1.
	SignificantDigits int `json:"significant_digits" yaml:"significant_digits"`
	// Convert is reserved for value conversion rules.
	Convert bool `json:"convert" yaml:"convert"`
	// Render controls whether the column appears in output at all.
	Render bool `json:"render" yaml:"render"`
}

// DefaultColumn returns a Column with the documented defaults applied.
func DefaultColumn() Column {
	return Column{
		Numerical:         true,
		SignificantDigits: 3,
		Convert:           true,
		Render:            true,
	}
}

// Description describes one CSV source file and how to render it.
// It is built fully by the configuration loader and read-only after.
type Description struct {
	// Path is the resolved path to the source CSV (workdir joined
	// with the configured filename).
	Path string `json:"path" yaml:"path"`
	// Border draws the full grid: vertical rules around every column
	// and horizontal rules above and below the table body.
	Border bool `json:"border" yaml:"border"`
	// HeaderHline draws a rule after the header row.
	HeaderHline bool `json:"header_hline" yaml:"header_hline"`
	// RowHline draws a rule after every data row.
	RowHline bool `json:"row_hline" yaml:"row_hline"`
	// Columns are the per-position rules, one per CSV field.
	Columns []Column `json:"columns" yaml:"columns"`
}

// NewDescription returns a Description for path with default border
// options and no columns yet.
func NewDescription(path string) Description {
	return Description{
		Path:        path,
		Border:      true,
		HeaderHline: true,
		RowHline:    false,
	}
}

// ColCount returns the number of declared columns.
func (d Description) ColCount() int {
	return len(d.Columns)
}

// RenderedColCount returns the number of columns that appear in output.
func (d Description) RenderedColCount() int {
	n := 0
	for _, c := range d.Columns {
		if c.Render {
			n++
		}
	}
	return n
}
