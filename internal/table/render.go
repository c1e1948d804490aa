package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/salmonumbrella/csvtex/internal/numfmt"
)

// CSVOptions carries the global CSV parsing parameters shared by every
// table in a run.
type CSVOptions struct {
	// Encoding is an IANA charset name. Empty or "utf-8" reads the
	// file as-is.
	Encoding string
	// Delimiter is the field separator. Zero means ';'.
	Delimiter rune
	// Quote is the quote character. Zero means '"'.
	Quote rune
	// SkipHeader discards the first CSV record before rendering.
	SkipHeader bool
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ';'
	}
	return o.Delimiter
}

func (o CSVOptions) quote() rune {
	if o.Quote == 0 {
		return '"'
	}
	return o.Quote
}

// Render reads the CSV behind desc and produces a complete LaTeX table
// fragment. Any structural or conversion failure aborts the table with
// no partial output.
func Render(desc Description, opts CSVOptions, nf numfmt.Format) (string, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return "", fmt.Errorf("opening table source: %w", err)
	}
	defer f.Close()

	r, err := decodeReader(f, opts)
	if err != nil {
		return "", err
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if opts.SkipHeader {
		if _, err := cr.Read(); err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading header of %s: %w", desc.Path, err)
		}
	}

	quote := opts.quote()

	var rows []string
	for rowIdx := 0; ; rowIdx++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", desc.Path, err)
		}

		// Undo the pre-parse quote swap inside field data so literal
		// characters come out unchanged.
		if quote != '"' {
			for i, field := range record {
				record[i] = strings.Map(quoteSwap(quote), field)
			}
		}

		cells, err := renderRow(desc, record, rowIdx, nf)
		if err != nil {
			return "", err
		}
		rows = append(rows, cells)
	}

	return assemble(desc, rows), nil
}

// renderRow converts one CSV record into its rendered cell row.
// Every declared column consumes one field positionally, whether or
// not it renders.
func renderRow(desc Description, record []string, rowIdx int, nf numfmt.Format) (string, error) {
	cells := make([]string, 0, desc.RenderedColCount())
	for colIdx, col := range desc.Columns {
		if colIdx >= len(record) {
			return "", StructuralError{Path: desc.Path, Row: rowIdx, Column: colIdx}
		}
		if !col.Render {
			continue
		}

		value := record[colIdx]
		if col.Numerical {
			parsed := 0.0
			if value != "" {
				v, err := numfmt.Parse(value, nf)
				if err != nil {
					return "", ConversionError{Path: desc.Path, Row: rowIdx, Value: value, Err: err}
				}
				parsed = v
			}
			value = numfmt.FormatValue(numfmt.RoundSig(parsed, col.SignificantDigits))
		}
		cells = append(cells, value)
	}
	return strings.Join(cells, " & ") + ` \\`, nil
}

// assemble fills the fragment template with the alignment spec, header
// block and data rows.
func assemble(desc Description, rows []string) string {
	rendered := desc.RenderedColCount()

	var align string
	if desc.Border {
		align = strings.Repeat("|l", rendered) + "|"
	} else {
		align = strings.Repeat("l", rendered)
	}

	labels := make([]string, 0, rendered)
	for _, c := range desc.Columns {
		if c.Render {
			labels = append(labels, c.Label)
		}
	}

	var body strings.Builder
	line := func(s string) {
		body.WriteString("        ")
		body.WriteString(s)
		body.WriteString("\n")
	}

	if desc.Border {
		line(`\hline`)
	}
	line(strings.Join(labels, " & ") + ` \\`)
	if desc.HeaderHline {
		line(`\hline`)
	}
	for _, row := range rows {
		line(row)
		if desc.RowHline {
			line(`\hline`)
		}
	}
	// RowHline already draws a rule under the last data row.
	if desc.Border && !(desc.RowHline && len(rows) > 0) {
		line(`\hline`)
	}

	base := filepath.Base(desc.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	caption := strings.ReplaceAll(stem, "_", " ")

	return fmt.Sprintf(`\begin{table}[H]
    \centering
    \begin{tabular}{%s}
%s    \end{tabular}
    \caption{%s}
    \label{table:%s}
\end{table}
`, align, body.String(), caption, base)
}

// decodeReader applies the configured charset decoding and, when a
// non-default quote character is configured, swaps it with '"' so that
// encoding/csv (which only understands '"') parses the quoting.
func decodeReader(r io.Reader, opts CSVOptions) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Encoding))
	switch name {
	case "", "utf-8", "utf8":
		// as-is
	default:
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unsupported encoding %q", opts.Encoding)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	if q := opts.quote(); q != '"' {
		r = transform.NewReader(r, runes.Map(quoteSwap(q)))
	}

	return r, nil
}

// quoteSwap exchanges the custom quote rune with '"'. The mapping is
// its own inverse: applied to the raw stream it lets encoding/csv see
// the custom quoting, applied again to each parsed field it restores
// the original characters.
func quoteSwap(q rune) func(rune) rune {
	return func(c rune) rune {
		switch c {
		case q:
			return '"'
		case '"':
			return q
		}
		return c
	}
}
