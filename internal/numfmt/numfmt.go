// Package numfmt handles locale-aware decimal parsing and
// significant-figure rounding for table cells.
package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Format describes how decimal numbers are written in the source data.
// It is passed explicitly into parsing; no process-wide locale state
// is mutated.
type Format struct {
	// Decimal is the decimal separator, e.g. ',' for German data.
	Decimal rune
	// Grouping is the thousands separator, e.g. '.' for German data.
	// Zero means no grouping separator is recognized.
	Grouping rune
}

type localeFormat struct {
	tag    language.Tag
	format Format
}

// Separator conventions per base language. Regional variants
// ("de_DE.UTF-8", "de-AT") resolve to their base entry through the
// matcher.
var localeFormats = []localeFormat{
	{language.German, Format{Decimal: ',', Grouping: '.'}},
	{language.French, Format{Decimal: ',', Grouping: ' '}},
	{language.Italian, Format{Decimal: ',', Grouping: '.'}},
	{language.Spanish, Format{Decimal: ',', Grouping: '.'}},
	{language.Portuguese, Format{Decimal: ',', Grouping: '.'}},
	{language.Dutch, Format{Decimal: ',', Grouping: '.'}},
	{language.Russian, Format{Decimal: ',', Grouping: ' '}},
	{language.Polish, Format{Decimal: ',', Grouping: ' '}},
	{language.Turkish, Format{Decimal: ',', Grouping: '.'}},
	{language.English, Format{Decimal: '.', Grouping: ','}},
	{language.Japanese, Format{Decimal: '.', Grouping: ','}},
	{language.Korean, Format{Decimal: '.', Grouping: ','}},
	{language.Chinese, Format{Decimal: '.', Grouping: ','}},
}

var matcher language.Matcher

func init() {
	tags := make([]language.Tag, len(localeFormats))
	for i, lf := range localeFormats {
		tags[i] = lf.tag
	}
	matcher = language.NewMatcher(tags)
}

// ForLocale resolves a locale identifier like "de_DE.UTF-8", "en-US" or
// "fr" to its decimal format. The ".UTF-8" style codeset suffix used by
// POSIX locale names is tolerated.
func ForLocale(locale string) (Format, error) {
	name := strings.TrimSpace(locale)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" {
		return Format{}, fmt.Errorf("empty locale")
	}

	tag, err := language.Parse(name)
	if err != nil {
		return Format{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return Format{}, fmt.Errorf("unsupported locale %q", locale)
	}
	return localeFormats[i].format, nil
}

// Parse converts a locale-formatted decimal string to a float64.
// Grouping separators are stripped and the decimal separator is
// normalized to '.'. Interior spaces are only accepted when space is
// the grouping separator (no-break space counts as space there).
func Parse(s string, f Format) (float64, error) {
	cleaned := make([]rune, 0, len(s))
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == f.Grouping, f.Grouping == ' ' && r == '\u00a0':
			continue
		case r == f.Decimal:
			cleaned = append(cleaned, '.')
		default:
			cleaned = append(cleaned, r)
		}
	}
	v, err := strconv.ParseFloat(string(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number under the active locale: %q", s)
	}
	return v, nil
}

// RoundSig rounds x to sig significant figures. Zero rounds to exactly
// zero for any digit count. Ties round half away from zero (math.Round).
func RoundSig(x float64, sig int) float64 {
	if x == 0 {
		return 0
	}
	decimals := sig - 1 - int(math.Floor(math.Log10(math.Abs(x))))
	if decimals < 0 {
		// Scale by division so magnitudes like 1200 stay exact.
		p := math.Pow(10, float64(-decimals))
		return math.Round(x/p) * p
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// FormatValue renders a rounded value for table output. Exact zero is
// written as "0.0"; everything else uses the shortest decimal form
// (1200.0 prints as "1200", 0.025 as "0.025").
func FormatValue(x float64) string {
	if x == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
