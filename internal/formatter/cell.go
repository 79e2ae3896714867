// Package formatter renders raw field values into display cells according
// to a column's format descriptor: number precision, currency symbols,
// date normalization, and text transforms. Formatting is display-only and
// never feeds back into comparison or filtering.
package formatter

import (
	"strings"
	"time"
	"unicode"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// displayDateLayout is the normalized layout date cells render to.
const displayDateLayout = "2006-01-02"

// parseDateLayouts mirrors the comparator's accepted inputs.
var parseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02 Jan 2006",
}

// Cell formats one raw value under the column format. Malformed values
// render as-is after the text transform; formatting never errors.
func Cell(value string, f grid.Format) string {
	var out string
	switch f.Kind {
	case grid.FormatNumber:
		out = formatNumber(value, f.Precision, "")
	case grid.FormatCurrency:
		out = formatNumber(value, f.Precision, f.CurrencySymbol)
	case grid.FormatDate:
		out = formatDate(value)
	default:
		out = value
	}
	return applyTransform(out, f.Transform)
}

// formatNumber parses a numeric cell, tolerating currency symbols and
// thousands separators, and renders it at fixed precision. A zero precision
// means "as parsed", not "zero decimals". decimal avoids float artifacts
// like 0.1+0.2 when re-rendering parsed values.
func formatNumber(value string, precision int, symbol string) string {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return value
	}
	render := func(d decimal.Decimal) string {
		if precision == 0 {
			return d.String()
		}
		return d.StringFixed(int32(precision))
	}
	if symbol != "" {
		if d.IsNegative() {
			return "-" + symbol + render(d.Neg())
		}
		return symbol + render(d)
	}
	return render(d)
}

// formatDate normalizes parseable dates to ISO form and leaves everything
// else untouched.
func formatDate(value string) string {
	s := strings.TrimSpace(value)
	for _, layout := range parseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return value
}

func applyTransform(s string, tr grid.Transform) string {
	switch tr {
	case grid.TransformUppercase:
		return strings.ToUpper(s)
	case grid.TransformLowercase:
		return strings.ToLower(s)
	case grid.TransformCapitalize:
		return capitalizeWords(s)
	default:
		return s
	}
}

// capitalizeWords upcases the first rune of each space-separated word,
// leaving the rest of the word as-is.
func capitalizeWords(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens a cell to the given display width, appending an
// ellipsis when anything was cut. Widths account for wide runes.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad fits a cell into exactly the given display width, truncating when
// too long and space-padding when too short. Numeric kinds align right.
func Pad(s string, width int, alignRight bool) string {
	s = Truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if alignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// AlignRight reports whether cells of this format kind should right-align.
func AlignRight(kind grid.FormatKind) bool {
	return kind == grid.FormatNumber || kind == grid.FormatCurrency
}
