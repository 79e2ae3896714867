package grid

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing date cells. First match wins.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02 Jan 2006",
}

// Compare orders two raw field values under the given format kind. It
// returns a negative, zero, or positive result and induces a strict weak
// ordering for every kind, which the sort stage relies on for stability.
//
// Malformed values never fail: numeric kinds fall back to a lexical compare
// of the original strings, and unparseable dates collapse to the epoch so
// they sort first.
func Compare(a, b string, kind FormatKind) int {
	switch kind {
	case FormatNumber, FormatCurrency:
		return compareNumeric(a, b)
	case FormatDate:
		return compareDate(a, b)
	default:
		return strings.Compare(a, b)
	}
}

func compareNumeric(a, b string) int {
	fa, oka := parseNumeric(a)
	fb, okb := parseNumeric(b)
	if !oka || !okb {
		return strings.Compare(a, b)
	}
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// parseNumeric strips everything except digits, '.', and '-' (currency
// symbols, thousands separators) before parsing.
func parseNumeric(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func compareDate(a, b string) int {
	ta := parseDate(a)
	tb := parseDate(b)
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// parseDate resolves a cell to a calendar time. Unparseable values are
// treated as the Unix epoch.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}
