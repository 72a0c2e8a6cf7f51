package ingest

import (
	"strings"
	"time"
)

// monthNames is the fixed recognition vocabulary, in calendar order. The
// scan is first-match-wins over this order, so text naming several months
// ("enero y febrero") always resolves to the earliest one. That ambiguity
// is long-standing ledger-label behaviour and is kept as is.
var monthNames = [12]string{
	"enero",
	"febrero",
	"marzo",
	"abril",
	"mayo",
	"junio",
	"julio",
	"agosto",
	"septiembre",
	"octubre",
	"noviembre",
	"diciembre",
}

// ResolveMonth maps a sheet label, falling back to a preview of the sheet's
// leading rows, to a calendar month. Returns false when neither mentions a
// Spanish month name.
func ResolveMonth(label, preview string) (time.Month, bool) {
	if month, ok := scanMonths(label); ok {
		return month, true
	}
	return scanMonths(preview)
}

func scanMonths(text string) (time.Month, bool) {
	folded := strings.ToLower(strings.TrimSpace(text))
	if folded == "" {
		return 0, false
	}
	for i, name := range monthNames {
		if strings.Contains(folded, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
