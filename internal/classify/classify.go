package classify

import (
	"strings"

	"github.com/finbooks/accounting-reports/internal/models"
)

// Activity assigns a ledger entry to a cash-flow activity category.
//
// An explicit CashflowCategory on the entry is authoritative and skips
// the heuristics entirely. Otherwise the note is matched case-insensitively
// against keyword rules in fixed priority order; the loan rule also
// inspects the counterparty. Entries matching no rule are operating, so
// every entry classifies.
func Activity(e models.LedgerEntry) models.Activity {
	switch e.CashflowCategory {
	case models.Operating, models.Investing, models.Financing:
		return e.CashflowCategory
	}

	note := strings.ToLower(e.Note)
	party := strings.ToLower(e.Party)

	switch {
	case strings.Contains(note, "capital") || strings.Contains(note, "investor"):
		return models.Financing
	case strings.Contains(note, "loan") && strings.Contains(party, "bank"):
		return models.Financing
	case strings.Contains(note, "dividend"):
		return models.Financing
	case strings.Contains(note, "equipment"), strings.Contains(note, "property"), strings.Contains(note, "asset"):
		return models.Investing
	// "investment" alone is ambiguous: "inventory investment" is working
	// capital, not an investing activity, so the inventory guard wins.
	case strings.Contains(note, "investment") && !strings.Contains(note, "inventory"):
		return models.Investing
	default:
		return models.Operating
	}
}
