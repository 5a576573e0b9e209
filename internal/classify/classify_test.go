package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finbooks/accounting-reports/internal/models"
)

func TestActivity_ExplicitCategoryWins(t *testing.T) {
	// Note and party scream financing, the override says operating.
	e := models.LedgerEntry{
		Note:             "Loan for capital equipment",
		Party:            "BigBank",
		CashflowCategory: models.Operating,
	}
	assert.Equal(t, models.Operating, Activity(e))
}

func TestActivity_KeywordRules(t *testing.T) {
	tests := []struct {
		name  string
		note  string
		party string
		want  models.Activity
	}{
		{"capital contribution", "Capital Contribution", "Investor", models.Financing},
		{"investor funds", "funds from investor", "", models.Financing},
		{"loan from bank party", "loan received", "BigBank", models.Financing},
		{"loan without bank party", "loan received", "Uncle Bob", models.Operating},
		{"dividend", "Dividend paid to shareholders", "", models.Financing},
		{"equipment", "purchase of equipment", "", models.Investing},
		{"property", "office property purchase", "", models.Investing},
		{"asset", "fixed asset disposal", "", models.Investing},
		{"investment", "long term investment", "", models.Investing},
		{"inventory investment guard", "inventory investment note", "", models.Operating},
		{"plain expense", "January rent", "Landlord Ltd.", models.Operating},
		{"empty note", "", "", models.Operating},
		{"case insensitive", "CAPITAL injection", "", models.Financing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.LedgerEntry{Note: tt.note, Party: tt.party}
			assert.Equal(t, tt.want, Activity(e))
		})
	}
}

func TestActivity_PriorityOrder(t *testing.T) {
	// The loan+bank rule precedes the equipment rule.
	e := models.LedgerEntry{Note: "loan for new equipment", Party: "First Bank of Testing"}
	assert.Equal(t, models.Financing, Activity(e))

	// The capital rule precedes loan+bank.
	e = models.LedgerEntry{Note: "capital loan", Party: "Bank"}
	assert.Equal(t, models.Financing, Activity(e))

	// Equipment beats the investment rule when both match.
	e = models.LedgerEntry{Note: "equipment investment"}
	assert.Equal(t, models.Investing, Activity(e))
}

func TestActivity_UnknownOverrideFallsThrough(t *testing.T) {
	e := models.LedgerEntry{Note: "dividend payout", CashflowCategory: "bogus"}
	assert.Equal(t, models.Financing, Activity(e))
}
