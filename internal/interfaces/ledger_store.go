package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/accounting-reports/internal/models"
)

// LedgerStore is the read-only view of the ledger the reporting engines
// consume. Implementations scope every query to a single company and
// never mutate entries.
type LedgerStore interface {
	// SelectCashFlowCandidates returns entries that participate in cash-flow
	// aggregation: dated within [from, to] inclusive and either on the Cash
	// account or clearing through a bank account.
	SelectCashFlowCandidates(ctx context.Context, companyID int, from, to time.Time) ([]models.LedgerEntry, error)

	// SelectOpeningCashEntries returns Cash-account entries dated strictly
	// before the given date.
	SelectOpeningCashEntries(ctx context.Context, companyID int, before time.Time) ([]models.LedgerEntry, error)

	// SelectCashBalance returns the sum of debit-credit over Cash-account
	// entries dated on or before asOf.
	SelectCashBalance(ctx context.Context, companyID int, asOf time.Time) (decimal.Decimal, error)

	// SelectUnreconciled returns unreconciled entries for a bank account,
	// ordered by (date, id) ascending.
	SelectUnreconciled(ctx context.Context, companyID int, bankAccount string) ([]models.LedgerEntry, error)

	// Ping reports store connectivity, for health checks.
	Ping(ctx context.Context) error
}
