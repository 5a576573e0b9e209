package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/models"
)

// LedgerStore is the postgres implementation of interfaces.LedgerStore.
type LedgerStore struct {
	db *sql.DB
}

// NewLedgerStore wraps an open database handle.
func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

const entryColumns = `id, date, account, COALESCE(debit, 0), COALESCE(credit, 0),
	COALESCE(party, ''), COALESCE(note, ''), COALESCE(bankaccount, ''),
	COALESCE(reference, ''), COALESCE(reconciled, FALSE), companyid,
	COALESCE(cashflow_category, '')`

func (s *LedgerStore) SelectCashFlowCandidates(ctx context.Context, companyID int, from, to time.Time) ([]models.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + `
	FROM accounting_ledger_entry
	WHERE companyid = $1
	  AND date >= $2
	  AND date <= $3
	  AND (account = 'Cash' OR bankaccount IS NOT NULL)
	ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying cash flow candidates: %w", err)
	}
	return scanEntries(rows)
}

func (s *LedgerStore) SelectOpeningCashEntries(ctx context.Context, companyID int, before time.Time) ([]models.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + `
	FROM accounting_ledger_entry
	WHERE companyid = $1
	  AND account = 'Cash'
	  AND date < $2
	ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, companyID, before)
	if err != nil {
		return nil, fmt.Errorf("querying opening cash entries: %w", err)
	}
	return scanEntries(rows)
}

func (s *LedgerStore) SelectCashBalance(ctx context.Context, companyID int, asOf time.Time) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(debit - credit), 0)
	FROM accounting_ledger_entry
	WHERE companyid = $1
	  AND account = 'Cash'
	  AND date <= $2`

	var balance decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, companyID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("querying cash balance: %w", err)
	}
	return balance, nil
}

func (s *LedgerStore) SelectUnreconciled(ctx context.Context, companyID int, bankAccount string) ([]models.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + `
	FROM accounting_ledger_entry
	WHERE companyid = $1
	  AND bankaccount = $2
	  AND COALESCE(reconciled, FALSE) = FALSE
	ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, companyID, bankAccount)
	if err != nil {
		return nil, fmt.Errorf("querying unreconciled entries: %w", err)
	}
	return scanEntries(rows)
}

func (s *LedgerStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanEntries(rows *sql.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var (
			e        models.LedgerEntry
			category string
		)
		err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.Account,
			&e.Debit,
			&e.Credit,
			&e.Party,
			&e.Note,
			&e.BankAccount,
			&e.Reference,
			&e.Reconciled,
			&e.CompanyID,
			&category,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		e.CashflowCategory = models.Activity(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger entries: %w", err)
	}
	return entries, nil
}

var _ interfaces.LedgerStore = (*LedgerStore)(nil)
