package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity is a statement-of-cash-flows category.
type Activity string

const (
	Operating Activity = "operating"
	Investing Activity = "investing"
	Financing Activity = "financing"
)

// CashAccount is the ledger account name that represents cash on hand.
// Entries on this account drive cash inflows, opening balances and the
// ledger side of a reconciliation.
const CashAccount = "Cash"

// LedgerEntry is a single debit/credit line in the accounting journal.
// Entries are append-only: once recorded they are never amended in place,
// only superseded by a correcting entry or flipped to reconciled once
// matched against a bank statement line.
type LedgerEntry struct {
	ID               int64           // store-assigned sequence number, ordering tiebreak
	Date             time.Time       // calendar date of the transaction
	Account          string          // free-text account name
	Debit            decimal.Decimal // non-negative
	Credit           decimal.Decimal // non-negative
	Party            string          // counterparty, optional
	Note             string          // free-text description, optional
	BankAccount      string          // bank account the entry clears through, empty if none
	Reference        string          // cheque number, deposit slip id, etc.
	Reconciled       bool
	CompanyID        int
	CashflowCategory Activity // explicit classification override, empty if unset
}
