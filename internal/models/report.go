package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation verdicts.
const (
	StatusReconciled  = "Reconciled"
	StatusDiscrepancy = "Discrepancy found"
)

// ActivityFlow holds the aggregated cash movements for one activity
// category over a reporting period.
type ActivityFlow struct {
	Inflows  decimal.Decimal
	Outflows decimal.Decimal
	NetFlow  decimal.Decimal
}

// CashFlowStatement is the derived cash-flow report for one company and
// period. It is computed fresh on every request and never persisted.
//
// Two identities hold exactly for any valid input:
//
//	NetChange = Operating.NetFlow + Investing.NetFlow + Financing.NetFlow
//	ClosingBalance = OpeningBalance + NetChange
type CashFlowStatement struct {
	CompanyID int
	From      time.Time
	To        time.Time

	Operating ActivityFlow
	Investing ActivityFlow
	Financing ActivityFlow

	OpeningBalance decimal.Decimal
	NetChange      decimal.Decimal
	ClosingBalance decimal.Decimal
}

// ReconcilingItem is one unreconciled ledger entry surfaced on a
// reconciliation report. Every field is copied from the source entry;
// Amount is signed by the direction of the adjustment it causes.
type ReconcilingItem struct {
	EntryID     int64
	Date        time.Time
	Reference   string
	Party       string
	Description string
	Amount      decimal.Decimal
}

// ReconcilingSection groups the items of one reconciling-item category.
// Total is the sum of the signed item amounts.
type ReconcilingSection struct {
	Items []ReconcilingItem
	Total decimal.Decimal
}

// AnomalySummary counts unreconciled entries that matched no reconciling
// pattern (for example an entry with both a debit and a credit). They are
// excluded from every bucket but never silently dropped.
type AnomalySummary struct {
	Count int
	Total decimal.Decimal // signed sum of debit-credit over anomalous entries
}

// ReconciliationReport is the derived bank reconciliation for one company
// and bank account, computed on demand and never persisted.
type ReconciliationReport struct {
	CompanyID   int
	BankAccount string
	AsOf        time.Time

	LedgerBalance        decimal.Decimal
	BankStatementBalance decimal.Decimal

	DepositsInTransit  ReconcilingSection // add to bank balance
	OutstandingCheques ReconcilingSection // deduct from bank balance
	UnrecordedCharges  ReconcilingSection // deduct from ledger balance
	UnrecordedCredits  ReconcilingSection // add to ledger balance
	Unclassified       AnomalySummary

	AdjustedLedgerBalance decimal.Decimal
	AdjustedBankBalance   decimal.Decimal
	Difference            decimal.Decimal // AdjustedBankBalance - AdjustedLedgerBalance
	Status                string
}
