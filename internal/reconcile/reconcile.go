package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/models"
)

// Service derives bank reconciliation reports from the ledger store.
type Service struct {
	store interfaces.LedgerStore
	log   logrus.FieldLogger
}

// NewService creates a reconciliation Service over the given store.
func NewService(store interfaces.LedgerStore) *Service {
	return &Service{store: store, log: logrus.StandardLogger()}
}

// Reconcile compares the ledger cash balance as of asOf against an
// externally supplied bank-statement balance, bucketing unreconciled
// entries into reconciling items by account and sign.
func (s *Service) Reconcile(ctx context.Context, companyID int, bankAccount string, bankStatementBalance decimal.Decimal, asOf time.Time) (models.ReconciliationReport, error) {
	var (
		ledgerBalance decimal.Decimal
		unreconciled  []models.LedgerEntry
	)

	// Balance and unreconciled-entry reads are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledgerBalance, err = s.store.SelectCashBalance(gctx, companyID, asOf)
		return err
	})
	g.Go(func() error {
		var err error
		unreconciled, err = s.store.SelectUnreconciled(gctx, companyID, bankAccount)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ReconciliationReport{}, fmt.Errorf("loading reconciliation entries: %w", err)
	}

	report := models.ReconciliationReport{
		CompanyID:            companyID,
		BankAccount:          bankAccount,
		AsOf:                 asOf,
		LedgerBalance:        ledgerBalance,
		BankStatementBalance: bankStatementBalance,
	}

	for _, e := range unreconciled {
		if e.Date.After(asOf) {
			continue
		}

		item := models.ReconcilingItem{
			EntryID:     e.ID,
			Date:        e.Date,
			Reference:   e.Reference,
			Party:       e.Party,
			Description: e.Note,
		}

		hasDebit := e.Debit.IsPositive()
		hasCredit := e.Credit.IsPositive()

		switch {
		case hasDebit == hasCredit:
			// Two-sided or zero-amount entries fit no bucket. Count them so
			// a discrepancy is never silently absorbed.
			report.Unclassified.Count++
			report.Unclassified.Total = report.Unclassified.Total.Add(e.Debit.Sub(e.Credit))
			s.log.WithFields(logrus.Fields{
				"entry_id":     e.ID,
				"company_id":   companyID,
				"bank_account": bankAccount,
			}).Warn("unreconciled entry matches no reconciling pattern")

		case e.Account == models.CashAccount && hasDebit:
			// Receipt in the ledger, not yet on the bank statement.
			item.Amount = e.Debit
			appendItem(&report.DepositsInTransit, item)

		case e.Account == models.CashAccount:
			// Payment in the ledger the bank has not presented yet.
			item.Amount = e.Credit.Neg()
			appendItem(&report.OutstandingCheques, item)

		case hasCredit:
			// Bank-originated charge the ledger has not recorded.
			item.Amount = e.Credit.Neg()
			appendItem(&report.UnrecordedCharges, item)

		default:
			// Bank-originated credit (interest etc.) missing from the ledger.
			item.Amount = e.Debit
			appendItem(&report.UnrecordedCredits, item)
		}
	}

	// Signed section totals make both adjustments plain additions.
	report.AdjustedLedgerBalance = ledgerBalance.
		Add(report.UnrecordedCharges.Total).
		Add(report.UnrecordedCredits.Total)
	report.AdjustedBankBalance = bankStatementBalance.
		Add(report.DepositsInTransit.Total).
		Add(report.OutstandingCheques.Total)
	report.Difference = report.AdjustedBankBalance.Sub(report.AdjustedLedgerBalance)

	if report.AdjustedLedgerBalance.Round(2).Equal(report.AdjustedBankBalance.Round(2)) {
		report.Status = models.StatusReconciled
	} else {
		report.Status = models.StatusDiscrepancy
	}

	return report, nil
}

func appendItem(section *models.ReconcilingSection, item models.ReconcilingItem) {
	section.Items = append(section.Items, item)
	section.Total = section.Total.Add(item.Amount)
}
