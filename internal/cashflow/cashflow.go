package cashflow

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finbooks/accounting-reports/internal/classify"
	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/models"
)

// Service derives cash-flow statements from the ledger store. It holds no
// mutable state; every statement is a fresh read-only computation.
type Service struct {
	store interfaces.LedgerStore
}

// NewService creates a cash-flow Service over the given store.
func NewService(store interfaces.LedgerStore) *Service {
	return &Service{store: store}
}

// Statement computes the categorized cash-flow statement for a company over
// the inclusive date range [from, to]. The caller must ensure from <= to.
func (s *Service) Statement(ctx context.Context, companyID int, from, to time.Time) (models.CashFlowStatement, error) {
	var (
		candidates []models.LedgerEntry
		opening    []models.LedgerEntry
	)

	// The candidate and opening-balance reads are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.store.SelectCashFlowCandidates(gctx, companyID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		opening, err = s.store.SelectOpeningCashEntries(gctx, companyID, from)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.CashFlowStatement{}, fmt.Errorf("loading cash flow entries: %w", err)
	}

	stmt := models.CashFlowStatement{
		CompanyID: companyID,
		From:      from,
		To:        to,
	}

	flows := map[models.Activity]*models.ActivityFlow{
		models.Operating: &stmt.Operating,
		models.Investing: &stmt.Investing,
		models.Financing: &stmt.Financing,
	}

	for _, e := range candidates {
		inflow, outflow := entryFlows(e)
		flow := flows[classify.Activity(e)]
		flow.Inflows = flow.Inflows.Add(inflow)
		flow.Outflows = flow.Outflows.Add(outflow)
	}
	for _, flow := range flows {
		flow.NetFlow = flow.Inflows.Sub(flow.Outflows)
	}

	for _, e := range opening {
		stmt.OpeningBalance = stmt.OpeningBalance.Add(e.Debit.Sub(e.Credit))
	}

	stmt.NetChange = stmt.Operating.NetFlow.Add(stmt.Investing.NetFlow).Add(stmt.Financing.NetFlow)
	stmt.ClosingBalance = stmt.OpeningBalance.Add(stmt.NetChange)

	return stmt, nil
}

// entryFlows extracts the cash movement a single entry contributes.
//
// Inflows are recognized only on the Cash account itself. Outflows are
// recognized on the Cash account and on any other account that clears
// through a bank account, so a single payment is never counted from both
// of its ledger legs.
func entryFlows(e models.LedgerEntry) (inflow, outflow decimal.Decimal) {
	if e.Account == models.CashAccount && e.Debit.IsPositive() {
		inflow = e.Debit
	}
	switch {
	case e.Account == models.CashAccount && e.Credit.IsPositive():
		outflow = e.Credit
	case e.Account != models.CashAccount && e.BankAccount != "" && e.Credit.IsPositive():
		outflow = e.Credit
	}
	return inflow, outflow
}
