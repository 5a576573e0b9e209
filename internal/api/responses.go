package api

import (
	"github.com/shopspring/decimal"

	"github.com/finbooks/accounting-reports/internal/models"
)

const dateLayout = "2006-01-02"

type periodRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type activityTotals struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	NetFlow  decimal.Decimal `json:"netFlow"`
}

type cashFlowSummary struct {
	OpeningCashBalance decimal.Decimal `json:"openingCashBalance"`
	NetChangeInCash    decimal.Decimal `json:"netChangeInCash"`
	ClosingCashBalance decimal.Decimal `json:"closingCashBalance"`
}

type cashFlowBody struct {
	Operating activityTotals  `json:"operatingActivities"`
	Investing activityTotals  `json:"investingActivities"`
	Financing activityTotals  `json:"financingActivities"`
	Summary   cashFlowSummary `json:"summary"`
}

type cashFlowResponse struct {
	CompanyID int          `json:"companyId"`
	Period    periodRange  `json:"period"`
	Statement cashFlowBody `json:"cashFlowStatement"`
}

func newCashFlowResponse(stmt models.CashFlowStatement) cashFlowResponse {
	totals := func(f models.ActivityFlow) activityTotals {
		return activityTotals{Inflows: f.Inflows, Outflows: f.Outflows, NetFlow: f.NetFlow}
	}
	return cashFlowResponse{
		CompanyID: stmt.CompanyID,
		Period: periodRange{
			From: stmt.From.Format(dateLayout),
			To:   stmt.To.Format(dateLayout),
		},
		Statement: cashFlowBody{
			Operating: totals(stmt.Operating),
			Investing: totals(stmt.Investing),
			Financing: totals(stmt.Financing),
			Summary: cashFlowSummary{
				OpeningCashBalance: stmt.OpeningBalance,
				NetChangeInCash:    stmt.NetChange,
				ClosingCashBalance: stmt.ClosingBalance,
			},
		},
	}
}

type reconcilingItem struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Reference   string          `json:"reference"`
	Party       string          `json:"party"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type itemSection struct {
	Description string            `json:"description"`
	Items       []reconcilingItem `json:"items"`
	Total       decimal.Decimal   `json:"total"`
}

type reconcilingItemsBody struct {
	AddToBank        itemSection `json:"addToBank"`
	DeductFromBank   itemSection `json:"deductFromBank"`
	DeductFromLedger itemSection `json:"deductFromLedger"`
	AddToLedger      itemSection `json:"addToLedger"`
}

type unclassifiedBody struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type balancesBody struct {
	LedgerBalance        decimal.Decimal `json:"ledgerBalance"`
	BankStatementBalance decimal.Decimal `json:"bankStatementBalance"`
}

type adjustedBody struct {
	AdjustedLedgerBalance decimal.Decimal `json:"adjustedLedgerBalance"`
	AdjustedBankBalance   decimal.Decimal `json:"adjustedBankBalance"`
	Difference            decimal.Decimal `json:"difference"`
}

type reconciliationResponse struct {
	CompanyID            int                  `json:"companyId"`
	BankAccount          string               `json:"bankAccount"`
	ReconciliationDate   string               `json:"reconciliationDate"`
	Balances             balancesBody         `json:"balances"`
	ReconcilingItems     reconcilingItemsBody `json:"reconcilingItems"`
	Unclassified         unclassifiedBody     `json:"unclassified"`
	AdjustedBalances     adjustedBody         `json:"adjustedBalances"`
	ReconciliationStatus string               `json:"reconciliationStatus"`
}

func newReconciliationResponse(report models.ReconciliationReport) reconciliationResponse {
	return reconciliationResponse{
		CompanyID:          report.CompanyID,
		BankAccount:        report.BankAccount,
		ReconciliationDate: report.AsOf.Format(dateLayout),
		Balances: balancesBody{
			LedgerBalance:        report.LedgerBalance,
			BankStatementBalance: report.BankStatementBalance,
		},
		ReconcilingItems: reconcilingItemsBody{
			AddToBank:        section("Deposits recorded in the ledger but not yet on the bank statement", report.DepositsInTransit),
			DeductFromBank:   section("Cheques issued but not yet presented", report.OutstandingCheques),
			DeductFromLedger: section("Bank charges not yet recorded in ledger", report.UnrecordedCharges),
			AddToLedger:      section("Bank credits not yet recorded in ledger", report.UnrecordedCredits),
		},
		Unclassified: unclassifiedBody{
			Count: report.Unclassified.Count,
			Total: report.Unclassified.Total,
		},
		AdjustedBalances: adjustedBody{
			AdjustedLedgerBalance: report.AdjustedLedgerBalance,
			AdjustedBankBalance:   report.AdjustedBankBalance,
			Difference:            report.Difference,
		},
		ReconciliationStatus: report.Status,
	}
}

func section(description string, s models.ReconcilingSection) itemSection {
	items := make([]reconcilingItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, reconcilingItem{
			ID:          it.EntryID,
			Date:        it.Date.Format(dateLayout),
			Reference:   it.Reference,
			Party:       it.Party,
			Description: it.Description,
			Amount:      it.Amount,
		})
	}
	return itemSection{Description: description, Items: items, Total: s.Total}
}
