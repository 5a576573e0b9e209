package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/accounting-reports/internal/events"
	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/models"
	"github.com/finbooks/accounting-reports/internal/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleStore mirrors the ledger the setup command seeds.
func sampleStore() *memory.LedgerStore {
	store := memory.NewLedgerStore()
	store.Add(
		models.LedgerEntry{Date: date(2025, 1, 2), Account: "Cash", Debit: dec("10000"), Party: "Investor", Note: "Capital Contribution", BankAccount: "MainBank", Reference: "DEP001", Reconciled: true, CompanyID: 1, CashflowCategory: models.Financing},
		models.LedgerEntry{Date: date(2025, 1, 5), Account: "Office Rent", Credit: dec("2000"), Party: "Landlord Ltd.", Note: "January rent", BankAccount: "MainBank", Reference: "CHQ101", Reconciled: true, CompanyID: 1, CashflowCategory: models.Operating},
		models.LedgerEntry{Date: date(2025, 1, 10), Account: "Inventory", Credit: dec("3000"), Party: "Supplier A", Note: "Purchase inventory", BankAccount: "MainBank", Reference: "CHQ102", CompanyID: 1, CashflowCategory: models.Operating},
		models.LedgerEntry{Date: date(2025, 1, 15), Account: "Sales", Credit: dec("8000"), Party: "Customer B", Note: "Sales Invoice", CompanyID: 1, CashflowCategory: models.Operating},
		models.LedgerEntry{Date: date(2025, 1, 16), Account: "Cash", Debit: dec("8000"), Party: "Customer B", Note: "Payment received", BankAccount: "MainBank", Reference: "DEP002", Reconciled: true, CompanyID: 1, CashflowCategory: models.Operating},
		models.LedgerEntry{Date: date(2025, 1, 20), Account: "Utilities Expense", Credit: dec("500"), Party: "Power Co", Note: "Electricity bill", BankAccount: "MainBank", Reference: "CHQ103", Reconciled: true, CompanyID: 1, CashflowCategory: models.Operating},
		models.LedgerEntry{Date: date(2025, 1, 25), Account: "Bank Loan", Credit: dec("7000"), Party: "BigBank", Note: "Loan received", BankAccount: "MainBank", Reference: "DEP003", Reconciled: true, CompanyID: 1, CashflowCategory: models.Financing},
		models.LedgerEntry{Date: date(2025, 1, 26), Account: "Cash", Debit: dec("7000"), Party: "BigBank", Note: "Loan deposit", BankAccount: "MainBank", Reference: "DEP003", Reconciled: true, CompanyID: 1, CashflowCategory: models.Financing},
		models.LedgerEntry{Date: date(2025, 1, 28), Account: "Bank Charges", Credit: dec("500"), Party: "BigBank", Note: "Monthly service charge", BankAccount: "MainBank", Reference: "CHQ104", CompanyID: 1, CashflowCategory: models.Operating},
	)
	return store
}

func newTestServer(store interfaces.LedgerStore) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(store, events.NewNopPublisher(), 1, log).Router()
}

func get(t *testing.T, handler http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCashFlow_OK(t *testing.T) {
	handler := newTestServer(sampleStore())

	rec := get(t, handler, "/cashflow?companyid=1&fromDate=2025-01-01&toDate=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cashFlowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.CompanyID)
	assert.Equal(t, "2025-01-01", resp.Period.From)
	assert.Equal(t, "2025-01-31", resp.Period.To)

	op := resp.Statement.Operating
	assert.True(t, op.Inflows.Equal(dec("8000")))
	assert.True(t, op.Outflows.Equal(dec("6000")))
	assert.True(t, op.NetFlow.Equal(dec("2000")))

	fin := resp.Statement.Financing
	assert.True(t, fin.Inflows.Equal(dec("17000")))
	assert.True(t, fin.Outflows.Equal(dec("7000")))
	assert.True(t, fin.NetFlow.Equal(dec("10000")))

	inv := resp.Statement.Investing
	assert.True(t, inv.Inflows.IsZero())
	assert.True(t, inv.NetFlow.IsZero())

	sum := resp.Statement.Summary
	assert.True(t, sum.OpeningCashBalance.IsZero())
	assert.True(t, sum.NetChangeInCash.Equal(dec("12000")))
	assert.True(t, sum.ClosingCashBalance.Equal(dec("12000")))
}

func TestCashFlow_DefaultCompanyID(t *testing.T) {
	handler := newTestServer(sampleStore())

	rec := get(t, handler, "/cashflow?fromDate=2025-01-01&toDate=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cashFlowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.CompanyID)
}

func TestCashFlow_Validation(t *testing.T) {
	handler := newTestServer(sampleStore())

	tests := []struct {
		name string
		url  string
	}{
		{"missing dates", "/cashflow?companyid=1"},
		{"missing toDate", "/cashflow?companyid=1&fromDate=2025-01-01"},
		{"malformed fromDate", "/cashflow?fromDate=January&toDate=2025-01-31"},
		{"malformed toDate", "/cashflow?fromDate=2025-01-01&toDate=31-01-2025"},
		{"from after to", "/cashflow?fromDate=2025-02-01&toDate=2025-01-31"},
		{"bad companyid", "/cashflow?companyid=abc&fromDate=2025-01-01&toDate=2025-01-31"},
		{"negative companyid", "/cashflow?companyid=-4&fromDate=2025-01-01&toDate=2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handler, tt.url)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestReconciliation_OK(t *testing.T) {
	handler := newTestServer(sampleStore())

	// Ledger balance 25000; unreconciled CHQ102 and CHQ104 are non-Cash
	// credits, so both deduct from the ledger side: adjusted ledger 21500.
	rec := get(t, handler, "/reconciliation?companyid=1&bankaccount=MainBank&bankStatementBalance=21500&asOfDate=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp reconciliationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.CompanyID)
	assert.Equal(t, "MainBank", resp.BankAccount)
	assert.Equal(t, "2025-01-31", resp.ReconciliationDate)
	assert.True(t, resp.Balances.LedgerBalance.Equal(dec("25000")))
	assert.True(t, resp.Balances.BankStatementBalance.Equal(dec("21500")))

	charges := resp.ReconcilingItems.DeductFromLedger
	require.Len(t, charges.Items, 2)
	assert.Equal(t, "CHQ102", charges.Items[0].Reference)
	assert.True(t, charges.Items[0].Amount.Equal(dec("-3000")))
	assert.Equal(t, "CHQ104", charges.Items[1].Reference)
	assert.True(t, charges.Items[1].Amount.Equal(dec("-500")))
	assert.True(t, charges.Total.Equal(dec("-3500")))

	// Empty sections are present with empty item lists, never absent.
	assert.NotNil(t, resp.ReconcilingItems.AddToBank.Items)
	assert.Len(t, resp.ReconcilingItems.AddToBank.Items, 0)

	assert.True(t, resp.AdjustedBalances.AdjustedLedgerBalance.Equal(dec("21500")))
	assert.True(t, resp.AdjustedBalances.AdjustedBankBalance.Equal(dec("21500")))
	assert.True(t, resp.AdjustedBalances.Difference.IsZero())
	assert.Equal(t, models.StatusReconciled, resp.ReconciliationStatus)
}

func TestReconciliation_Discrepancy(t *testing.T) {
	handler := newTestServer(sampleStore())

	rec := get(t, handler, "/reconciliation?companyid=1&bankaccount=MainBank&bankStatementBalance=19000&asOfDate=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp reconciliationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, models.StatusDiscrepancy, resp.ReconciliationStatus)
	assert.True(t, resp.AdjustedBalances.Difference.Equal(dec("-2500")))
}

func TestReconciliation_Validation(t *testing.T) {
	handler := newTestServer(sampleStore())

	tests := []struct {
		name string
		url  string
	}{
		{"missing bankaccount", "/reconciliation?companyid=1"},
		{"malformed balance", "/reconciliation?bankaccount=MainBank&bankStatementBalance=lots"},
		{"malformed asOfDate", "/reconciliation?bankaccount=MainBank&asOfDate=soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handler, tt.url)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStoreFailure_Returns500(t *testing.T) {
	handler := newTestServer(failingStore{})

	rec := get(t, handler, "/cashflow?fromDate=2025-01-01&toDate=2025-01-31")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.Contains(t, body["message"], "connection refused")

	rec = get(t, handler, "/reconciliation?bankaccount=MainBank")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(sampleStore()), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])

	rec = get(t, newTestServer(failingStore{}), "/health")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "disconnected", body["database"])
}

func TestIndexAndRequestID(t *testing.T) {
	rec := get(t, newTestServer(sampleStore()), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

// failingStore simulates a store whose backing connection is down.
type failingStore struct{}

var errDown = errors.New("connection refused")

func (failingStore) SelectCashFlowCandidates(ctx context.Context, companyID int, from, to time.Time) ([]models.LedgerEntry, error) {
	return nil, errDown
}

func (failingStore) SelectOpeningCashEntries(ctx context.Context, companyID int, before time.Time) ([]models.LedgerEntry, error) {
	return nil, errDown
}

func (failingStore) SelectCashBalance(ctx context.Context, companyID int, asOf time.Time) (decimal.Decimal, error) {
	return decimal.Zero, errDown
}

func (failingStore) SelectUnreconciled(ctx context.Context, companyID int, bankAccount string) ([]models.LedgerEntry, error) {
	return nil, errDown
}

func (failingStore) Ping(ctx context.Context) error {
	return errDown
}
