package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/models"
)

// LedgerStore is an in-memory implementation of interfaces.LedgerStore,
// used as the store substitute in tests. It is safe for concurrent use.
type LedgerStore struct {
	mu      sync.Mutex
	entries []models.LedgerEntry
	nextID  int64
}

// NewLedgerStore creates an empty in-memory ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{nextID: 1}
}

// Add records entries, assigning sequential ids to entries with a zero ID.
func (m *LedgerStore) Add(entries ...models.LedgerEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if e.ID == 0 {
			e.ID = m.nextID
		}
		if e.ID >= m.nextID {
			m.nextID = e.ID + 1
		}
		m.entries = append(m.entries, e)
	}
}

func (m *LedgerStore) SelectCashFlowCandidates(ctx context.Context, companyID int, from, to time.Time) ([]models.LedgerEntry, error) {
	return m.selectWhere(func(e models.LedgerEntry) bool {
		return e.CompanyID == companyID &&
			!e.Date.Before(from) && !e.Date.After(to) &&
			(e.Account == models.CashAccount || e.BankAccount != "")
	}), nil
}

func (m *LedgerStore) SelectOpeningCashEntries(ctx context.Context, companyID int, before time.Time) ([]models.LedgerEntry, error) {
	return m.selectWhere(func(e models.LedgerEntry) bool {
		return e.CompanyID == companyID &&
			e.Account == models.CashAccount &&
			e.Date.Before(before)
	}), nil
}

func (m *LedgerStore) SelectCashBalance(ctx context.Context, companyID int, asOf time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance := decimal.Zero
	for _, e := range m.entries {
		if e.CompanyID == companyID && e.Account == models.CashAccount && !e.Date.After(asOf) {
			balance = balance.Add(e.Debit.Sub(e.Credit))
		}
	}
	return balance, nil
}

func (m *LedgerStore) SelectUnreconciled(ctx context.Context, companyID int, bankAccount string) ([]models.LedgerEntry, error) {
	return m.selectWhere(func(e models.LedgerEntry) bool {
		return e.CompanyID == companyID &&
			e.BankAccount == bankAccount &&
			!e.Reconciled
	}), nil
}

func (m *LedgerStore) Ping(ctx context.Context) error {
	return nil
}

// selectWhere copies out matching entries ordered by (date, id) so callers
// cannot mutate internal state and see deterministic ordering.
func (m *LedgerStore) selectWhere(match func(models.LedgerEntry) bool) []models.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.LedgerEntry
	for _, e := range m.entries {
		if match(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

var _ interfaces.LedgerStore = (*LedgerStore)(nil)
