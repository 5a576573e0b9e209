package commands

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finbooks/accounting-reports/internal/config"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Provision the ledger schema and insert sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup()
		},
	}
}

const createTable = `
CREATE TABLE accounting_ledger_entry (
	id SERIAL PRIMARY KEY,
	date DATE NOT NULL,
	account VARCHAR(255) NOT NULL,
	debit NUMERIC DEFAULT 0,
	credit NUMERIC DEFAULT 0,
	party VARCHAR(255),
	note TEXT,
	bankaccount VARCHAR(255),
	reference VARCHAR(255),
	reconciled BOOLEAN DEFAULT FALSE,
	companyid INT NOT NULL DEFAULT 1,
	cashflow_category VARCHAR(50)
)`

const insertSampleData = `
INSERT INTO accounting_ledger_entry
(date, account, debit, credit, party, note, bankaccount, reference, reconciled, companyid, cashflow_category)
VALUES
('2025-01-02', 'Cash', 10000, 0, 'Investor', 'Capital Contribution', 'MainBank', 'DEP001', TRUE, 1, 'financing'),
('2025-01-05', 'Office Rent', 0, 2000, 'Landlord Ltd.', 'January rent', 'MainBank', 'CHQ101', TRUE, 1, 'operating'),
('2025-01-10', 'Inventory', 0, 3000, 'Supplier A', 'Purchase inventory', 'MainBank', 'CHQ102', FALSE, 1, 'operating'),
('2025-01-15', 'Sales', 0, 8000, 'Customer B', 'Sales Invoice', NULL, NULL, NULL, 1, 'operating'),
('2025-01-16', 'Cash', 8000, 0, 'Customer B', 'Payment received', 'MainBank', 'DEP002', TRUE, 1, 'operating'),
('2025-01-20', 'Utilities Expense', 0, 500, 'Power Co', 'Electricity bill', 'MainBank', 'CHQ103', TRUE, 1, 'operating'),
('2025-01-25', 'Bank Loan', 0, 7000, 'BigBank', 'Loan received', 'MainBank', 'DEP003', TRUE, 1, 'financing'),
('2025-01-26', 'Cash', 7000, 0, 'BigBank', 'Loan deposit', 'MainBank', 'DEP003', TRUE, 1, 'financing'),
('2025-01-28', 'Bank Charges', 0, 500, 'BigBank', 'Monthly service charge', 'MainBank', 'CHQ104', FALSE, 1, 'operating')`

func runSetup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`DROP TABLE IF EXISTS accounting_ledger_entry CASCADE`); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	logrus.Info("dropped existing ledger table if any")

	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	logrus.Info("created accounting_ledger_entry table")

	if _, err := db.Exec(insertSampleData); err != nil {
		return fmt.Errorf("inserting sample data: %w", err)
	}
	logrus.Info("inserted sample ledger entries")

	return nil
}
