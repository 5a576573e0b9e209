package events

import "time"

// Report types carried on ReportGenerated events.
const (
	ReportCashFlow       = "cashflow"
	ReportReconciliation = "reconciliation"
)

// ReportGenerated is published after a report has been computed and
// returned to the client.
type ReportGenerated struct {
	ReportType  string    `json:"report_type"`
	CompanyID   int       `json:"company_id"`
	RequestID   string    `json:"request_id"`
	GeneratedAt time.Time `json:"generated_at"`
}
