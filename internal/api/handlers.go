package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/accounting-reports/internal/models/events"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Accounting Reports API",
		"version": Version,
		"endpoints": map[string]string{
			"cashFlow":       "GET /cashflow?companyid=1&fromDate=2025-01-01&toDate=2025-01-31",
			"reconciliation": "GET /reconciliation?companyid=1&bankaccount=MainBank&bankStatementBalance=19000&asOfDate=2025-01-31",
			"health":         "GET /health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	companyID, err := s.parseCompanyID(q.Get("companyid"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	fromRaw, toRaw := q.Get("fromDate"), q.Get("toDate")
	if fromRaw == "" || toRaw == "" {
		badRequest(w, "Missing required parameters: fromDate and toDate")
		return
	}
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		badRequest(w, "fromDate must be a date formatted YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		badRequest(w, "toDate must be a date formatted YYYY-MM-DD")
		return
	}
	if from.After(to) {
		badRequest(w, "fromDate must not be after toDate")
		return
	}

	stmt, err := s.cashflow.Statement(r.Context(), companyID, from, to)
	if err != nil {
		s.log.WithError(err).Error("generating cash flow statement")
		internalError(w, err)
		return
	}

	s.publishReport(r.Context(), events.ReportCashFlow, companyID)
	writeJSON(w, http.StatusOK, newCashFlowResponse(stmt))
}

func (s *Server) handleReconciliation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	companyID, err := s.parseCompanyID(q.Get("companyid"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	bankAccount := q.Get("bankaccount")
	if bankAccount == "" {
		badRequest(w, "Missing required parameter: bankaccount")
		return
	}

	statementBalance := decimal.Zero
	if raw := q.Get("bankStatementBalance"); raw != "" {
		statementBalance, err = decimal.NewFromString(raw)
		if err != nil {
			badRequest(w, "bankStatementBalance must be a number")
			return
		}
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := q.Get("asOfDate"); raw != "" {
		asOf, err = time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(w, "asOfDate must be a date formatted YYYY-MM-DD")
			return
		}
	}

	report, err := s.reconcile.Reconcile(r.Context(), companyID, bankAccount, statementBalance, asOf)
	if err != nil {
		s.log.WithError(err).Error("generating bank reconciliation")
		internalError(w, err)
		return
	}

	s.publishReport(r.Context(), events.ReportReconciliation, companyID)
	writeJSON(w, http.StatusOK, newReconciliationResponse(report))
}

// parseCompanyID resolves the companyid query parameter, falling back to
// the configured default when omitted.
func (s *Server) parseCompanyID(raw string) (int, error) {
	if raw == "" {
		return s.defaultCompanyID, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("companyid must be a positive integer")
	}
	return id, nil
}

func (s *Server) publishReport(ctx context.Context, reportType string, companyID int) {
	evt := events.ReportGenerated{
		ReportType:  reportType,
		CompanyID:   companyID,
		RequestID:   RequestID(ctx),
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.events.Publish("report_generated", evt); err != nil {
		s.log.WithError(err).Warn("publishing report event")
	}
}
