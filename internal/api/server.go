package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/finbooks/accounting-reports/internal/cashflow"
	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/reconcile"
)

// Version reported on the index endpoint.
const Version = "1.0.0"

// Server owns the HTTP surface: three GET report endpoints plus health
// and index. All report computation is delegated to the services; the
// server only validates parameters and shapes responses.
type Server struct {
	cashflow  *cashflow.Service
	reconcile *reconcile.Service
	store     interfaces.LedgerStore
	events    interfaces.EventPublisher

	defaultCompanyID int
	log              *logrus.Logger
}

// NewServer wires the report services over the given store.
func NewServer(store interfaces.LedgerStore, publisher interfaces.EventPublisher, defaultCompanyID int, log *logrus.Logger) *Server {
	return &Server{
		cashflow:         cashflow.NewService(store),
		reconcile:        reconcile.NewService(store),
		store:            store,
		events:           publisher,
		defaultCompanyID: defaultCompanyID,
		log:              log,
	}
}

// Router builds the chi router with cors, request-id and request-logging
// middleware applied to every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/cashflow", s.handleCashFlow)
	r.Get("/reconciliation", s.handleReconciliation)

	return r
}
