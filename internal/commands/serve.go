package commands

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finbooks/accounting-reports/internal/api"
	"github.com/finbooks/accounting-reports/internal/config"
	"github.com/finbooks/accounting-reports/internal/events"
	"github.com/finbooks/accounting-reports/internal/events/kafka"
	"github.com/finbooks/accounting-reports/internal/interfaces"
	"github.com/finbooks/accounting-reports/internal/storage/postgres"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP reporting server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logrus.StandardLogger()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	store := postgres.NewLedgerStore(db)

	var publisher interfaces.EventPublisher = events.NewNopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
		log.WithField("brokers", cfg.KafkaBrokers).Info("event publishing enabled")
	}

	server := api.NewServer(store, publisher, cfg.DefaultCompanyID, log)

	log.WithField("port", cfg.Port).Info("starting reporting server")
	return http.ListenAndServe(":"+cfg.Port, server.Router())
}
