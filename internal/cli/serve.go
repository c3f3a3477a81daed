package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/didzisbondars-dot/officebase/internal/airtable"
	"github.com/didzisbondars-dot/officebase/internal/email"
	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
	"github.com/didzisbondars-dot/officebase/internal/logging"
	"github.com/didzisbondars-dot/officebase/internal/refresh"
	"github.com/didzisbondars-dot/officebase/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start the HTTP server. Listings are fetched from the Airtable CMS, refreshed on a schedule, and cached in SQLite for cold starts while the CMS is unreachable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, dev)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: :8080)")
	cmd.Flags().BoolVar(&dev, "dev", false, "human-readable log output")

	return cmd
}

func runServe(addr string, dev bool) error {
	logging.Setup(dev)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	cms, err := airtable.NewClient(cfg.Airtable.APIKey, cfg.Airtable.BaseID)
	if err != nil {
		return fmt.Errorf("configuring CMS client: %w", err)
	}
	cms.SetTables(cfg.Airtable.ProjectsTable, cfg.Airtable.LeadsTable)

	database, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	store := listing.NewStore()
	refresher := refresh.NewRefresher(cms, store, listing.NewRepository(database))
	if err := refresher.Start(context.Background(), cfg.Server.RefreshCron); err != nil {
		return err
	}
	defer refresher.Stop()

	server := web.NewServer(store, cms, lead.NewRepository(database))
	server.SetProjectSource(cms)

	smtp := email.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	}
	if smtp.IsConfigured() && len(cfg.SMTP.NotifyTo) > 0 {
		to := cfg.SMTP.NotifyTo
		server.OnLeadAccepted(func(l lead.Lead) {
			if err := email.NotifyLead(smtp, to, l); err != nil {
				slog.Error("Failed to send lead notification", "error", err)
			}
		})
	}

	slog.Info("Starting server", "addr", addr, "listings", store.Len())
	return server.ListenAndServe(addr)
}
