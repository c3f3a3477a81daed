package cli

import (
	"github.com/spf13/cobra"

	"github.com/didzisbondars-dot/officebase/internal/lead"
)

func newLeadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leads",
		Short: "List locally logged inquiries",
		Long:  "List the inquiries logged by this server instance, newest first. The CMS holds the authoritative copy.",
		Args:  cobra.NoArgs,
		RunE:  runLeads,
	}
}

func runLeads(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	leads, err := lead.NewRepository(database).List()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(leads)
	}
	return printLeadTable(leads)
}
