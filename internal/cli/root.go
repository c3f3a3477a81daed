// Package cli defines the cobra command tree for officebase.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/didzisbondars-dot/officebase/internal/client"
	"github.com/didzisbondars-dot/officebase/internal/config"
	"github.com/didzisbondars-dot/officebase/internal/db"
)

var (
	flagFormat string
	flagServer string
	flagDB     string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "officebase",
		Short:         "Browse and compare office projects",
		Long:          "An office-project aggregator. Serve the REST API backed by the Airtable CMS, browse and filter published projects, maintain a comparison shortlist, and submit space inquiries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "officebase server URL (default: http://localhost:8080)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.officebase/officebase.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: ~/.officebase/config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newShowCmd(),
		newCitiesCmd(),
		newCompareCmd(),
		newLeadCmd(),
		newLeadsCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

// openDB opens the SQLite database using the --db flag, the configured
// path, or the default location.
func openDB(cfg *config.Config) (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = cfg.Server.DBPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the officebase API.
func newAPIClient(cfg *config.Config) *client.Client {
	url := flagServer
	if url == "" {
		url = cfg.Server.ServerURL
	}
	return client.New(url)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
