package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show project details",
		Long:  "Show full details for a project, looked up by its URL slug.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := newAPIClient(cfg).GetProject(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(l)
	}

	printProjectDetail(l)
	return nil
}
