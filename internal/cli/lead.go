package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/didzisbondars-dot/officebase/internal/lead"
)

type leadFlags struct {
	name     string
	email    string
	phone    string
	company  string
	message  string
	unitSize float64
	budget   float64
}

func newLeadCmd() *cobra.Command {
	var flags leadFlags

	cmd := &cobra.Command{
		Use:   "lead <project-slug>",
		Short: "Submit a space inquiry",
		Long:  "Submit a space inquiry for a project. Name and email are required; the inquiry is recorded in the CMS.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLead(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "contact name (required)")
	cmd.Flags().StringVar(&flags.email, "email", "", "contact email (required)")
	cmd.Flags().StringVar(&flags.phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&flags.company, "company", "", "company name")
	cmd.Flags().StringVar(&flags.message, "message", "", "free-form message")
	cmd.Flags().Float64Var(&flags.unitSize, "unit-size", 0, "desired unit size in sqm")
	cmd.Flags().Float64Var(&flags.budget, "budget", 0, "budget in USD")

	return cmd
}

func runLead(slug string, flags leadFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c := newAPIClient(cfg)

	project, err := c.GetProject(slug)
	if err != nil {
		return err
	}

	l := lead.Lead{
		Name:        flags.name,
		Email:       flags.email,
		Phone:       flags.phone,
		Company:     flags.company,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Message:     flags.message,
	}
	if flags.unitSize > 0 {
		l.UnitSize = &flags.unitSize
	}
	if flags.budget > 0 {
		l.Budget = &flags.budget
	}

	// Validate locally before the round trip so problems read as flag
	// errors instead of a server response.
	if problems := l.Validate(); len(problems) > 0 {
		var parts []string
		for _, problem := range problems {
			parts = append(parts, problem)
		}
		sort.Strings(parts)
		return fmt.Errorf("invalid inquiry: %s", strings.Join(parts, "; "))
	}

	if err := c.SubmitLead(l); err != nil {
		return err
	}

	fmt.Printf("Inquiry for %s submitted.\n", project.Name)
	return nil
}
