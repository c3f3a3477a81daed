package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/didzisbondars-dot/officebase/internal/client"
	"github.com/didzisbondars-dot/officebase/internal/config"
	"github.com/didzisbondars-dot/officebase/internal/listing"
	"github.com/didzisbondars-dot/officebase/internal/panel"
	"github.com/didzisbondars-dot/officebase/internal/slider"
)

type listFlags struct {
	query        string
	city         string
	district     string
	status       []string
	propertyType []string
	minArea      string
	maxArea      string
	minRent      float64
	maxRent      float64
	featured     bool
}

func newListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published projects",
		Long:  "List published office projects, optionally filtered by text search, location, status, type, area range, or rent range.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "text search across name, developer, address, and description")
	cmd.Flags().StringVar(&flags.city, "city", "", "filter by city")
	cmd.Flags().StringVar(&flags.district, "district", "", "filter by district")
	cmd.Flags().StringSliceVar(&flags.status, "status", nil, "filter by status, repeatable")
	cmd.Flags().StringSliceVar(&flags.propertyType, "type", nil, "filter by property type, repeatable")
	cmd.Flags().StringVar(&flags.minArea, "min-area", "", "minimum total area in sqm")
	cmd.Flags().StringVar(&flags.maxArea, "max-area", "", "maximum total area in sqm")
	cmd.Flags().Float64Var(&flags.minRent, "min-rent", 0, "minimum rent in EUR/sqm")
	cmd.Flags().Float64Var(&flags.maxRent, "max-rent", 0, "maximum rent in EUR/sqm")
	cmd.Flags().BoolVar(&flags.featured, "featured", false, "only featured projects")

	return cmd
}

func runList(flags listFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c := newAPIClient(cfg)

	if flags.featured {
		projects, err := c.FeaturedProjects(0)
		if err != nil {
			return err
		}
		return printProjects(projects)
	}

	criteria, err := buildCriteria(cfg, flags)
	if err != nil {
		return err
	}

	projects, err := c.ListProjects(listOptions(criteria))
	if err != nil {
		return err
	}
	return printProjects(projects)
}

// buildCriteria runs the flag values through the same filter panel the
// interactive surfaces use, so bound parsing and rent snapping behave
// identically everywhere.
func buildCriteria(cfg *config.Config, flags listFlags) (listing.Criteria, error) {
	rent, err := slider.NewTicked(cfg.Rent.Min, cfg.Rent.Max, cfg.Rent.Ticks)
	if err != nil {
		return listing.Criteria{}, err
	}

	p := panel.New(rent, nil)
	p.SetQuery(flags.query)
	p.SetCity(flags.city)
	p.SetDistrict(flags.district)
	for _, s := range flags.status {
		p.ToggleStatus(s)
	}
	for _, t := range flags.propertyType {
		p.ToggleType(t)
	}
	p.SetMinAreaText(flags.minArea)
	p.SetMaxAreaText(flags.maxArea)
	p.CommitArea()

	if flags.minRent > 0 || flags.maxRent > 0 {
		low, high := rent.Values()
		if flags.minRent > 0 {
			low = flags.minRent
		}
		if flags.maxRent > 0 {
			high = flags.maxRent
		}
		rent.Set(low, high)
	}

	c := p.Criteria()

	// An explicitly passed rent flag stays active even when it snaps to
	// the slider's resting position, so unpriced listings are excluded.
	low, high := rent.Values()
	if flags.minRent > 0 && c.MinRent == nil {
		c.MinRent = &low
	}
	if flags.maxRent > 0 && c.MaxRent == nil {
		c.MaxRent = &high
	}

	return c, nil
}

// listOptions converts criteria into API query options.
func listOptions(c listing.Criteria) client.ListOptions {
	bound := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return client.ListOptions{
		Query:        c.Query,
		City:         c.City,
		District:     c.District,
		Status:       c.Status,
		PropertyType: c.PropertyType,
		MinArea:      bound(c.MinArea),
		MaxArea:      bound(c.MaxArea),
		MinRent:      bound(c.MinRent),
		MaxRent:      bound(c.MaxRent),
	}
}

func printProjects(projects []*listing.Listing) error {
	if isJSON() {
		return printJSON(projects)
	}
	return printProjectTable(projects)
}
