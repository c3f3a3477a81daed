package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/didzisbondars-dot/officebase/internal/lead"
	"github.com/didzisbondars-dot/officebase/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProjectTable prints projects as a formatted table.
func printProjectTable(projects []*listing.Listing) error {
	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "SLUG\tNAME\tCITY\tSTATUS\tAREA\tRENT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----\t----\t----\t------\t----\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range projects {
		name := truncate(l.Name, 32)
		if l.Featured {
			name += " *"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Slug, name, l.City, l.Status, formatArea(l.TotalArea), formatRent(l.RentPricePerSqm)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d projects\n", len(projects))
	return nil
}

// printProjectDetail prints the full detail view of a project.
func printProjectDetail(l *listing.Listing) {
	fmt.Println(l.Name)
	if l.Featured {
		fmt.Println("  Featured")
	}
	fmt.Printf("  Slug:       %s\n", l.Slug)
	fmt.Printf("  Developer:  %s\n", l.Developer)
	fmt.Printf("  Status:     %s\n", l.Status)
	fmt.Printf("  Type:       %s\n", l.PropertyType)
	fmt.Printf("  Address:    %s\n", l.Address)
	fmt.Printf("  City:       %s\n", l.City)
	if l.District != "" {
		fmt.Printf("  District:   %s\n", l.District)
	}
	fmt.Printf("  Total area: %s\n", formatArea(l.TotalArea))
	if l.MinUnitSize > 0 || l.MaxUnitSize > 0 {
		fmt.Printf("  Units:      %s - %s\n", formatArea(l.MinUnitSize), formatArea(l.MaxUnitSize))
	}
	if l.RentPricePerSqm != nil {
		fmt.Printf("  Rent:       %s\n", formatRent(l.RentPricePerSqm))
	}
	if l.SalePricePerSqm != nil {
		fmt.Printf("  Sale:       %.2f EUR/sqm\n", *l.SalePricePerSqm)
	}
	if l.Floors > 0 {
		fmt.Printf("  Floors:     %d\n", l.Floors)
	}
	if l.CompletionDate != "" {
		fmt.Printf("  Completion: %s\n", l.CompletionDate)
	}
	if len(l.Amenities) > 0 {
		fmt.Printf("  Amenities:  %s\n", strings.Join(l.Amenities, ", "))
	}
	if len(l.Certifications) > 0 {
		fmt.Printf("  Certified:  %s\n", strings.Join(l.Certifications, ", "))
	}
	if l.ContactEmail != "" {
		fmt.Printf("  Contact:    %s\n", l.ContactEmail)
	}
	if l.Description != "" {
		fmt.Printf("\n%s\n", l.Description)
	}
}

// printCompareTable prints the shortlist side by side, one attribute
// per row.
func printCompareTable(projects []*listing.Listing) error {
	if len(projects) == 0 {
		fmt.Println("No projects to compare.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	row := func(label string, value func(*listing.Listing) string) error {
		cells := []string{label}
		for _, l := range projects {
			cells = append(cells, value(l))
		}
		_, err := fmt.Fprintln(w, strings.Join(cells, "\t"))
		return err
	}

	rows := []struct {
		label string
		value func(*listing.Listing) string
	}{
		{"", func(l *listing.Listing) string { return truncate(l.Name, 24) }},
		{"Developer", func(l *listing.Listing) string { return l.Developer }},
		{"City", func(l *listing.Listing) string { return l.City }},
		{"District", func(l *listing.Listing) string { return dash(l.District) }},
		{"Status", func(l *listing.Listing) string { return string(l.Status) }},
		{"Type", func(l *listing.Listing) string { return string(l.PropertyType) }},
		{"Total area", func(l *listing.Listing) string { return formatArea(l.TotalArea) }},
		{"Rent", func(l *listing.Listing) string { return formatRent(l.RentPricePerSqm) }},
		{"Floors", func(l *listing.Listing) string {
			if l.Floors == 0 {
				return "-"
			}
			return fmt.Sprintf("%d", l.Floors)
		}},
		{"Completion", func(l *listing.Listing) string { return dash(l.CompletionDate) }},
	}
	for _, r := range rows {
		if err := row(r.label, r.value); err != nil {
			return fmt.Errorf("writing comparison row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printLeadTable prints locally logged inquiries as a table.
func printLeadTable(leads []lead.Lead) error {
	if len(leads) == 0 {
		fmt.Println("No inquiries logged.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "DATE\tNAME\tEMAIL\tPROJECT\tSIZE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, l := range leads {
		size := "-"
		if l.UnitSize != nil {
			size = formatArea(*l.UnitSize)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			l.SubmittedAt.Format("2006-01-02 15:04"), truncate(l.Name, 24), l.Email,
			truncate(l.ProjectName, 28), size); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d inquiries\n", len(leads))
	return nil
}

// formatArea renders square meters without trailing zeros.
func formatArea(sqm float64) string {
	if sqm == 0 {
		return "-"
	}
	return fmt.Sprintf("%g sqm", sqm)
}

// formatRent renders a rent price, or "-" for unpriced projects.
func formatRent(rent *float64) string {
	if rent == nil {
		return "-"
	}
	return fmt.Sprintf("%g EUR/sqm", *rent)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
