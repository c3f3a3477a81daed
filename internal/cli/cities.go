package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List cities with published projects",
		Args:  cobra.NoArgs,
		RunE:  runCities,
	}
}

func runCities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cities, err := newAPIClient(cfg).Cities()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cities)
	}

	if len(cities) == 0 {
		fmt.Println("No cities found.")
		return nil
	}
	for _, city := range cities {
		fmt.Println(city)
	}
	return nil
}
