package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/didzisbondars-dot/officebase/internal/compare"
	"github.com/didzisbondars-dot/officebase/internal/config"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Manage the comparison shortlist",
		Long:  "Maintain a persistent shortlist of projects to compare side by side. The shortlist holds up to three projects and survives between runs.",
	}

	cmd.AddCommand(
		newCompareAddCmd(),
		newCompareRemoveCmd(),
		newCompareListCmd(),
		newCompareClearCmd(),
	)

	return cmd
}

func newCompareAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <slug>",
		Short: "Add a project to the shortlist",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompareAdd,
	}
}

func newCompareRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <slug>",
		Short: "Remove a project from the shortlist",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompareRemove,
	}
}

func newCompareListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the shortlisted projects",
		Args:  cobra.NoArgs,
		RunE:  runCompareList,
	}
}

func newCompareClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the shortlist",
		Args:  cobra.NoArgs,
		RunE:  runCompareClear,
	}
}

// compareStore opens the persisted shortlist for the current user.
func compareStore(cfg *config.Config) (*compare.FileStore, error) {
	path := cfg.Compare.StoragePath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".officebase", "compare.json")
	}
	return compare.NewFileStore(path), nil
}

func runCompareAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := newAPIClient(cfg).GetProject(args[0])
	if err != nil {
		return err
	}

	store, err := compareStore(cfg)
	if err != nil {
		return err
	}
	set, err := compare.Restore(store, cfg.Compare.Capacity)
	if err != nil {
		return err
	}

	if set.Contains(l.ID) {
		fmt.Printf("%s is already on the shortlist.\n", l.Name)
		return nil
	}
	if !set.Add(l.ID) {
		return fmt.Errorf("the shortlist is full (%d projects); remove one first", set.Capacity())
	}
	if err := compare.Persist(store, set); err != nil {
		return err
	}

	fmt.Printf("Added %s (%d/%d).\n", l.Name, set.Len(), set.Capacity())
	return nil
}

func runCompareRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := compareStore(cfg)
	if err != nil {
		return err
	}
	set, err := compare.Restore(store, cfg.Compare.Capacity)
	if err != nil {
		return err
	}

	// The shortlist stores ids; resolve the slug when the server knows
	// it, otherwise fall back to treating the argument as a raw id so a
	// delisted project can still be removed.
	id := args[0]
	if l, err := newAPIClient(cfg).GetProject(args[0]); err == nil {
		id = l.ID
	}

	if !set.Remove(id) {
		fmt.Println("Not on the shortlist.")
		return nil
	}
	if err := compare.Persist(store, set); err != nil {
		return err
	}

	fmt.Printf("Removed. %d project(s) remain.\n", set.Len())
	return nil
}

func runCompareList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := compareStore(cfg)
	if err != nil {
		return err
	}
	set, err := compare.Restore(store, cfg.Compare.Capacity)
	if err != nil {
		return err
	}

	if set.Len() == 0 {
		if isJSON() {
			return printJSON([]string{})
		}
		fmt.Println("The shortlist is empty.")
		return nil
	}

	projects, err := newAPIClient(cfg).CompareProjects(set.IDs())
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(projects)
	}
	return printCompareTable(projects)
}

func runCompareClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := compareStore(cfg)
	if err != nil {
		return err
	}
	set, err := compare.Restore(store, cfg.Compare.Capacity)
	if err != nil {
		return err
	}

	set.Clear()
	if err := compare.Persist(store, set); err != nil {
		return err
	}

	fmt.Println("Shortlist cleared.")
	return nil
}
