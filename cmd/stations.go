package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/repositories"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List and manage the routing workstations",
	Long: `stations lists the registered prep stations. --add registers a new
station (requires --slug, the routing key lines are matched on);
--remove soft-deletes one so its history stays intact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		store, err := repositories.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if name, _ := cmd.Flags().GetString("add"); name != "" {
			slug, _ := cmd.Flags().GetString("slug")
			color, _ := cmd.Flags().GetString("color")
			station, err := models.NewWorkstation(name, slug, color)
			if err != nil {
				return err
			}
			if err := store.Workstations.Create(ctx, station); err != nil {
				return fmt.Errorf("creating workstation: %w", err)
			}
			fmt.Printf("created workstation %s (%s)\n", station.Name, station.Slug)
		}

		if slug, _ := cmd.Flags().GetString("remove"); slug != "" {
			if err := store.Workstations.Deactivate(ctx, slug); err != nil {
				return fmt.Errorf("deactivating workstation: %w", err)
			}
			fmt.Printf("deactivated workstation %s\n", slug)
		}

		includeInactive, _ := cmd.Flags().GetBool("all")
		stations, err := store.Workstations.GetAll(ctx, includeInactive)
		if err != nil {
			return fmt.Errorf("listing workstations: %w", err)
		}
		if len(stations) == 0 {
			fmt.Println("no workstations registered, run `komanda seed` first")
			return nil
		}
		for _, station := range stations {
			state := ""
			if !station.Active {
				state = " (inactive)"
			}
			fmt.Printf("%-12s %-8s %s%s\n", station.Slug, station.Color, station.Name, state)
		}
		return nil
	},
}

func init() {
	stationsCmd.Flags().String("add", "", "register a workstation with this display name")
	stationsCmd.Flags().String("slug", "", "routing slug for --add, lowercase [a-z0-9_-]")
	stationsCmd.Flags().String("color", "", "display color for --add, defaults to "+models.DefaultWorkstationColor)
	stationsCmd.Flags().String("remove", "", "soft-delete the workstation with this slug")
	stationsCmd.Flags().Bool("all", false, "include deactivated stations in the listing")
	rootCmd.AddCommand(stationsCmd)
}
