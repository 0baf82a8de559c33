package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/repositories"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the menu file into the database as an immutable version",
	Long: `seed loads the configured menu file, hashes its canonical form and
stores it as a new menu version. Re-running against an unchanged menu is
a no-op unless --force is given. The three default workstations are
created if missing.`,
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

		menuFile := cfg.MenuFile
		if override, _ := cmd.Flags().GetString("menu"); override != "" {
			menuFile = override
		}
		menu, err := models.LoadMenuFile(menuFile)
		if err != nil {
			return err
		}

		createdBy, _ := cmd.Flags().GetString("created-by")
		version, err := models.NewMenuVersion(menu, createdBy)
		if err != nil {
			return err
		}

		latest, err := store.MenuVersions.Latest(ctx)
		if err != nil {
			return fmt.Errorf("loading latest menu version: %w", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if latest != nil && latest.Hash == version.Hash && !force {
			fmt.Printf("menu unchanged since version %s, nothing to seed\n", latest.ID)
		} else {
			if err := store.MenuVersions.Create(ctx, version); err != nil {
				return fmt.Errorf("seeding menu version: %w", err)
			}
			fmt.Printf("seeded menu version %s: %d items in %d sections\n",
				version.ID, models.CountMenuItems(menu), len(menu))
		}

		created, err := ensureDefaultWorkstations(ctx, store)
		if err != nil {
			return fmt.Errorf("ensuring workstations: %w", err)
		}
		if created > 0 {
			fmt.Printf("created %d default workstations\n", created)
		}
		return nil
	},
}

func ensureDefaultWorkstations(ctx context.Context, store *repositories.Store) (int, error) {
	created := 0
	for _, station := range models.DefaultWorkstations() {
		existing, err := store.Workstations.GetBySlug(ctx, station.Slug)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if err := store.Workstations.Create(ctx, station); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func init() {
	seedCmd.Flags().String("menu", "", "menu file to seed (overrides the configured one)")
	seedCmd.Flags().String("created-by", "seed", "recorded author of the menu version")
	seedCmd.Flags().Bool("force", false, "seed a new version even when the menu hash is unchanged")
	rootCmd.AddCommand(seedCmd)
}
