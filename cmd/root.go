package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/dkaranikas/komanda/internal/repositories"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "komanda",
	Short: "Routes handwritten taverna order tickets to their prep stations",
	Long: `komanda reads the shorthand Greek order lines waiters key in, matches
them against the menu and routes every line to its preparation station
(kitchen, grill or drinks).

It also versions the menu, captures waiter corrections as training data
and can simulate a whole service for load testing the station feeds.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")
}

func loadConfig() (*models.Config, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// resolveMenu prefers the latest seeded menu version and falls back to the
// configured menu file.
func resolveMenu(ctx context.Context, cfg *models.Config, store *repositories.Store) (nlp.MenuSnapshot, error) {
	if store != nil {
		version, err := store.MenuVersions.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading latest menu version: %w", err)
		}
		if version != nil {
			return version.Snapshot, nil
		}
	}
	return models.LoadMenuFile(cfg.MenuFile)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
