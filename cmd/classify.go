package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkaranikas/komanda/internal/models"
	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/dkaranikas/komanda/internal/repositories"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify an order ticket into station-routed lines",
	Long: `classify runs a raw order ticket through the engine: each line is
normalized, parsed for quantities and units, fuzzy-matched against the
menu and routed to a station. Text comes from the argument, --file or
stdin. With a database backend configured, the latest seeded menu
version and all captured corrections are used; otherwise the menu file
from the config is loaded directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		text, err := readTicketText(cmd, args)
		if err != nil {
			return err
		}

		var store *repositories.Store
		if cfg.DatabaseBackend != "" {
			store, err = repositories.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()
		}

		menu, err := resolveMenu(ctx, cfg, store)
		if err != nil {
			return err
		}

		var corrections []nlp.Correction
		if store != nil {
			corrections, err = store.Corrections.ListRecent(ctx, 0)
			if err != nil {
				return fmt.Errorf("loading corrections: %w", err)
			}
		}

		classifier := nlp.New(cfg.EngineConfig())
		lines := classifier.ClassifyOrder(text, menu, corrections)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			for _, line := range lines {
				if err := enc.Encode(line); err != nil {
					return err
				}
			}
		} else {
			printLines(lines)
		}

		if persist, _ := cmd.Flags().GetBool("store"); persist {
			if store == nil {
				return fmt.Errorf("--store requires a configured database backend")
			}
			table, _ := cmd.Flags().GetInt("table")
			ticket := models.NewTicket(table, "", text, lines, time.Now().UTC())
			if err := store.Tickets.Create(ctx, ticket); err != nil {
				return fmt.Errorf("storing ticket: %w", err)
			}
			fmt.Fprintf(os.Stderr, "stored ticket %s (%d lines)\n", ticket.ID, len(ticket.Lines))
		}
		return nil
	},
}

func readTicketText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading ticket file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no ticket text given: pass an argument, --file or pipe stdin")
	}
	return string(data), nil
}

func printLines(lines []nlp.ClassifiedLine) {
	for _, line := range lines {
		label := line.MenuName
		if label == "" {
			label = "?"
		}
		if line.Note != "" {
			label += " (" + line.Note + ")"
		}
		fmt.Printf("%-8s %5.3gx %-40s %8.2f  %s\n",
			line.Category, line.Multiplier, label,
			float64(line.LineTotalCents)/100, line.Text)
	}
}

func init() {
	classifyCmd.Flags().String("file", "", "read the ticket text from a file")
	classifyCmd.Flags().Bool("json", false, "print one JSON object per classified line")
	classifyCmd.Flags().Bool("store", false, "persist the classified ticket to the configured backend")
	classifyCmd.Flags().Int("table", 0, "table number recorded with --store")
	rootCmd.AddCommand(classifyCmd)
}
