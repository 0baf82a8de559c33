package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkaranikas/komanda/internal/cloudwriter"
	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/dkaranikas/komanda/internal/repositories"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export captured corrections as a training CSV",
	Long: `export dumps the correction log as CSV training rows, newest first.
By default the CSV goes to stdout; --out writes a local file and --s3
uploads to an object path like bucket/corrections/2024-07.csv.`,
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

		limit, _ := cmd.Flags().GetInt("limit")
		corrections, err := store.Corrections.ListRecent(ctx, limit)
		if err != nil {
			return fmt.Errorf("loading corrections: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		s3Target, _ := cmd.Flags().GetString("s3")

		switch {
		case s3Target != "":
			bucket, key, found := strings.Cut(s3Target, "/")
			if !found || bucket == "" || key == "" {
				return fmt.Errorf("invalid --s3 target %q: want bucket/object-path", s3Target)
			}
			factory, err := cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
			if err != nil {
				return err
			}
			w, err := factory.NewWriter(bucket, key)
			if err != nil {
				return err
			}
			if err := nlp.WriteCorrectionsCSV(w, corrections); err != nil {
				return err
			}
			// Close performs the actual upload
			if err := w.Close(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "exported %d corrections to s3://%s/%s\n", len(corrections), bucket, key)

		case out != "":
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := nlp.WriteCorrectionsCSV(f, corrections); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "exported %d corrections to %s\n", len(corrections), out)

		default:
			return nlp.WriteCorrectionsCSV(os.Stdout, corrections)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "write the CSV to a local file")
	exportCmd.Flags().String("s3", "", "upload the CSV to bucket/object-path")
	exportCmd.Flags().Int("limit", 0, "export only the N most recent corrections, 0 exports all")
	rootCmd.AddCommand(exportCmd)
}
