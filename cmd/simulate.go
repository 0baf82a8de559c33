package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkaranikas/komanda/internal/repositories"
	"github.com/dkaranikas/komanda/internal/simulator"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a simulated service window of ticket traffic",
	Long: `simulate replays a taverna service: parties get seated following the
lunch and dinner rush curves, waiters key in menu-grounded order lines
with typos and shorthand, tickets get amended and corrected, tables
close. Every event is classified and written to the configured output
destination (console, JSON, CSV, Parquet or Kafka).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

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

		sim := simulator.NewSimulator(cfg, menu)
		return sim.Run()
	},
}

func init() {
	simulateCmd.Flags().Int64("seed", 0, "random seed, 0 derives one from the clock")
	simulateCmd.Flags().String("start-date", time.Now().Format(time.RFC3339), "simulation window start (RFC3339)")
	simulateCmd.Flags().String("end-date", time.Now().Add(6*time.Hour).Format(time.RFC3339), "simulation window end (RFC3339)")
	simulateCmd.Flags().Int("tables", 20, "number of tables on the floor")
	simulateCmd.Flags().Int("waiters", 4, "number of waiters on shift")
	simulateCmd.Flags().Float64("seating-rate", 8.0, "parties seated per hour at peak")
	simulateCmd.Flags().Bool("kafka-enabled", false, "publish events to Kafka")
	simulateCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	simulateCmd.Flags().String("output-path", "", "base path for file outputs, empty prints to the console")
	simulateCmd.Flags().String("output-format", "json", "file output format: json, csv or parquet")
	simulateCmd.Flags().Bool("continuous", false, "pace the simulation in real time, one second per simulated minute")

	viper.BindPFlag("seed", simulateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("start_date", simulateCmd.Flags().Lookup("start-date"))
	viper.BindPFlag("end_date", simulateCmd.Flags().Lookup("end-date"))
	viper.BindPFlag("tables", simulateCmd.Flags().Lookup("tables"))
	viper.BindPFlag("waiters", simulateCmd.Flags().Lookup("waiters"))
	viper.BindPFlag("seating_rate", simulateCmd.Flags().Lookup("seating-rate"))
	viper.BindPFlag("kafka_enabled", simulateCmd.Flags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", simulateCmd.Flags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_path", simulateCmd.Flags().Lookup("output-path"))
	viper.BindPFlag("output_format", simulateCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("continuous", simulateCmd.Flags().Lookup("continuous"))

	rootCmd.AddCommand(simulateCmd)
}
