package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkaranikas/komanda/internal/nlp"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// CloudStorageConfig points Parquet and CSV exports at a bucket when the
// output destination is not local.
type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	// classification engine tunables; zero values fall back to the
	// defaults baked into the nlp package
	MatchThreshold       float64        `mapstructure:"match_threshold"`
	FamilyMatchThreshold float64        `mapstructure:"family_match_threshold"`
	MeasureBonus         float64        `mapstructure:"measure_bonus"`
	PortionPenalty       float64        `mapstructure:"portion_penalty"`
	StemRules            []nlp.StemRule `mapstructure:"stem_rules"`

	// menu source: file fallback when no database backend holds a version
	MenuFile string `mapstructure:"menu_file"`

	// persistence backend: "" (none), "sqlite" or "postgres"
	DatabaseBackend string `mapstructure:"database_backend"`
	DatabaseURL     string `mapstructure:"database_url"`
	SQLitePath      string `mapstructure:"sqlite_path"`

	// service simulation
	Seed           int64     `mapstructure:"seed"`
	StartDate      time.Time `mapstructure:"start_date"`
	EndDate        time.Time `mapstructure:"end_date"`
	Tables         int       `mapstructure:"tables"`
	Waiters        int       `mapstructure:"waiters"`
	SeatingRate    float64   `mapstructure:"seating_rate"` // tables seated per hour at baseline
	WeekendFactor  float64   `mapstructure:"weekend_factor"`
	TypoRate       float64   `mapstructure:"typo_rate"`
	OffMenuRate    float64   `mapstructure:"off_menu_rate"`
	AmendRate      float64   `mapstructure:"amend_rate"`
	CorrectionRate float64   `mapstructure:"correction_rate"`
	Continuous     bool      `mapstructure:"continuous"`

	// output sinks
	KafkaEnabled      bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`
	KafkaTopicPrefix  string             `mapstructure:"kafka_topic_prefix"`
	SessionTimeoutMs  int                `mapstructure:"kafka_session_timeout_ms"`
	OutputFormat      string             `mapstructure:"output_format"` // json, csv or parquet
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputDestination string             `mapstructure:"output_destination"` // local or s3
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper.
// Environment variables prefixed KOMANDA_ override file values.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.SetEnvPrefix("komanda")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// running without a config file is fine unless one was asked for
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("menu_file", "examples/menu.json")
	viper.SetDefault("sqlite_path", "komanda.db")
	viper.SetDefault("start_date", time.Now().Format(time.RFC3339))
	viper.SetDefault("end_date", time.Now().Add(6*time.Hour).Format(time.RFC3339))
	viper.SetDefault("tables", 20)
	viper.SetDefault("waiters", 4)
	viper.SetDefault("seating_rate", 8.0)
	viper.SetDefault("weekend_factor", 1.4)
	viper.SetDefault("typo_rate", 0.15)
	viper.SetDefault("off_menu_rate", 0.05)
	viper.SetDefault("amend_rate", 0.2)
	viper.SetDefault("correction_rate", 0.25)
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("output_folder", "komanda_output")
	viper.SetDefault("output_destination", "local")
}

// EngineConfig copies the engine tunables into the immutable configuration
// the classifier is constructed from.
func (cfg *Config) EngineConfig() nlp.Config {
	return nlp.Config{
		MatchThreshold:       cfg.MatchThreshold,
		FamilyMatchThreshold: cfg.FamilyMatchThreshold,
		MeasureBonus:         cfg.MeasureBonus,
		PortionPenalty:       cfg.PortionPenalty,
		StemRules:            cfg.StemRules,
	}
}
