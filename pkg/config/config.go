package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Season data
	DataRoots []string `mapstructure:"DATA_ROOTS"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// External FPL API
	FPLBaseURL              string        `mapstructure:"FPL_BASE_URL"`
	FPLRateLimit            int           `mapstructure:"FPL_RATE_LIMIT"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	GWSummaryBatchSize      int           `mapstructure:"GW_SUMMARY_BATCH_SIZE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATA_ROOTS", "data")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("FPL_BASE_URL", "https://fantasy.premierleague.com/api")
	viper.SetDefault("FPL_RATE_LIMIT", 5)              // requests per second
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")    // conservative timeout
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)   // open after 5 consecutive failures
	viper.SetDefault("GW_SUMMARY_BATCH_SIZE", 10)      // parallel history fetches per batch

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse comma-separated lists
	if rootsStr := viper.GetString("DATA_ROOTS"); rootsStr != "" {
		config.DataRoots = strings.Split(rootsStr, ",")
	}
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
