package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	DatabaseURL    string
	LogLevel       zerolog.Level
	AutoMigrate    bool
	SeedDemo       bool
	MetricsEnabled bool
}

// Load reads configuration from the environment. When CONFIG_FILE is set its
// values are used for keys missing from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("METRICS_ENABLED", true)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	level, err := zerolog.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	port := v.GetString("APP_PORT")
	if port == "" {
		return Config{}, fmt.Errorf("APP_PORT must not be empty")
	}

	return Config{
		Port:           port,
		DatabaseURL:    v.GetString("DATABASE_URL"),
		LogLevel:       level,
		AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
		SeedDemo:       v.GetBool("SEED_DEMO"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
	}, nil
}

// Persistent reports whether organizations are stored in a database.
func (c Config) Persistent() bool {
	return c.DatabaseURL != ""
}
