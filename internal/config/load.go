package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "BLOGAPI"

var defaultSearchPaths = []string{".", "./config"}

var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.log_format":       "text",
	"server.static_dir":       "",
	"server.shutdown_timeout": "30s",

	"database.driver":         "sqlite",
	"database.sqlite_path":    "data/blog.db",
	"database.mongo_uri":      "",
	"database.mongo_database": "blogapi",

	"auth.mode":           "any",
	"auth.jwt_secret":     "",
	"auth.jwt_issuer":     "blog-api",
	"auth.github_api_url": "https://api.github.com",
	"auth.hash_passwords": false,
	"auth.bcrypt_cost":    12,
}

// Load builds the configuration. searchPaths replaces the default directories
// searched for config.yaml and .env.
func Load(searchPaths ...string) (*Config, error) {
	if len(searchPaths) == 0 {
		searchPaths = defaultSearchPaths
	}

	if err := loadDotEnv(searchPaths); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	// Every key has a default, so AutomaticEnv sees all of them during Unmarshal.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv loads the first .env found. Variables already in the environment win.
func loadDotEnv(searchPaths []string) error {
	for _, p := range searchPaths {
		path := filepath.Join(p, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: loading %s: %w", path, err)
		}
		return nil
	}
	return nil
}
