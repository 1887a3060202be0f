package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like AI_API_KEY, STORE_DATABASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "carmarket-api")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 120)

	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.timeout", 60)
	v.SetDefault("ai.rate_limit", 3)
	v.SetDefault("ai.rate_burst", 5)

	v.SetDefault("store.timeout", 15)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 900)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load .env from multiple possible locations (for running from different directories)
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Direct override if config values are still empty after viper's env binding.
func overrideEmptyConfig(cfg *Config) {
	if cfg.AI.APIKey == "" {
		if val := os.Getenv("AI_API_KEY"); val != "" {
			cfg.AI.APIKey = val
		}
	}
	if cfg.AI.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.AI.APIKey = val
		}
	}
	if cfg.Store.DatabaseURL == "" {
		if val := os.Getenv("STORE_DATABASE_URL"); val != "" {
			cfg.Store.DatabaseURL = val
		}
	}
	if cfg.Store.APIKey == "" {
		if val := os.Getenv("STORE_API_KEY"); val != "" {
			cfg.Store.APIKey = val
		}
	}
	if cfg.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Redis.Address = val
		}
	}
	if cfg.App.CatalogPath == "" {
		if val := os.Getenv("CATALOG_PATH"); val != "" {
			cfg.App.CatalogPath = val
		}
	}
}
