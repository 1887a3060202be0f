package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Store   StoreConfig   `mapstructure:"store"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	CatalogPath string `mapstructure:"catalog_path"` // empty uses the built-in seed inventory
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int `mapstructure:"write_timeout"` // seconds
}

// AIConfig holds settings for the schema-constrained generation client.
type AIConfig struct {
	BaseURL     string  `mapstructure:"base_url"` // empty means the provider default
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"`    // seconds, per generation call
	RateLimit   float64 `mapstructure:"rate_limit"` // requests per second
	RateBurst   int     `mapstructure:"rate_burst"`
}

// StoreConfig holds settings for the remote key-value record store.
type StoreConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
	APIKey      string `mapstructure:"api_key"`
	Timeout     int    `mapstructure:"timeout"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"` // empty disables the extraction cache
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required (set AI_API_KEY)")
	}
	if cfg.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	return nil
}
