package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Remote    RemoteConfig    `yaml:"remote"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// RemoteConfig points at the optional Postgres mirror. An empty DatabaseURL
// disables remote sync entirely.
type RemoteConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

// AuthConfig points at the external authentication service. Disabled means
// the tracker runs local-only with no owner scoping.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional .env file, an optional YAML file,
// and environment variables, in increasing precedence.
func Load() (Config, error) {
	// Missing .env is fine; it only seeds the environment.
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "invotrack.db",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("INVOTRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("INVOTRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("INVOTRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INVOTRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("INVOTRACK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if dbURL := os.Getenv("INVOTRACK_REMOTE_DATABASE_URL"); dbURL != "" {
		cfg.Remote.DatabaseURL = dbURL
	}
	if enabled := os.Getenv("INVOTRACK_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INVOTRACK_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if url := os.Getenv("INVOTRACK_AUTH_URL"); url != "" {
		cfg.Auth.URL = url
	}
	if key := os.Getenv("INVOTRACK_AUTH_API_KEY"); key != "" {
		cfg.Auth.APIKey = key
	}
	if mode := os.Getenv("INVOTRACK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("INVOTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Transport.Mode != "http" && cfg.Transport.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid transport mode %q", cfg.Transport.Mode)
	}
	if cfg.Auth.Enabled && cfg.Auth.URL == "" {
		return Config{}, fmt.Errorf("auth enabled but INVOTRACK_AUTH_URL is not set")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
