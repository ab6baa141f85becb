package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // "sqlite3" or "postgres"
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret  string `yaml:"jwt_secret"`
		TokenHours int    `yaml:"token_hours"`
		AdminEmail string `yaml:"admin_email"`
		AdminPass  string `yaml:"admin_password"`
	} `yaml:"auth"`
	LogLevel string `yaml:"log_level"`
}

// Load reads configuration from a YAML file, applying defaults for anything
// left unset. A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides for deployment secrets
	if secret := os.Getenv("BAKEHOUSE_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if dsn := os.Getenv("BAKEHOUSE_DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if driver := os.Getenv("BAKEHOUSE_DATABASE_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "bakehouse.db"
	cfg.Auth.JWTSecret = "change-me"
	cfg.Auth.TokenHours = 24
	cfg.Auth.AdminEmail = "admin@rfb.com"
	cfg.Auth.AdminPass = "admin123"
	cfg.LogLevel = "info"
	return cfg
}
