package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Service ServiceConfig
	Theme   ThemeConfig
	Form    FormConfig
	Logging LoggingConfig
}

type ServiceConfig struct {
	Endpoint         string
	AnalyzePath      string
	Timeout          time.Duration
	ValidateContract bool
}

type ThemeConfig struct {
	Variant     string
	TemplateDir string
}

type FormConfig struct {
	SchemaPath string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads the environment, picking up a .env file in the working
// directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile reads the environment after loading path. Unlike Load, a missing
// file is an error. Variables already set in the environment win.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Endpoint:         getEnv("NUTRIFORM_ENDPOINT", "http://localhost:8000"),
			AnalyzePath:      getEnv("NUTRIFORM_ANALYZE_PATH", "/analyze"),
			Timeout:          time.Duration(getEnvInt("NUTRIFORM_TIMEOUT_SECONDS", 30)) * time.Second,
			ValidateContract: getEnvBool("NUTRIFORM_VALIDATE_CONTRACT", true),
		},
		Theme: ThemeConfig{
			Variant:     getEnv("NUTRIFORM_THEME_VARIANT", ""),
			TemplateDir: getEnv("NUTRIFORM_TEMPLATE_DIR", ""),
		},
		Form: FormConfig{
			SchemaPath: getEnv("NUTRIFORM_FORM_SCHEMA", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Service.Endpoint == "" {
		return fmt.Errorf("NUTRIFORM_ENDPOINT is required")
	}
	u, err := url.Parse(c.Service.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("NUTRIFORM_ENDPOINT must be an absolute URL, got %q", c.Service.Endpoint)
	}
	if c.Service.AnalyzePath == "" {
		return fmt.Errorf("NUTRIFORM_ANALYZE_PATH is required")
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("NUTRIFORM_TIMEOUT_SECONDS must be positive")
	}
	if c.Theme.TemplateDir != "" {
		info, err := os.Stat(c.Theme.TemplateDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("NUTRIFORM_TEMPLATE_DIR must be a directory, got %q", c.Theme.TemplateDir)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
