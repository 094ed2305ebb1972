package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds server settings
type Config struct {
	Addr           string   `yaml:"addr" json:"addr"`
	DatabaseDriver string   `yaml:"database_driver" json:"database_driver"` // sqlite or postgres; inferred from the URL when empty
	DatabaseURL    string   `yaml:"database_url" json:"database_url"`       // sqlite file path or postgres:// URL
	CORSOrigins    []string `yaml:"cors_origins" json:"cors_origins"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"` // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`

	Diagram Diagram `yaml:"diagram" json:"diagram"`
}

// Diagram configures the text-to-diagram backend
type Diagram struct {
	Provider string `yaml:"provider" json:"provider"` // openai (default) or anthropic
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"api_key" json:"-"`
}

// DefaultPath is read when CATALYST_CONFIG is not set
const DefaultPath = "catalyst.yaml"

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8000",
		DatabaseURL: "catalyst.db",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
		LogLevel:    "INFO",
		LogConsole:  true,
	}
}

// Load builds the configuration from defaults, a .env file, the YAML file
// and the environment, each overriding the previous one.
func Load() (*Config, error) {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	path := os.Getenv("CATALYST_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile reads the YAML file at path, if it exists, and applies
// environment overrides
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.DatabaseDriver = getEnv("DATABASE_DRIVER", c.DatabaseDriver)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.LogLevel = getEnv("CATALYST_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("CATALYST_LOG_FILE", c.LogFile)
	if v := os.Getenv("CATALYST_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true" || v == "1"
	}

	c.Diagram.Provider = getEnv("DIAGRAM_PROVIDER", c.Diagram.Provider)
	c.Diagram.BaseURL = getEnv("DIAGRAM_BASE_URL", c.Diagram.BaseURL)
	c.Diagram.Model = getEnv("DIAGRAM_MODEL", c.Diagram.Model)
	if c.Diagram.APIKey == "" {
		if strings.EqualFold(c.Diagram.Provider, "anthropic") {
			c.Diagram.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		} else {
			c.Diagram.APIKey = os.Getenv("NVIDIA_API_KEY")
		}
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
