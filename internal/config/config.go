// Package config loads the scangate YAML configuration by environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the scangate configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Notion  NotionConfig  `yaml:"notion"`
	Scan    ScanConfig    `yaml:"scan"`
	CORS    CORSConfig    `yaml:"cors"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// NotionConfig holds upstream Notion API settings.
type NotionConfig struct {
	Token      string `yaml:"token"`
	BaseURL    string `yaml:"base_url"`    // default: https://api.notion.com
	APIVersion string `yaml:"api_version"` // default: 2022-06-28
	TimeoutSec int    `yaml:"timeout_sec"`
}

// ScanConfig holds scan flow settings.
type ScanConfig struct {
	// AttendanceProperty is the checkbox property name set on a successful scan.
	AttendanceProperty string `yaml:"attendance_property"`
	// SearchCap bounds the search window the match resolver inspects.
	// Duplicate titles beyond the cap are invisible to the resolver.
	SearchCap int `yaml:"search_cap"`
}

// CORSConfig holds origin restriction settings.
type CORSConfig struct {
	// AllowedOrigin is the single origin allowed to call the API.
	// Empty means open access.
	AllowedOrigin string `yaml:"allowed_origin"`
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = "https://api.notion.com"
	}
	if c.Notion.APIVersion == "" {
		c.Notion.APIVersion = "2022-06-28"
	}
	if c.Notion.TimeoutSec <= 0 {
		c.Notion.TimeoutSec = 20
	}
	if c.Scan.SearchCap <= 0 {
		c.Scan.SearchCap = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if strings.TrimSpace(c.Notion.Token) == "" {
		return fmt.Errorf("notion.token is required")
	}
	if strings.TrimSpace(c.Scan.AttendanceProperty) == "" {
		return fmt.Errorf("scan.attendance_property is required")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
