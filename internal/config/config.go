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

// Supported relational drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the resumatch API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Search     SearchConfig     `yaml:"search"`
	Match      MatchConfig      `yaml:"match"`
	Upload     UploadConfig     `yaml:"upload"`
	Pagination PaginationConfig `yaml:"pagination"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	Tokens []TokenConfig `yaml:"tokens"`
}

// TokenConfig maps a bearer token to a caller identity.
type TokenConfig struct {
	Token  string `yaml:"token"`
	UserID string `yaml:"user_id"`
	Role   string `yaml:"role"` // user, recruiter, admin
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"` // sqlite, postgres (default: sqlite)
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// CacheConfig holds the idempotency cache settings. Empty Addrs disables the cache.
type CacheConfig struct {
	Addrs             []string `yaml:"addrs"`
	Password          string   `yaml:"password"`
	KeyPrefix         string   `yaml:"key_prefix"`
	IdempotencyTTLSec int      `yaml:"idempotency_ttl_sec"`
	ReadinessTimeout  int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a cache server is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// RateLimitConfig holds per-caller token bucket settings. Zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// SearchConfig holds free-text search limits.
type SearchConfig struct {
	DefaultK          int `yaml:"default_k"`
	MaxK              int `yaml:"max_k"`
	SnippetsPerResult int `yaml:"snippets_per_result"`
}

// MatchConfig holds job matching limits.
type MatchConfig struct {
	DefaultTopN int `yaml:"default_top_n"`
	MaxTopN     int `yaml:"max_top_n"`
}

// UploadConfig holds resume upload limits.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// PaginationConfig holds list endpoint limits.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
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
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.DSN == "" && c.Database.Driver == DriverSQLite {
		c.Database.DSN = "resumatch.db"
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "resumatch:"
	}
	if c.Cache.IdempotencyTTLSec <= 0 {
		c.Cache.IdempotencyTTLSec = 86400
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = max(1, int(c.RateLimit.RequestsPerSecond))
	}
	if c.Search.DefaultK <= 0 {
		c.Search.DefaultK = 10
	}
	if c.Search.MaxK <= 0 {
		c.Search.MaxK = 100
	}
	if c.Search.SnippetsPerResult <= 0 {
		c.Search.SnippetsPerResult = 3
	}
	if c.Match.DefaultTopN <= 0 {
		c.Match.DefaultTopN = 10
	}
	if c.Match.MaxTopN <= 0 {
		c.Match.MaxTopN = 20
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = 10 << 20
	}
	if c.Pagination.DefaultLimit <= 0 {
		c.Pagination.DefaultLimit = 20
	}
	if c.Pagination.MaxLimit <= 0 {
		c.Pagination.MaxLimit = 100
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be >= 0")
	}
	if c.Search.DefaultK > c.Search.MaxK {
		return fmt.Errorf("search.default_k (%d) exceeds search.max_k (%d)", c.Search.DefaultK, c.Search.MaxK)
	}
	if c.Match.DefaultTopN > c.Match.MaxTopN {
		return fmt.Errorf("match.default_top_n (%d) exceeds match.max_top_n (%d)", c.Match.DefaultTopN, c.Match.MaxTopN)
	}
	return c.validateTokens()
}

func (c *Config) validateTokens() error {
	seen := make(map[string]bool, len(c.Auth.Tokens))
	for i, t := range c.Auth.Tokens {
		if t.Token == "" {
			return fmt.Errorf("auth.tokens[%d].token is required", i)
		}
		if t.UserID == "" {
			return fmt.Errorf("auth.tokens[%d].user_id is required", i)
		}
		switch t.Role {
		case "user", "recruiter", "admin":
		default:
			return fmt.Errorf("auth.tokens[%d].role must be user, recruiter or admin, got %q", i, t.Role)
		}
		if seen[t.Token] {
			return fmt.Errorf("auth.tokens[%d].token is duplicated", i)
		}
		seen[t.Token] = true
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
