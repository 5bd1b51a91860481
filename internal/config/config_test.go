package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "mysql"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `database.driver must be "sqlite" or "postgres", got "mysql"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Database: DatabaseConfig{Driver: DriverPostgres}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing postgres dsn")
	}
}

func TestValidate_Tokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []TokenConfig
		errSub string
	}{
		{"valid", []TokenConfig{{Token: "a", UserID: "u1", Role: "user"}, {Token: "b", UserID: "r1", Role: "recruiter"}}, ""},
		{"empty token", []TokenConfig{{UserID: "u1", Role: "user"}}, "token is required"},
		{"no user", []TokenConfig{{Token: "a", Role: "user"}}, "user_id is required"},
		{"bad role", []TokenConfig{{Token: "a", UserID: "u1", Role: "guest"}}, "role must be"},
		{"duplicate", []TokenConfig{{Token: "a", UserID: "u1", Role: "user"}, {Token: "a", UserID: "u2", Role: "admin"}}, "duplicated"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Auth.Tokens = tc.tokens
			err := cfg.Validate()
			if tc.errSub == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Fatalf("err = %v, want substring %q", err, tc.errSub)
			}
		})
	}
}

func TestValidate_DefaultAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Match.DefaultTopN = 30

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default_top_n > max_top_n")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected Driver=sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "resumatch.db" {
		t.Errorf("expected DSN=resumatch.db, got %q", cfg.Database.DSN)
	}
	if cfg.Cache.IdempotencyTTLSec != 86400 {
		t.Errorf("expected IdempotencyTTLSec=86400, got %d", cfg.Cache.IdempotencyTTLSec)
	}
	if cfg.Search.DefaultK != 10 || cfg.Search.MaxK != 100 || cfg.Search.SnippetsPerResult != 3 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Match.DefaultTopN != 10 || cfg.Match.MaxTopN != 20 {
		t.Errorf("unexpected match defaults: %+v", cfg.Match)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("expected MaxBytes=10MiB, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.RateLimit.RequestsPerSecond != 0 || cfg.RateLimit.Burst != 0 {
		t.Errorf("rate limiting must stay disabled by default: %+v", cfg.RateLimit)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache must be disabled without addrs")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{Driver: DriverPostgres, DSN: "postgres://x", MaxOpenConns: 3},
		RateLimit: RateLimitConfig{RequestsPerSecond: 2.5},
		Search:    SearchConfig{DefaultK: 5, MaxK: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.DSN != "postgres://x" || cfg.Database.MaxOpenConns != 3 {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.RateLimit.Burst != 2 {
		t.Errorf("expected derived Burst=2, got %d", cfg.RateLimit.Burst)
	}
	if cfg.Search.DefaultK != 5 || cfg.Search.MaxK != 50 {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("RESUMATCH_TEST_PORT", "9091")
	t.Setenv("RESUMATCH_TEST_TOKEN", "secret")

	yml := `
http:
  port: ${RESUMATCH_TEST_PORT}
database:
  driver: ${RESUMATCH_TEST_DRIVER:-sqlite}
  dsn: ":memory:"
auth:
  tokens:
    - token: ${RESUMATCH_TEST_TOKEN}
      user_id: alice
      role: recruiter
`
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9091 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if len(cfg.Auth.Tokens) != 1 || cfg.Auth.Tokens[0].Token != "secret" {
		t.Errorf("Tokens = %+v", cfg.Auth.Tokens)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
