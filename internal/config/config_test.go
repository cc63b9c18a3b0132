package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: time.Second,
			RequestTimeout:  time.Second,
			MaxBodyBytes:    1024,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Columns: ColumnsConfig{CatalogPath: "columns.yaml", DefaultTrim: "whitespace"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.MaxBodyBytes != 1048576 {
		t.Errorf("Server.MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, 1048576)
	}
	if cfg.Columns.CatalogPath != "columns.yaml" {
		t.Errorf("Columns.CatalogPath = %q, want %q", cfg.Columns.CatalogPath, "columns.yaml")
	}
	if cfg.Columns.DefaultTrim != "whitespace" {
		t.Errorf("Columns.DefaultTrim = %q, want %q", cfg.Columns.DefaultTrim, "whitespace")
	}
	if cfg.Server.RateLimit != 600 {
		t.Errorf("Server.RateLimit = %d, want %d", cfg.Server.RateLimit, 600)
	}
	if cfg.Columns.DefaultNullValues != nil {
		t.Errorf("Columns.DefaultNullValues = %q, want nil", cfg.Columns.DefaultNullValues)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COLUMNS_DEFAULT_CULTURE", "de-DE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Columns.DefaultCulture != "de-DE" {
		t.Errorf("Columns.DefaultCulture = %q, want %q", cfg.Columns.DefaultCulture, "de-DE")
	}
}

func TestLoad_PrefixWins(t *testing.T) {
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("FLATFILES_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("CATALOG_PATH", "/etc/flatfiles/columns.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Columns.CatalogPath != "/etc/flatfiles/columns.json" {
		t.Errorf("Columns.CatalogPath = %q, want %q", cfg.Columns.CatalogPath, "/etc/flatfiles/columns.json")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Server.RequestTimeout != 90*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want %v", cfg.Server.RequestTimeout, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedNullTokens(t *testing.T) {
	t.Setenv("COLUMNS_DEFAULT_NULL", "NULL, ,n/a")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"NULL", "", "n/a"}
	if len(cfg.Columns.DefaultNullValues) != len(expected) {
		t.Fatalf("DefaultNullValues length = %d, want %d", len(cfg.Columns.DefaultNullValues), len(expected))
	}
	for i, v := range expected {
		if cfg.Columns.DefaultNullValues[i] != v {
			t.Errorf("DefaultNullValues[%d] = %q, want %q", i, cfg.Columns.DefaultNullValues[i], v)
		}
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "192.168.0.0/16"}
	if len(cfg.Server.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Server.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Server.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Server.TrustedProxies[i], v)
		}
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error %q should name SERVER_PORT", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "SERVER_SHUTDOWN_TIMEOUT"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "SERVER_MAX_BODY_BYTES"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "SERVER_RATE_LIMIT"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"unknown culture", func(c *Config) { c.Columns.DefaultCulture = "xx-YY" }, "COLUMNS_DEFAULT_CULTURE"},
		{"bad trim", func(c *Config) { c.Columns.DefaultTrim = "chars" }, "COLUMNS_DEFAULT_TRIM"},
		{"empty catalog", func(c *Config) { c.Columns.CatalogPath = "" }, "COLUMNS_CATALOG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if strings.Count(err.Error(), "\n  - ") != 2 {
		t.Errorf("Validate() error = %q, want two listed failures", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := c.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:9000")
	}
	c.Host = ""
	if got := c.Addr(); got != ":9000" {
		t.Errorf("Addr() = %q, want %q", got, ":9000")
	}
}

func TestLookup(t *testing.T) {
	env := map[string]string{"A": "bare", "FLATFILES_B": "prefixed", "C": ""}
	fn := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	if got := lookup(fn, "A"); got != "bare" {
		t.Errorf("lookup(A) = %q", got)
	}
	if got := lookup(fn, "B"); got != "prefixed" {
		t.Errorf("lookup(B) = %q", got)
	}
	if got := lookup(fn, "C", "A"); got != "bare" {
		t.Errorf("lookup(C, A) = %q, want alternate", got)
	}
	if got := lookup(fn, "Z", ""); got != "" {
		t.Errorf("lookup(Z) = %q, want empty", got)
	}
}

func TestLoad_ReportsEveryBadValue(t *testing.T) {
	env := map[string]string{
		"SERVER_PORT":         "eighty",
		"SERVER_IDLE_TIMEOUT": "forever",
	}
	_, err := load(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil {
		t.Fatal("load() expected error")
	}
	for _, name := range []string{"SERVER_PORT", "SERVER_IDLE_TIMEOUT"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should name %s", err, name)
		}
	}
}
