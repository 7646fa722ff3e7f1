package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLOCK_AUTH_JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("CLOCK_AUTH_ADMIN_PASSWORD", "kiosk-admin")
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLOCK_STORE_BACKEND", "postgres")
	t.Setenv("CLOCK_CLOCK_TIMEZONE", "Asia/Manila")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Backend != StorePostgres {
		t.Errorf("backend = %q, want postgres", cfg.Store.Backend)
	}
	if cfg.Store.CommitWait != 3*time.Second {
		t.Errorf("commit_wait = %v, want 3s", cfg.Store.CommitWait)
	}
	if cfg.Store.ListCap != 10000 {
		t.Errorf("list_cap = %d, want 10000", cfg.Store.ListCap)
	}
	if !cfg.Clock.RequireName {
		t.Error("require_name should default to true")
	}
	loc, err := cfg.Clock.Location()
	if err != nil || loc.String() != "Asia/Manila" {
		t.Errorf("location = %v, %v", loc, err)
	}
	if !cfg.Clock.HasCategory("AA") || !cfg.Clock.HasCategory("TRAINING") || cfg.Clock.HasCategory("aa") {
		t.Errorf("categories = %v", cfg.Clock.Categories)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("CLOCK_AUTH_ADMIN_PASSWORD", "kiosk-admin")
	if _, err := Load(""); err == nil {
		t.Error("expected an error without auth.jwt_secret")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	setRequiredEnv(t)
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected an error for an explicit missing file")
	}
}

func TestLoad_SmallListCap(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLOCK_STORE_LIST_CAP", "5")
	if _, err := Load(""); err == nil {
		t.Error("expected an error for store.list_cap below the minimum")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Auth:   AuthConfig{JWTSecret: "0123456789abcdef", AdminPasswordHash: "$2a$10$x"},
			Store:  StoreConfig{Backend: StoreLocal, ListCap: MinListCap},
			Clock:  ClockConfig{Categories: []string{"AA"}, Timezone: "UTC"},
		}
	}

	good := base()
	if err := good.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"port":       func(c *Config) { c.Server.Port = 0 },
		"secret":     func(c *Config) { c.Auth.JWTSecret = "short" },
		"password":   func(c *Config) { c.Auth.AdminPasswordHash = "" },
		"backend":    func(c *Config) { c.Store.Backend = "sqlite" },
		"list_cap":   func(c *Config) { c.Store.ListCap = 9999 },
		"no_cap":     func(c *Config) { c.Store.ListCap = 0 },
		"categories": func(c *Config) { c.Clock.Categories = nil },
		"timezone":   func(c *Config) { c.Clock.Timezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		c := base()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}
