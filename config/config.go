package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // clock.timezone and ?tz= on hosts without zoneinfo

	"github.com/spf13/viper"
)

// Config holds the whole application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Clock     ClockConfig     `mapstructure:"clock"`
	Report    ReportConfig    `mapstructure:"report"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	CORS         CORSConfig `mapstructure:"cors"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings for the remote row-store
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig administrator authentication
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenTTL    time.Duration `mapstructure:"access_token_ttl"`
	AdminPassword     string        `mapstructure:"admin_password"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Store backends
const (
	StoreLocal    = "local"
	StorePostgres = "postgres"
	StoreSynced   = "synced"
)

// MinListCap smallest store.list_cap accepted; reports must see at least
// this many rows per category.
const MinListCap = 10000

// StoreConfig selects and tunes the persistence backend.
type StoreConfig struct {
	Backend    string        `mapstructure:"backend"`     // local | postgres | synced
	LocalPath  string        `mapstructure:"local_path"`  // empty keeps the local store in memory only
	ListCap    int           `mapstructure:"list_cap"`    // newest rows visible per category
	CommitWait time.Duration `mapstructure:"commit_wait"` // how long a punch waits for its remote commit
}

// ClockConfig attendance behaviour
type ClockConfig struct {
	Categories          []string `mapstructure:"categories"`
	DefaultCategory     string   `mapstructure:"default_category"`
	Timezone            string   `mapstructure:"timezone"`
	RequireName         bool     `mapstructure:"require_name"` // used until a setting is saved
	ExportIncludeJacket bool     `mapstructure:"export_include_jacket"`
}

// ReportConfig report building switches
type ReportConfig struct {
	SplitAnonymous bool `mapstructure:"split_anonymous"`
}

// RateLimitConfig per-IP throttling, enforced only when Redis is available
type RateLimitConfig struct {
	Punches int           `mapstructure:"punches"`
	Logins  int           `mapstructure:"logins"`
	Window  time.Duration `mapstructure:"window"`
}

// Load reads configuration.
// Precedence: environment > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.max_body_bytes", 10<<20)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "timeclock")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Manila")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.admin_password_hash", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("store.backend", StoreLocal)
	v.SetDefault("store.local_path", "data/timeclock.json")
	v.SetDefault("store.list_cap", MinListCap)
	v.SetDefault("store.commit_wait", "3s")

	v.SetDefault("clock.categories", []string{"AA", "TRAINING"})
	v.SetDefault("clock.default_category", "AA")
	v.SetDefault("clock.timezone", "Local")
	v.SetDefault("clock.require_name", true)
	v.SetDefault("clock.export_include_jacket", true)

	v.SetDefault("report.split_anonymous", false)

	v.SetDefault("rate_limit.punches", 10)
	v.SetDefault("rate_limit.logins", 5)
	v.SetDefault("rate_limit.window", "1m")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("CLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("config: one of auth.admin_password or auth.admin_password_hash is required")
	}
	switch c.Store.Backend {
	case StoreLocal, StorePostgres, StoreSynced:
	default:
		return fmt.Errorf("config: unknown store.backend %q", c.Store.Backend)
	}
	if c.Store.ListCap < MinListCap {
		return fmt.Errorf("config: store.list_cap must be at least %d", MinListCap)
	}
	if len(c.Clock.Categories) == 0 {
		return fmt.Errorf("config: clock.categories must not be empty")
	}
	if _, err := c.Clock.Location(); err != nil {
		return fmt.Errorf("config: clock.timezone: %w", err)
	}
	return nil
}

// Location resolves the configured viewer timezone.
func (c *ClockConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// HasCategory reports whether name is one of the configured categories.
func (c *ClockConfig) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}
