package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-sitecms/internal/locale"
)

// EnvPrefix namespaces every environment variable read by LoadEnv.
const EnvPrefix = "SITECMS_"

var ErrStorageProviderUnknown = errors.New("sitecms config: storage provider is invalid")
var ErrStorageDialectUnknown = errors.New("sitecms config: storage dialect is invalid")
var ErrStorageDSNRequired = errors.New("sitecms config: storage dsn is required for postgres")
var ErrCacheTTLInvalid = errors.New("sitecms config: cache ttl must be positive when cache is enabled")
var ErrLoggingProviderRequired = errors.New("sitecms config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("sitecms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitecms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitecms config: logging format is invalid")
var ErrAuditChannelRequired = errors.New("sitecms config: audit channel is required when audit is enabled")
var ErrAdminPageSizeInvalid = errors.New("sitecms config: admin page sizes must be zero or positive")
var ErrDefaultLocaleUnsupported = errors.New("sitecms config: default locale must be the built-in default")

// Config aggregates storage, logging and admin settings for the site CMS.
type Config struct {
	DefaultLocale string        `env:"DEFAULT_LOCALE"`
	Storage       StorageConfig `envPrefix:"STORAGE_"`
	Cache         CacheConfig   `envPrefix:"CACHE_"`
	Logging       LoggingConfig `envPrefix:"LOG_"`
	Audit         AuditConfig   `envPrefix:"AUDIT_"`
	Admin         AdminConfig   `envPrefix:"ADMIN_"`
	Seed          bool          `env:"SEED"`
}

// StorageConfig selects the record store.
type StorageConfig struct {
	// Provider is "bun" or "memory".
	Provider string `env:"PROVIDER"`
	// Dialect is "sqlite" or "postgres" when Provider is "bun".
	Dialect string `env:"DIALECT"`
	DSN     string `env:"DSN"`
	// AutoMigrate creates missing tables on startup.
	AutoMigrate bool `env:"AUTO_MIGRATE"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `env:"ENABLED"`
	DefaultTTL time.Duration `env:"TTL"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS" envSeparator:","`
}

// AuditConfig controls activity emission.
type AuditConfig struct {
	Enabled bool   `env:"ENABLED"`
	Channel string `env:"CHANNEL"`
}

// AdminConfig controls admin listings. MaxPageSize zero leaves page sizes
// unbounded.
type AdminConfig struct {
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE"`
}

// DefaultConfig returns defaults suited to a single-node deployment backed by
// SQLite.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Storage: StorageConfig{
			Provider:    "bun",
			Dialect:     "sqlite",
			DSN:         "file:sitecms?mode=memory&cache=shared&_fk=1",
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Audit: AuditConfig{
			Enabled: true,
			Channel: "sitecms",
		},
		Admin: AdminConfig{
			DefaultPageSize: 20,
		},
	}
}

// LoadEnv overlays SITECMS_* environment variables onto cfg. Unset variables
// leave the existing values untouched.
func LoadEnv(cfg *Config) error {
	return loadEnv(cfg, env.Options{Prefix: EnvPrefix})
}

// LoadEnvFrom behaves like LoadEnv but reads from environ instead of the
// process environment.
func LoadEnvFrom(cfg *Config, environ map[string]string) error {
	return loadEnv(cfg, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func loadEnv(cfg *Config, opts env.Options) error {
	if cfg == nil {
		return errors.New("sitecms config: nil config")
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("sitecms config: parse env: %w", err)
	}
	return nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if code := strings.TrimSpace(cfg.DefaultLocale); code != "" {
		if parsed, err := locale.Lookup(code); err != nil || parsed != locale.Default {
			return fmt.Errorf("%w: %q", ErrDefaultLocaleUnsupported, cfg.DefaultLocale)
		}
	}
	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case "bun":
		switch normalize(cfg.Storage.Dialect) {
		case "sqlite":
		case "postgres":
			if strings.TrimSpace(cfg.Storage.DSN) == "" {
				return ErrStorageDSNRequired
			}
		default:
			return fmt.Errorf("%w: %q", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: %q", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}

	logProvider := normalize(cfg.Logging.Provider)
	if logProvider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(logProvider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if logProvider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if cfg.Audit.Enabled && strings.TrimSpace(cfg.Audit.Channel) == "" {
		return ErrAuditChannelRequired
	}
	if cfg.Admin.DefaultPageSize < 0 || cfg.Admin.MaxPageSize < 0 {
		return ErrAdminPageSizeInvalid
	}
	if cfg.Admin.MaxPageSize > 0 && cfg.Admin.DefaultPageSize > cfg.Admin.MaxPageSize {
		return fmt.Errorf("%w: default %d exceeds max %d", ErrAdminPageSizeInvalid, cfg.Admin.DefaultPageSize, cfg.Admin.MaxPageSize)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
