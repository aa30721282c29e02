package sitecms

import "github.com/goliatone/go-sitecms/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown    = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrAuditChannelRequired     = runtimeconfig.ErrAuditChannelRequired
	ErrAdminPageSizeInvalid     = runtimeconfig.ErrAdminPageSizeInvalid
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	AuditConfig   = runtimeconfig.AuditConfig
	AdminConfig   = runtimeconfig.AdminConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadEnv overlays SITECMS_* environment variables onto cfg.
func LoadEnv(cfg *Config) error {
	return runtimeconfig.LoadEnv(cfg)
}

// LoadEnvFrom is LoadEnv reading from environ instead of the process.
func LoadEnvFrom(cfg *Config, environ map[string]string) error {
	return runtimeconfig.LoadEnvFrom(cfg, environ)
}
