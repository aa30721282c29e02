package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-sitecms/internal/audit"
	"github.com/goliatone/go-sitecms/internal/catalog"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/logging/console"
	"github.com/goliatone/go-sitecms/internal/logging/gologger"
	"github.com/goliatone/go-sitecms/internal/media"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires the site CMS modules from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	ownsDB        bool
	storeOverride lifecycle.Store

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	activity       interfaces.ActivitySink
	actors         interfaces.ActorDirectory
	clock          func() time.Time
	observer       commands.Observer

	store     lifecycle.Store
	assetRepo media.AssetRepository
	mediaSvc  *media.Service
	catalog   *catalog.Catalog
	handlers  *commands.CatalogHandlers
	options   []lifecycle.Option
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an existing database handle. The container never closes
// handles it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStore overrides the record store.
func WithStore(store lifecycle.Store) Option {
	return func(c *Container) {
		c.storeOverride = store
	}
}

// WithCache overrides the default cache service used for media lookups.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivitySink overrides the audit sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activity = sink
	}
}

// WithActorDirectory supplies the account lookup used for admin views.
func WithActorDirectory(directory interfaces.ActorDirectory) Option {
	return func(c *Container) {
		c.actors = directory
	}
}

// WithCommandObserver reports every command outcome to observer.
func WithCommandObserver(observer commands.Observer) Option {
	return func(c *Container) {
		c.observer = observer
	}
}

// WithClock overrides the timestamp source for every service.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// NewContainer validates cfg and wires every module. No queries run until
// Bootstrap or a service call.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	mediaSvc, err := media.NewService(c.assetRepo, c.mediaOptions()...)
	if err != nil {
		return nil, c.closeOnError(err)
	}
	c.mediaSvc = mediaSvc

	c.configureAudit()
	c.options = c.lifecycleOptions()

	cat, err := catalog.New(c.store, c.options...)
	if err != nil {
		return nil, c.closeOnError(err)
	}
	c.catalog = cat
	c.handlers = commands.NewCatalogHandlers(cat, c.loggerProvider, c.observer)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: console.ParseLevel(cfg.Level)})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || c.storeOverride != nil {
		return nil
	}
	storage := c.Config.Storage
	if strings.EqualFold(strings.TrimSpace(storage.Provider), "memory") {
		return nil
	}
	db, err := openBunDB(storage)
	if err != nil {
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func openBunDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Dialect)) {
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sitecms storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sitecms storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		if strings.Contains(cfg.DSN, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		return db, nil
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			logging.WithError(logging.MediaLogger(c.loggerProvider), err).Warn("cache disabled")
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	switch {
	case c.bunDB != nil:
		c.store = lifecycle.NewBunStore(c.bunDB)
		c.assetRepo = media.NewBunAssetRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	default:
		c.store = lifecycle.NewMemoryStore()
		c.assetRepo = media.NewMemoryAssetRepository()
	}
	if c.storeOverride != nil {
		c.store = c.storeOverride
	}
}

func (c *Container) mediaOptions() []media.ServiceOption {
	opts := []media.ServiceOption{media.WithLogger(logging.MediaLogger(c.loggerProvider))}
	if c.clock != nil {
		opts = append(opts, media.WithClock(c.clock))
	}
	return opts
}

func (c *Container) configureAudit() {
	if c.actors == nil {
		c.actors = audit.NewStaticDirectory()
	}
	if !c.Config.Audit.Enabled {
		return
	}
	logged := audit.NewLoggerSink(logging.AuditLogger(c.loggerProvider))
	if c.activity == nil {
		c.activity = logged
		return
	}
	c.activity = audit.Fanout{logged, c.activity}
}

func (c *Container) lifecycleOptions() []lifecycle.Option {
	opts := []lifecycle.Option{
		lifecycle.WithMediaResolver(c.mediaSvc),
		lifecycle.WithActorDirectory(c.actors),
		lifecycle.WithLogger(logging.LifecycleLogger(c.loggerProvider)),
		lifecycle.WithMaxPageSize(c.Config.Admin.MaxPageSize),
	}
	if c.Config.Audit.Enabled && c.activity != nil {
		opts = append(opts, lifecycle.WithActivitySink(c.activity, c.Config.Audit.Channel))
	}
	if c.clock != nil {
		opts = append(opts, lifecycle.WithClock(c.clock))
	}
	return opts
}

// Bootstrap creates missing tables when AutoMigrate is set and loads the demo
// fixtures when Seed is set.
func (c *Container) Bootstrap(ctx context.Context) error {
	if c.bunDB != nil && c.Config.Storage.AutoMigrate {
		if err := lifecycle.CreateSchema(ctx, c.bunDB); err != nil {
			return err
		}
		if err := media.CreateSchema(ctx, c.bunDB); err != nil {
			return err
		}
	}
	if c.Config.Seed {
		report, err := catalog.Seed(ctx, c.store, c.mediaSvc, c.options...)
		if err != nil {
			return err
		}
		logging.ModuleLogger(c.loggerProvider, "sitecms.seed").Info("seed.completed", "created", report.Created, "skipped", report.Skipped)
	}
	return nil
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	c.ownsDB = false
	return c.bunDB.Close()
}

func (c *Container) closeOnError(err error) error {
	return errors.Join(err, c.Close())
}

// Catalog returns the entity services.
func (c *Container) Catalog() *catalog.Catalog {
	return c.catalog
}

// Commands returns the admin write handlers.
func (c *Container) Commands() *commands.CatalogHandlers {
	return c.handlers
}

// Media returns the media library service.
func (c *Container) Media() *media.Service {
	return c.mediaSvc
}

// Store returns the record store shared by every entity service.
func (c *Container) Store() lifecycle.Store {
	return c.store
}

// DB returns the bun handle, nil when running on the memory store.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the provider used by every module.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ActivitySink returns the audit sink, nil when auditing is disabled.
func (c *Container) ActivitySink() interfaces.ActivitySink {
	if !c.Config.Audit.Enabled {
		return nil
	}
	return c.activity
}
