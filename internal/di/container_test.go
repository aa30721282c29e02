package di

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-sitecms/internal/audit"
	"github.com/goliatone/go-sitecms/internal/catalog"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/internal/logging/console"
	"github.com/goliatone/go-sitecms/internal/logging/gologger"
	"github.com/goliatone/go-sitecms/internal/media"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

func sqliteConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.DSN = fmt.Sprintf("file:di_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "redis"

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigureLoggerProviderSelectsBackend(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); ok {
		t.Fatalf("expected console provider by default")
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"
	container, err = NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	provider, ok := container.LoggerProvider().(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
	if provider.GetLogger("sitecms.test") == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}

	override := console.NewProvider(console.Options{})
	container, err = NewContainer(cfg, WithLoggerProvider(override))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != override {
		t.Fatalf("expected logger override to win")
	}
}

func TestMemoryContainerServesCatalog(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Seed = true
	sink := audit.NewMemorySink()

	container, err := NewContainer(cfg, WithActivitySink(sink))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.DB() != nil {
		t.Fatalf("expected no database for memory storage")
	}
	if err := container.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	plans, err := container.Catalog().PricingPlans.GetPublic(context.Background(), locale.Spanish, lifecycle.PublicFilter{})
	if err != nil {
		t.Fatalf("get public: %v", err)
	}
	if len(plans) != 2 || plans[0].Content.Name != "Inicial" {
		t.Fatalf("unexpected plans %+v", plans)
	}
	if fan, ok := container.ActivitySink().(audit.Fanout); !ok || len(fan) != 2 {
		t.Fatalf("expected host sink fanned out with the audit logger, got %T", container.ActivitySink())
	}
	if len(sink.Records()) == 0 {
		t.Fatalf("expected seeding to emit audit records")
	}
	for _, record := range sink.Records() {
		if record.ActorID != catalog.SeedActor || record.Channel != "sitecms" {
			t.Fatalf("unexpected audit record %+v", record)
		}
	}
}

func TestSQLiteContainerMigratesAndWrites(t *testing.T) {
	cfg := sqliteConfig(t)
	actor := interfaces.ActorSummary{ID: uuid.New(), Name: "Editor"}

	container, err := NewContainer(cfg, WithActorDirectory(audit.NewStaticDirectory(actor)))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	if container.DB() == nil {
		t.Fatal("expected sqlite handle to be opened")
	}
	if err := container.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	ctx := context.Background()
	asset, err := container.Media().Register(ctx, media.RegisterInput{Path: "/partners/initech.png", AltText: "Initech"})
	if err != nil {
		t.Fatalf("register asset: %v", err)
	}

	handlers := container.Commands().PartnerLogos
	err = handlers.Create.Execute(ctx, commandCreateLogo(actor.ID, asset.ID))
	if err != nil {
		t.Fatalf("create logo: %v", err)
	}

	page, err := container.Catalog().PartnerLogos.GetAdminPage(ctx, lifecycle.AdminPageQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("admin page: %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Fatalf("expected one logo, got %+v", page.Pagination)
	}
	record := page.Items[0]
	if record.Media == nil || record.Media.AltText != "Initech" {
		t.Fatalf("expected resolved media, got %+v", record.Media)
	}
	if record.CreatedBy.Name != "Editor" {
		t.Fatalf("expected actor directory lookup, got %+v", record.CreatedBy)
	}

	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := container.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}

func TestAuditDisabledLeavesSinkUnset(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Audit.Enabled = false

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.ActivitySink() != nil {
		t.Fatalf("expected no activity sink when audit is disabled")
	}
}

func TestCommandObserverSeesCatalogOutcomes(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"
	var outcomes []commands.Outcome

	container, err := NewContainer(cfg, WithCommandObserver(func(_ context.Context, outcome commands.Outcome) {
		outcomes = append(outcomes, outcome)
	}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	err = container.Commands().PartnerLogos.Delete.Execute(context.Background(), commands.DeleteRecordCommand{
		EntityType: catalog.EntityPartnerLogo,
		ID:         uuid.New(),
		Actor:      uuid.New(),
	})
	if !errors.Is(err, lifecycle.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected one outcome, got %+v", outcomes)
	}
	got := outcomes[0]
	if got.Status != commands.OutcomeFailed || got.Command != "sitecms.partner_logo.delete" || got.Operation != "partner_logo.delete" {
		t.Fatalf("unexpected outcome %+v", got)
	}
}

func commandCreateLogo(actor, mediaID uuid.UUID) commands.CreateRecordCommand[catalog.PartnerLogoFields, catalog.PartnerLogoCopy] {
	return commands.CreateRecordCommand[catalog.PartnerLogoFields, catalog.PartnerLogoCopy]{
		EntityType: catalog.EntityPartnerLogo,
		Request: lifecycle.CreateRequest[catalog.PartnerLogoFields, catalog.PartnerLogoCopy]{
			MediaID:  &mediaID,
			Fields:   catalog.PartnerLogoFields{WebsiteURL: "https://initech.example.com"},
			Variants: map[locale.Locale]catalog.PartnerLogoCopy{locale.English: {Name: "Initech"}},
			Actor:    actor,
		},
	}
}
