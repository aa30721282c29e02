package media_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/media"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-sitecms/pkg/testsupport"
	"github.com/google/uuid"
)

func eachRepository(t *testing.T, fn func(t *testing.T, svc *media.Service)) {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	t.Run("memory", func(t *testing.T) {
		svc, err := media.NewService(media.NewMemoryAssetRepository(), media.WithClock(clock))
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		fn(t, svc)
	})

	t.Run("bun_cached", func(t *testing.T) {
		name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
		db, err := testsupport.NewBunSQLiteDB(name)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := media.CreateSchema(context.Background(), db); err != nil {
			t.Fatalf("create schema: %v", err)
		}

		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = time.Minute
		cacheService, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			t.Fatalf("cache service: %v", err)
		}
		repo := media.NewBunAssetRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())

		svc, err := media.NewService(repo, media.WithClock(clock))
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		fn(t, svc)
	})
}

func TestServiceRegisterAndResolve(t *testing.T) {
	eachRepository(t, func(t *testing.T, svc *media.Service) {
		ctx := context.Background()

		asset, err := svc.Register(ctx, media.RegisterInput{Path: "/logos/acme.svg", AltText: "Acme", MimeType: "image/svg+xml"})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if asset.ID != identity.MediaAssetUUID("/logos/acme.svg") {
			t.Fatalf("expected deterministic id, got %s", asset.ID)
		}

		summary, err := svc.ResolveMedia(ctx, asset.ID)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if summary.Path != "/logos/acme.svg" || summary.AltText != "Acme" {
			t.Fatalf("unexpected summary %+v", summary)
		}
	})
}

func TestServiceRegisterIsIdempotentByPath(t *testing.T) {
	eachRepository(t, func(t *testing.T, svc *media.Service) {
		ctx := context.Background()

		first, err := svc.Register(ctx, media.RegisterInput{Path: "/hero.png", AltText: "old"})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		second, err := svc.Register(ctx, media.RegisterInput{Path: "/hero.png", AltText: "new"})
		if err != nil {
			t.Fatalf("re-register: %v", err)
		}
		if first.ID != second.ID {
			t.Fatalf("expected same id, got %s and %s", first.ID, second.ID)
		}

		summary, err := svc.ResolveMedia(ctx, first.ID)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if summary.AltText != "new" {
			t.Fatalf("expected refreshed alt text, got %q", summary.AltText)
		}

		if _, err := svc.Register(ctx, media.RegisterInput{ID: uuid.New(), Path: "/hero.png"}); !errors.Is(err, media.ErrAssetPathConflict) {
			t.Fatalf("expected path conflict, got %v", err)
		}
	})
}

func TestServiceRetireHidesAsset(t *testing.T) {
	eachRepository(t, func(t *testing.T, svc *media.Service) {
		ctx := context.Background()

		asset, err := svc.Register(ctx, media.RegisterInput{Path: "/team.jpg", AltText: "Team"})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if err := svc.Retire(ctx, asset.ID); err != nil {
			t.Fatalf("retire: %v", err)
		}

		if _, err := svc.ResolveMedia(ctx, asset.ID); !errors.Is(err, interfaces.ErrMediaNotFound) {
			t.Fatalf("expected ErrMediaNotFound after retire, got %v", err)
		}
		if err := svc.Retire(ctx, asset.ID); !errors.Is(err, media.ErrAssetNotFound) {
			t.Fatalf("expected second retire to fail, got %v", err)
		}

		live, err := svc.List(ctx, false)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(live) != 0 {
			t.Fatalf("expected no live assets, got %d", len(live))
		}
		all, err := svc.List(ctx, true)
		if err != nil {
			t.Fatalf("list retired: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected retired asset in full listing, got %d", len(all))
		}

		revived, err := svc.Register(ctx, media.RegisterInput{Path: "/team.jpg", AltText: "Team"})
		if err != nil {
			t.Fatalf("revive: %v", err)
		}
		if revived.DeletedAt != nil {
			t.Fatalf("expected revived asset to be live")
		}
	})
}

func TestServiceResolveUnknownAsset(t *testing.T) {
	eachRepository(t, func(t *testing.T, svc *media.Service) {
		_, err := svc.ResolveMedia(context.Background(), uuid.New())
		if !errors.Is(err, interfaces.ErrMediaNotFound) {
			t.Fatalf("expected ErrMediaNotFound, got %v", err)
		}
	})
}

func TestServiceListOrdersByPath(t *testing.T) {
	eachRepository(t, func(t *testing.T, svc *media.Service) {
		ctx := context.Background()
		for _, path := range []string{"/c.png", "/a.png", "/b.png"} {
			if _, err := svc.Register(ctx, media.RegisterInput{Path: path}); err != nil {
				t.Fatalf("register %s: %v", path, err)
			}
		}
		assets, err := svc.List(ctx, false)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(assets) != 3 || assets[0].Path != "/a.png" || assets[2].Path != "/c.png" {
			t.Fatalf("unexpected order %+v", assets)
		}
	})
}

func TestRegisterInputValidation(t *testing.T) {
	cases := []media.RegisterInput{
		{},
		{Path: " /padded.png "},
		{Path: strings.Repeat("x", 600)},
	}
	for _, input := range cases {
		if err := input.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		}
	}
	if _, err := media.NewService(nil); !errors.Is(err, media.ErrRepositoryRequired) {
		t.Fatalf("expected ErrRepositoryRequired, got %v", err)
	}
}
