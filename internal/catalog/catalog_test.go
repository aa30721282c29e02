package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sitecms/internal/catalog"
	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/internal/media"
	"github.com/google/uuid"
)

func newCatalog(t *testing.T) (*catalog.Catalog, lifecycle.Store, *media.Service) {
	t.Helper()
	store := lifecycle.NewMemoryStore()
	assets, err := media.NewService(media.NewMemoryAssetRepository())
	if err != nil {
		t.Fatalf("media service: %v", err)
	}
	c, err := catalog.New(store, lifecycle.WithMediaResolver(assets))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c, store, assets
}

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	_, store, assets := newCatalog(t)

	first, err := catalog.Seed(ctx, store, assets)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if first.Created != 11 || first.Skipped != 0 {
		t.Fatalf("unexpected first report %+v", first)
	}

	second, err := catalog.Seed(ctx, store, assets)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if second.Created != 0 || second.Skipped != 11 {
		t.Fatalf("unexpected second report %+v", second)
	}
}

func TestSeededFeaturesResolvePerLocale(t *testing.T) {
	ctx := context.Background()
	c, store, assets := newCatalog(t)
	if _, err := catalog.Seed(ctx, store, assets); err != nil {
		t.Fatalf("seed: %v", err)
	}

	views, err := c.Features.GetPublic(ctx, locale.Spanish, lifecycle.PublicFilter{})
	if err != nil {
		t.Fatalf("get public: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 features, got %d", len(views))
	}
	if views[0].Content.Title != "Contenido multilingüe" || views[0].ResolvedLocale != locale.Spanish {
		t.Fatalf("expected spanish copy first, got %+v", views[0])
	}
	if views[1].Content.Title != "Audit trail" || views[1].ResolvedLocale != locale.English {
		t.Fatalf("expected english fallback, got %+v", views[1])
	}

	plan, err := c.PricingPlans.GetByCode(ctx, "business", locale.Portuguese)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if plan.ID != identity.RecordUUID(catalog.EntityPricingPlan, "business") || plan.Content.Name != "Business" {
		t.Fatalf("unexpected plan %+v", plan)
	}

	logos, err := c.PartnerLogos.GetPublic(ctx, locale.English, lifecycle.PublicFilter{})
	if err != nil {
		t.Fatalf("logos: %v", err)
	}
	if len(logos) != 1 || logos[0].Media == nil || logos[0].Media.Path != "/media/partners/acme.svg" {
		t.Fatalf("expected logo with media summary, got %+v", logos)
	}
}

func TestFieldValidatorsRejectBadInput(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newCatalog(t)
	actor := uuid.New()
	one := 1

	_, err := c.PricingPlans.Create(ctx, lifecycle.CreateRequest[catalog.PricingPlanFields, catalog.PricingPlanCopy]{
		Code:         "pro",
		DisplayOrder: &one,
		Fields:       catalog.PricingPlanFields{PriceCents: 100, Currency: "usd", BillingPeriod: catalog.BillingMonthly},
		Variants:     map[locale.Locale]catalog.PricingPlanCopy{locale.English: {Name: "Pro"}},
		Actor:        actor,
	})
	if !errors.Is(err, lifecycle.ErrValidation) {
		t.Fatalf("expected currency validation error, got %v", err)
	}

	_, err = c.JobPostings.Create(ctx, lifecycle.CreateRequest[catalog.JobPostingFields, catalog.JobPostingCopy]{
		Fields:   catalog.JobPostingFields{Department: "Sales", EmploymentType: catalog.EmploymentContract, Status: catalog.JobStatusOpen, ApplyURL: "ftp://jobs"},
		Variants: map[locale.Locale]catalog.JobPostingCopy{locale.English: {Title: "Account Executive"}},
		Actor:    actor,
	})
	if !errors.Is(err, lifecycle.ErrValidation) {
		t.Fatalf("expected apply url validation error, got %v", err)
	}

	_, err = c.PartnerLogos.Create(ctx, lifecycle.CreateRequest[catalog.PartnerLogoFields, catalog.PartnerLogoCopy]{
		Variants: map[locale.Locale]catalog.PartnerLogoCopy{locale.English: {Name: "Globex"}},
		Actor:    actor,
	})
	if !errors.Is(err, lifecycle.ErrMediaRequired) {
		t.Fatalf("expected media required, got %v", err)
	}

	missing := uuid.New()
	_, err = c.PartnerLogos.Create(ctx, lifecycle.CreateRequest[catalog.PartnerLogoFields, catalog.PartnerLogoCopy]{
		MediaID:  &missing,
		Variants: map[locale.Locale]catalog.PartnerLogoCopy{locale.English: {Name: "Globex"}},
		Actor:    actor,
	})
	if !errors.Is(err, lifecycle.ErrReferenceNotFound) {
		t.Fatalf("expected reference not found, got %v", err)
	}
}

func TestJobPostingsGenerateCodes(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newCatalog(t)

	job, err := c.JobPostings.Create(ctx, lifecycle.CreateRequest[catalog.JobPostingFields, catalog.JobPostingCopy]{
		Fields:   catalog.JobPostingFields{Department: "Design", EmploymentType: catalog.EmploymentPartTime, Status: catalog.JobStatusOpen},
		Variants: map[locale.Locale]catalog.JobPostingCopy{locale.English: {Title: "Product Designer"}},
		Actor:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if !strings.HasPrefix(job.Code, "job-") {
		t.Fatalf("expected generated job code, got %q", job.Code)
	}
}

func TestIndustryHighlightsBlockDeleteUntilRemoved(t *testing.T) {
	ctx := context.Background()
	c, store, assets := newCatalog(t)
	if _, err := catalog.Seed(ctx, store, assets); err != nil {
		t.Fatalf("seed: %v", err)
	}
	actor := uuid.New()
	industryID := identity.RecordUUID(catalog.EntityIndustry, "healthcare")
	highlightID := identity.RecordUUID(catalog.EntityIndustryHighlight, "healthcare-uptime")

	if err := c.Industries.SoftDelete(ctx, industryID, actor); !errors.Is(err, lifecycle.ErrHasChildren) {
		t.Fatalf("expected ErrHasChildren, got %v", err)
	}
	if err := c.Industries.HardDelete(ctx, industryID, actor); !errors.Is(err, lifecycle.ErrHardDeleteUnsupported) {
		t.Fatalf("expected hard delete to be refused for industries, got %v", err)
	}
	if err := c.IndustryHighlights.HardDelete(ctx, highlightID, actor); err != nil {
		t.Fatalf("hard delete highlight: %v", err)
	}
	if err := c.Industries.SoftDelete(ctx, industryID, actor); err != nil {
		t.Fatalf("soft delete industry: %v", err)
	}

	_, err := c.Industries.Create(ctx, lifecycle.CreateRequest[catalog.IndustryFields, catalog.IndustryCopy]{
		Code:     "healthcare",
		Variants: map[locale.Locale]catalog.IndustryCopy{locale.English: {Name: "Healthcare 2"}},
		Actor:    actor,
	})
	if !errors.Is(err, lifecycle.ErrConflict) {
		t.Fatalf("expected retired industry code to stay reserved, got %v", err)
	}
}

func TestEntityTypesMatchServices(t *testing.T) {
	c, _, _ := newCatalog(t)
	got := []string{
		c.Features.EntityType(),
		c.PricingPlans.EntityType(),
		c.FAQCategories.EntityType(),
		c.FAQs.EntityType(),
		c.Testimonials.EntityType(),
		c.Industries.EntityType(),
		c.IndustryHighlights.EntityType(),
		c.JobPostings.EntityType(),
		c.PartnerLogos.EntityType(),
	}
	want := catalog.EntityTypes()
	if len(got) != len(want) {
		t.Fatalf("expected %d entity types, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entity type %d: want %s got %s", i, want[i], got[i])
		}
	}
}

func TestBlankCopyKeepsEveryTextKey(t *testing.T) {
	cases := map[string]any{
		"pricing_plan": lifecycle.PublicView[catalog.PricingPlanFields, catalog.PricingPlanCopy]{},
		"job_posting":  lifecycle.PublicView[catalog.JobPostingFields, catalog.JobPostingCopy]{},
		"industry":     lifecycle.PublicView[catalog.IndustryFields, catalog.IndustryCopy]{},
		"feature":      lifecycle.PublicView[catalog.FeatureFields, catalog.FeatureCopy]{},
	}
	want := map[string][]string{
		"pricing_plan": {`"name":""`, `"summary":""`, `"features":[]`, `"cta_label":""`},
		"job_posting":  {`"title":""`, `"description":""`, `"requirements":[]`},
		"industry":     {`"name":""`, `"headline":""`, `"body":""`},
		"feature":      {`"title":""`, `"description":""`},
	}
	for name, view := range cases {
		payload, err := json.Marshal(view)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		for _, key := range want[name] {
			if !strings.Contains(string(payload), key) {
				t.Fatalf("%s: expected %s in %s", name, key, payload)
			}
		}
	}
}
