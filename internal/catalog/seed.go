package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/internal/media"
	"github.com/google/uuid"
)

// SeedActor attributes fixture rows.
var SeedActor = identity.ActorUUID("seed")

// SeedReport counts fixture rows written and skipped by Seed.
type SeedReport struct {
	Created int
	Skipped int
}

type seedIDs struct {
	mu   sync.Mutex
	next uuid.UUID
}

func (s *seedIDs) set(id uuid.UUID) {
	s.mu.Lock()
	s.next = id
	s.mu.Unlock()
}

func (s *seedIDs) Next() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == uuid.Nil {
		return uuid.New()
	}
	id := s.next
	s.next = uuid.Nil
	return id
}

type seeder struct {
	ids    *seedIDs
	report SeedReport
}

func seedRecord[B any, V any](ctx context.Context, sd *seeder, svc *lifecycle.Service[B, V], key string, req lifecycle.CreateRequest[B, V]) (uuid.UUID, error) {
	id := identity.RecordUUID(svc.EntityType(), key)
	_, err := svc.GetAdmin(ctx, id)
	if err == nil {
		sd.report.Skipped++
		return id, nil
	}
	var notFound *lifecycle.NotFoundError
	if errors.As(err, &notFound) && notFound.Deleted {
		sd.report.Skipped++
		return id, nil
	}
	if !errors.Is(err, lifecycle.ErrNotFound) {
		return uuid.Nil, err
	}

	req.Actor = SeedActor
	sd.ids.set(id)
	if _, err := svc.Create(ctx, req); err != nil {
		sd.ids.set(uuid.Nil)
		return uuid.Nil, wrap(svc.EntityType(), err)
	}
	sd.report.Created++
	return id, nil
}

func order(n int) *int { return &n }

// Seed writes the demo fixtures into store. Fixture ids derive from stable
// keys so repeated runs skip rows that already exist. assets may be nil, in
// which case partner logos are not seeded.
func Seed(ctx context.Context, store lifecycle.Store, assets *media.Service, opts ...lifecycle.Option) (SeedReport, error) {
	sd := &seeder{ids: &seedIDs{}}
	seedOpts := append([]lifecycle.Option{}, opts...)
	seedOpts = append(seedOpts, lifecycle.WithIDGenerator(sd.ids.Next))
	if assets != nil {
		seedOpts = append(seedOpts, lifecycle.WithMediaResolver(assets))
	}
	c, err := New(store, seedOpts...)
	if err != nil {
		return sd.report, err
	}

	if _, err := seedRecord(ctx, sd, c.Features, "multilingual", lifecycle.CreateRequest[FeatureFields, FeatureCopy]{
		Code:         "multilingual",
		DisplayOrder: order(1),
		Fields:       FeatureFields{Icon: "globe", Highlight: true},
		Variants: map[locale.Locale]FeatureCopy{
			locale.English:    {Title: "Multilingual content", Description: "Publish every page in English, Spanish and Portuguese."},
			locale.Spanish:    {Title: "Contenido multilingüe", Description: "Publica cada página en inglés, español y portugués."},
			locale.Portuguese: {Title: "Conteúdo multilíngue"},
		},
	}); err != nil {
		return sd.report, err
	}
	if _, err := seedRecord(ctx, sd, c.Features, "audit-trail", lifecycle.CreateRequest[FeatureFields, FeatureCopy]{
		Code:         "audit-trail",
		DisplayOrder: order(2),
		Fields:       FeatureFields{Icon: "history"},
		Variants: map[locale.Locale]FeatureCopy{
			locale.English: {Title: "Audit trail", Description: "Every change is attributed to an editor."},
		},
	}); err != nil {
		return sd.report, err
	}

	if _, err := seedRecord(ctx, sd, c.PricingPlans, "starter", lifecycle.CreateRequest[PricingPlanFields, PricingPlanCopy]{
		Code:         "starter",
		DisplayOrder: order(1),
		Fields:       PricingPlanFields{PriceCents: 0, Currency: "USD", BillingPeriod: BillingMonthly},
		Variants: map[locale.Locale]PricingPlanCopy{
			locale.English: {Name: "Starter", Summary: "For small teams", Features: []string{"1 site", "Community support"}, CTALabel: "Start free"},
			locale.Spanish: {Name: "Inicial", Summary: "Para equipos pequeños", Features: []string{"1 sitio", "Soporte comunitario"}, CTALabel: "Empieza gratis"},
		},
	}); err != nil {
		return sd.report, err
	}
	if _, err := seedRecord(ctx, sd, c.PricingPlans, "business", lifecycle.CreateRequest[PricingPlanFields, PricingPlanCopy]{
		Code:         "business",
		DisplayOrder: order(2),
		Fields:       PricingPlanFields{PriceCents: 4900, Currency: "USD", BillingPeriod: BillingMonthly, Featured: true},
		Variants: map[locale.Locale]PricingPlanCopy{
			locale.English: {Name: "Business", Summary: "For growing companies", Features: []string{"10 sites", "Priority support"}, CTALabel: "Talk to sales"},
		},
	}); err != nil {
		return sd.report, err
	}

	categoryID, err := seedRecord(ctx, sd, c.FAQCategories, "billing", lifecycle.CreateRequest[FAQCategoryFields, FAQCategoryCopy]{
		Code:   "billing",
		Fields: FAQCategoryFields{Icon: "credit-card"},
		Variants: map[locale.Locale]FAQCategoryCopy{
			locale.English:    {Name: "Billing"},
			locale.Spanish:    {Name: "Facturación"},
			locale.Portuguese: {Name: "Faturamento"},
		},
	})
	if err != nil {
		return sd.report, err
	}
	if _, err := seedRecord(ctx, sd, c.FAQs, "billing-cancel", lifecycle.CreateRequest[FAQFields, FAQCopy]{
		ParentID:     &categoryID,
		DisplayOrder: order(1),
		Variants: map[locale.Locale]FAQCopy{
			locale.English: {Question: "Can I cancel anytime?", Answer: "Yes. Plans renew monthly and can be cancelled from the dashboard."},
			locale.Spanish: {Question: "¿Puedo cancelar en cualquier momento?", Answer: "Sí. Los planes se renuevan mensualmente."},
		},
	}); err != nil {
		return sd.report, err
	}

	if _, err := seedRecord(ctx, sd, c.Testimonials, "acme", lifecycle.CreateRequest[TestimonialFields, TestimonialCopy]{
		DisplayOrder: order(1),
		Fields:       TestimonialFields{AuthorName: "Dana Ruiz", Company: "Acme Corp", Rating: 5},
		Variants: map[locale.Locale]TestimonialCopy{
			locale.English: {Quote: "We launched three regional sites in a week.", AuthorRole: "Head of Marketing"},
		},
	}); err != nil {
		return sd.report, err
	}

	industryID, err := seedRecord(ctx, sd, c.Industries, "healthcare", lifecycle.CreateRequest[IndustryFields, IndustryCopy]{
		Code:         "healthcare",
		DisplayOrder: order(1),
		Fields:       IndustryFields{AccentColor: "#0A7F6F"},
		Variants: map[locale.Locale]IndustryCopy{
			locale.English:    {Name: "Healthcare", Headline: "Compliant content for clinics"},
			locale.Portuguese: {Name: "Saúde", Headline: "Conteúdo em conformidade para clínicas"},
		},
	})
	if err != nil {
		return sd.report, err
	}
	if _, err := seedRecord(ctx, sd, c.IndustryHighlights, "healthcare-uptime", lifecycle.CreateRequest[IndustryHighlightFields, IndustryHighlightCopy]{
		ParentID:     &industryID,
		DisplayOrder: order(1),
		Fields:       IndustryHighlightFields{Metric: "99.99%"},
		Variants: map[locale.Locale]IndustryHighlightCopy{
			locale.English: {Title: "Uptime", Body: "Measured across all clinic sites."},
		},
	}); err != nil {
		return sd.report, err
	}

	if _, err := seedRecord(ctx, sd, c.JobPostings, "backend-engineer", lifecycle.CreateRequest[JobPostingFields, JobPostingCopy]{
		Code:   "backend-engineer",
		Fields: JobPostingFields{Department: "Engineering", Location: "Lisbon", EmploymentType: EmploymentFullTime, Remote: true, Status: JobStatusOpen},
		Variants: map[locale.Locale]JobPostingCopy{
			locale.English:    {Title: "Backend Engineer", Requirements: []string{"Go", "PostgreSQL"}},
			locale.Portuguese: {Title: "Engenheiro(a) Backend"},
		},
	}); err != nil {
		return sd.report, err
	}

	if assets == nil {
		return sd.report, nil
	}
	logo, err := assets.Register(ctx, media.RegisterInput{Path: "/media/partners/acme.svg", AltText: "Acme Corp logo", MimeType: "image/svg+xml"})
	if err != nil {
		return sd.report, err
	}
	if _, err := seedRecord(ctx, sd, c.PartnerLogos, "acme", lifecycle.CreateRequest[PartnerLogoFields, PartnerLogoCopy]{
		DisplayOrder: order(1),
		MediaID:      &logo.ID,
		Fields:       PartnerLogoFields{WebsiteURL: "https://acme.example.com"},
		Variants: map[locale.Locale]PartnerLogoCopy{
			locale.English: {Name: "Acme Corp"},
		},
	}); err != nil {
		return sd.report, err
	}
	return sd.report, nil
}
