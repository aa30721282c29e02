package commands

import (
	"github.com/goliatone/go-sitecms/internal/catalog"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CatalogHandlers exposes the admin write handlers of every catalog entity.
type CatalogHandlers struct {
	Features           *RecordHandlers[catalog.FeatureFields, catalog.FeatureCopy]
	PricingPlans       *RecordHandlers[catalog.PricingPlanFields, catalog.PricingPlanCopy]
	FAQCategories      *RecordHandlers[catalog.FAQCategoryFields, catalog.FAQCategoryCopy]
	FAQs               *RecordHandlers[catalog.FAQFields, catalog.FAQCopy]
	Testimonials       *RecordHandlers[catalog.TestimonialFields, catalog.TestimonialCopy]
	Industries         *RecordHandlers[catalog.IndustryFields, catalog.IndustryCopy]
	IndustryHighlights *RecordHandlers[catalog.IndustryHighlightFields, catalog.IndustryHighlightCopy]
	JobPostings        *RecordHandlers[catalog.JobPostingFields, catalog.JobPostingCopy]
	PartnerLogos       *RecordHandlers[catalog.PartnerLogoFields, catalog.PartnerLogoCopy]
}

// NewCatalogHandlers wires handlers for every service in c. Each entity logs
// through its own command logger and every handler reports to observer when
// one is given.
func NewCatalogHandlers(c *catalog.Catalog, provider interfaces.LoggerProvider, observer Observer) *CatalogHandlers {
	return &CatalogHandlers{
		Features:           NewRecordHandlers(c.Features, CommandLogger(provider, catalog.EntityFeature), observer),
		PricingPlans:       NewRecordHandlers(c.PricingPlans, CommandLogger(provider, catalog.EntityPricingPlan), observer),
		FAQCategories:      NewRecordHandlers(c.FAQCategories, CommandLogger(provider, catalog.EntityFAQCategory), observer),
		FAQs:               NewRecordHandlers(c.FAQs, CommandLogger(provider, catalog.EntityFAQ), observer),
		Testimonials:       NewRecordHandlers(c.Testimonials, CommandLogger(provider, catalog.EntityTestimonial), observer),
		Industries:         NewRecordHandlers(c.Industries, CommandLogger(provider, catalog.EntityIndustry), observer),
		IndustryHighlights: NewRecordHandlers(c.IndustryHighlights, CommandLogger(provider, catalog.EntityIndustryHighlight), observer),
		JobPostings:        NewRecordHandlers(c.JobPostings, CommandLogger(provider, catalog.EntityJobPosting), observer),
		PartnerLogos:       NewRecordHandlers(c.PartnerLogos, CommandLogger(provider, catalog.EntityPartnerLogo), observer),
	}
}
