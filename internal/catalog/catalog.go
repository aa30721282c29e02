package catalog

import (
	"fmt"

	"github.com/goliatone/go-sitecms/internal/lifecycle"
)

// Service aliases keep call sites short.
type (
	FeatureService           = lifecycle.Service[FeatureFields, FeatureCopy]
	PricingPlanService       = lifecycle.Service[PricingPlanFields, PricingPlanCopy]
	FAQCategoryService       = lifecycle.Service[FAQCategoryFields, FAQCategoryCopy]
	FAQService               = lifecycle.Service[FAQFields, FAQCopy]
	TestimonialService       = lifecycle.Service[TestimonialFields, TestimonialCopy]
	IndustryService          = lifecycle.Service[IndustryFields, IndustryCopy]
	IndustryHighlightService = lifecycle.Service[IndustryHighlightFields, IndustryHighlightCopy]
	JobPostingService        = lifecycle.Service[JobPostingFields, JobPostingCopy]
	PartnerLogoService       = lifecycle.Service[PartnerLogoFields, PartnerLogoCopy]
)

// Catalog holds one lifecycle service per marketing entity, all sharing a
// single store.
type Catalog struct {
	Features           *FeatureService
	PricingPlans       *PricingPlanService
	FAQCategories      *FAQCategoryService
	FAQs               *FAQService
	Testimonials       *TestimonialService
	Industries         *IndustryService
	IndustryHighlights *IndustryHighlightService
	JobPostings        *JobPostingService
	PartnerLogos       *PartnerLogoService
}

func FeatureDefinition() lifecycle.Definition[FeatureFields, FeatureCopy] {
	return lifecycle.Definition[FeatureFields, FeatureCopy]{
		EntityType:          EntityFeature,
		Code:                lifecycle.CodePolicy{Enabled: true, Generate: true, Prefix: "feature", Scope: lifecycle.CodeScopeLive},
		RequireDisplayOrder: true,
		ValidateFields:      validateFeature,
		ValidateVariant:     validateFeatureCopy,
	}
}

func PricingPlanDefinition() lifecycle.Definition[PricingPlanFields, PricingPlanCopy] {
	return lifecycle.Definition[PricingPlanFields, PricingPlanCopy]{
		EntityType:          EntityPricingPlan,
		Code:                lifecycle.CodePolicy{Enabled: true, Scope: lifecycle.CodeScopeLive},
		RequireDisplayOrder: true,
		ValidateFields:      validatePricingPlan,
		ValidateVariant:     validatePricingPlanCopy,
	}
}

func FAQCategoryDefinition() lifecycle.Definition[FAQCategoryFields, FAQCategoryCopy] {
	return lifecycle.Definition[FAQCategoryFields, FAQCategoryCopy]{
		EntityType:      EntityFAQCategory,
		Code:            lifecycle.CodePolicy{Enabled: true, Generate: true, Prefix: "faq-category", Scope: lifecycle.CodeScopeAll},
		Children:        []string{EntityFAQ},
		ValidateVariant: validateFAQCategoryCopy,
	}
}

func FAQDefinition() lifecycle.Definition[FAQFields, FAQCopy] {
	return lifecycle.Definition[FAQFields, FAQCopy]{
		EntityType:      EntityFAQ,
		Parent:          EntityFAQCategory,
		ValidateVariant: validateFAQCopy,
	}
}

func TestimonialDefinition() lifecycle.Definition[TestimonialFields, TestimonialCopy] {
	return lifecycle.Definition[TestimonialFields, TestimonialCopy]{
		EntityType:      EntityTestimonial,
		ValidateFields:  validateTestimonial,
		ValidateVariant: validateTestimonialCopy,
	}
}

// IndustryDefinition keeps retired codes reserved so published industry URLs
// never point at a different page.
func IndustryDefinition() lifecycle.Definition[IndustryFields, IndustryCopy] {
	return lifecycle.Definition[IndustryFields, IndustryCopy]{
		EntityType:      EntityIndustry,
		Code:            lifecycle.CodePolicy{Enabled: true, Scope: lifecycle.CodeScopeAll},
		Children:        []string{EntityIndustryHighlight},
		ValidateFields:  validateIndustry,
		ValidateVariant: validateIndustryCopy,
	}
}

// IndustryHighlightDefinition describes line items owned by an industry.
// They are hard deleted.
func IndustryHighlightDefinition() lifecycle.Definition[IndustryHighlightFields, IndustryHighlightCopy] {
	return lifecycle.Definition[IndustryHighlightFields, IndustryHighlightCopy]{
		EntityType:          EntityIndustryHighlight,
		Parent:              EntityIndustry,
		LineItem:            true,
		RequireDisplayOrder: true,
		ValidateVariant:     validateIndustryHighlightCopy,
	}
}

func JobPostingDefinition() lifecycle.Definition[JobPostingFields, JobPostingCopy] {
	return lifecycle.Definition[JobPostingFields, JobPostingCopy]{
		EntityType:      EntityJobPosting,
		Code:            lifecycle.CodePolicy{Enabled: true, Generate: true, Prefix: "job", Scope: lifecycle.CodeScopeAll},
		ValidateFields:  validateJobPosting,
		ValidateVariant: validateJobPostingCopy,
	}
}

func PartnerLogoDefinition() lifecycle.Definition[PartnerLogoFields, PartnerLogoCopy] {
	return lifecycle.Definition[PartnerLogoFields, PartnerLogoCopy]{
		EntityType:      EntityPartnerLogo,
		RequireMedia:    true,
		ValidateFields:  validatePartnerLogo,
		ValidateVariant: validatePartnerLogoCopy,
	}
}

// New builds every entity service over store. Options apply to all of them.
func New(store lifecycle.Store, opts ...lifecycle.Option) (*Catalog, error) {
	c := &Catalog{}
	var err error
	if c.Features, err = lifecycle.NewService(FeatureDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityFeature, err)
	}
	if c.PricingPlans, err = lifecycle.NewService(PricingPlanDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityPricingPlan, err)
	}
	if c.FAQCategories, err = lifecycle.NewService(FAQCategoryDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityFAQCategory, err)
	}
	if c.FAQs, err = lifecycle.NewService(FAQDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityFAQ, err)
	}
	if c.Testimonials, err = lifecycle.NewService(TestimonialDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityTestimonial, err)
	}
	if c.Industries, err = lifecycle.NewService(IndustryDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityIndustry, err)
	}
	if c.IndustryHighlights, err = lifecycle.NewService(IndustryHighlightDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityIndustryHighlight, err)
	}
	if c.JobPostings, err = lifecycle.NewService(JobPostingDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityJobPosting, err)
	}
	if c.PartnerLogos, err = lifecycle.NewService(PartnerLogoDefinition(), store, opts...); err != nil {
		return nil, wrap(EntityPartnerLogo, err)
	}
	return c, nil
}

// EntityTypes lists the managed entity types in registration order.
func EntityTypes() []string {
	return []string{
		EntityFeature,
		EntityPricingPlan,
		EntityFAQCategory,
		EntityFAQ,
		EntityTestimonial,
		EntityIndustry,
		EntityIndustryHighlight,
		EntityJobPosting,
		EntityPartnerLogo,
	}
}

func wrap(entityType string, err error) error {
	return fmt.Errorf("catalog: %s service: %w", entityType, err)
}
