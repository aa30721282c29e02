package catalog

import (
	"encoding/json"
	"errors"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Entity type discriminators stored in localized_records.entity_type.
const (
	EntityFeature           = "feature"
	EntityPricingPlan       = "pricing_plan"
	EntityFAQCategory       = "faq_category"
	EntityFAQ               = "faq"
	EntityTestimonial       = "testimonial"
	EntityIndustry          = "industry"
	EntityIndustryHighlight = "industry_highlight"
	EntityJobPosting        = "job_posting"
	EntityPartnerLogo       = "partner_logo"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

var errAbsoluteURL = errors.New("must be an absolute http(s) url")

func absoluteURL(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errAbsoluteURL
	}
	return nil
}

func eachRequired(max int) validation.Rule {
	return validation.Each(validation.Required, validation.Length(1, max))
}

// FeatureFields are the locale-independent attributes of a product feature.
type FeatureFields struct {
	Icon      string `json:"icon,omitempty"`
	Highlight bool   `json:"highlight"`
}

// FeatureCopy is the translatable copy of a feature.
type FeatureCopy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func validateFeature(f FeatureFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Icon, validation.Length(0, 64)),
	)
}

func validateFeatureCopy(c FeatureCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Description, validation.Length(0, 2000)),
	)
}

// Billing periods accepted by pricing plans.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
	BillingOnce    = "once"
)

// PricingPlanFields carry the price of a plan.
type PricingPlanFields struct {
	PriceCents    int    `json:"price_cents"`
	Currency      string `json:"currency"`
	BillingPeriod string `json:"billing_period"`
	Featured      bool   `json:"featured"`
}

// PricingPlanCopy is the translatable copy of a plan card.
type PricingPlanCopy struct {
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Features []string `json:"features"`
	CTALabel string   `json:"cta_label"`
}

// MarshalJSON renders a missing feature list as an empty array.
func (c PricingPlanCopy) MarshalJSON() ([]byte, error) {
	type plain PricingPlanCopy
	if c.Features == nil {
		c.Features = []string{}
	}
	return json.Marshal(plain(c))
}

func validatePricingPlan(f PricingPlanFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.PriceCents, validation.Min(0)),
		validation.Field(&f.Currency, validation.Required, validation.Match(currencyPattern)),
		validation.Field(&f.BillingPeriod, validation.Required, validation.In(BillingMonthly, BillingYearly, BillingOnce)),
	)
}

func validatePricingPlanCopy(c PricingPlanCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&c.Summary, validation.Length(0, 500)),
		validation.Field(&c.Features, validation.Length(0, 20), eachRequired(200)),
		validation.Field(&c.CTALabel, validation.Length(0, 40)),
	)
}

// FAQCategoryFields group FAQs on the help page.
type FAQCategoryFields struct {
	Icon string `json:"icon,omitempty"`
}

// FAQCategoryCopy is the translatable heading of a category.
type FAQCategoryCopy struct {
	Name string `json:"name"`
}

func validateFAQCategoryCopy(c FAQCategoryCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 80)),
	)
}

// FAQFields is empty; an FAQ is placed by its parent category and order.
type FAQFields struct{}

// FAQCopy is a translatable question and answer pair.
type FAQCopy struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func validateFAQCopy(c FAQCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Question, validation.Required, validation.Length(1, 300)),
		validation.Field(&c.Answer, validation.Required, validation.Length(1, 5000)),
	)
}

// TestimonialFields identify the customer quoted.
type TestimonialFields struct {
	AuthorName string `json:"author_name"`
	Company    string `json:"company,omitempty"`
	Rating     int    `json:"rating,omitempty"`
}

// TestimonialCopy is the translated quote.
type TestimonialCopy struct {
	Quote      string `json:"quote"`
	AuthorRole string `json:"author_role"`
}

func validateTestimonial(f TestimonialFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.AuthorName, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Company, validation.Length(0, 120)),
		validation.Field(&f.Rating, validation.Min(0), validation.Max(5)),
	)
}

func validateTestimonialCopy(c TestimonialCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Quote, validation.Required, validation.Length(1, 1000)),
		validation.Field(&c.AuthorRole, validation.Length(0, 120)),
	)
}

// IndustryFields hold the presentation attributes of an industry page.
type IndustryFields struct {
	AccentColor string `json:"accent_color,omitempty"`
}

// IndustryCopy is the translated body of an industry page.
type IndustryCopy struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateIndustry(f IndustryFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.AccentColor, validation.Match(hexColor)),
	)
}

func validateIndustryCopy(c IndustryCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Headline, validation.Length(0, 200)),
	)
}

// IndustryHighlightFields carry the figure shown on a highlight tile.
type IndustryHighlightFields struct {
	Metric string `json:"metric,omitempty"`
}

// IndustryHighlightCopy is the translated tile text.
type IndustryHighlightCopy struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func validateIndustryHighlightCopy(c IndustryHighlightCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Body, validation.Length(0, 1000)),
	)
}

// Employment types accepted by job postings.
const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
)

// Job posting states. The state is an annotation; transitions are not enforced.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// JobPostingFields describe where and how a role is staffed.
type JobPostingFields struct {
	Department     string `json:"department"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type"`
	Remote         bool   `json:"remote"`
	Status         string `json:"status"`
	ApplyURL       string `json:"apply_url,omitempty"`
}

// JobPostingCopy is the translated job advert.
type JobPostingCopy struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// MarshalJSON renders a missing requirement list as an empty array.
func (c JobPostingCopy) MarshalJSON() ([]byte, error) {
	type plain JobPostingCopy
	if c.Requirements == nil {
		c.Requirements = []string{}
	}
	return json.Marshal(plain(c))
}

func validateJobPosting(f JobPostingFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Department, validation.Required, validation.Length(1, 80)),
		validation.Field(&f.Location, validation.Length(0, 120)),
		validation.Field(&f.EmploymentType, validation.Required, validation.In(EmploymentFullTime, EmploymentPartTime, EmploymentContract)),
		validation.Field(&f.Status, validation.Required, validation.In(JobStatusOpen, JobStatusClosed)),
		validation.Field(&f.ApplyURL, validation.By(absoluteURL)),
	)
}

func validateJobPostingCopy(c JobPostingCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 160)),
		validation.Field(&c.Requirements, validation.Length(0, 30), eachRequired(300)),
	)
}

// PartnerLogoFields link a partner logo to the partner site.
type PartnerLogoFields struct {
	WebsiteURL string `json:"website_url,omitempty"`
}

// PartnerLogoCopy is the translated partner name.
type PartnerLogoCopy struct {
	Name string `json:"name"`
}

func validatePartnerLogo(f PartnerLogoFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.WebsiteURL, validation.By(absoluteURL)),
	)
}

func validatePartnerLogoCopy(c PartnerLogoCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
	)
}
