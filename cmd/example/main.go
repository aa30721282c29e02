package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	sitecms "github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/internal/catalog"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/locale"
)

func main() {
	ctx := context.Background()

	cfg := sitecms.DefaultConfig()
	cfg.Seed = true
	if err := sitecms.LoadEnv(&cfg); err != nil {
		log.Fatalf("load env: %v", err)
	}

	module, err := sitecms.New(ctx, cfg)
	if err != nil {
		log.Fatalf("initialise sitecms: %v", err)
	}
	defer module.Close()

	loc := sitecms.DefaultLocale
	if len(os.Args) > 1 {
		loc = sitecms.LocaleFromAcceptLanguage(os.Args[1])
	}
	fmt.Printf("Locale: %s (%s)\n\n", loc, loc.DisplayName())

	plans, err := module.Catalog().PricingPlans.GetPublic(ctx, loc, sitecms.PublicFilter{})
	if err != nil {
		log.Fatalf("list pricing plans: %v", err)
	}
	fmt.Println("Pricing plans:")
	for _, plan := range plans {
		fmt.Printf("  - %s %s/%s (%s) [%s]\n", plan.Content.Name, formatPrice(plan.Fields.PriceCents), plan.Fields.BillingPeriod, plan.Fields.Currency, plan.ResolvedLocale)
	}

	categories, err := module.Catalog().FAQCategories.GetPublic(ctx, loc, sitecms.PublicFilter{})
	if err != nil {
		log.Fatalf("list faq categories: %v", err)
	}
	for _, category := range categories {
		parent := category.ID
		faqs, err := module.Catalog().FAQs.GetPublic(ctx, loc, sitecms.PublicFilter{ParentID: &parent})
		if err != nil {
			log.Fatalf("list faqs: %v", err)
		}
		fmt.Printf("\nFAQ: %s\n", category.Content.Name)
		for _, faq := range faqs {
			fmt.Printf("  Q: %s\n  A: %s\n", faq.Content.Question, faq.Content.Answer)
		}
	}

	editor := identity.ActorUUID("example-editor")
	cmd := commands.CreateRecordCommand[catalog.TestimonialFields, catalog.TestimonialCopy]{
		EntityType: catalog.EntityTestimonial,
		Request: lifecycle.CreateRequest[catalog.TestimonialFields, catalog.TestimonialCopy]{
			DisplayOrder: intPtr(10),
			Fields:       catalog.TestimonialFields{AuthorName: "Ada Park", Company: "Northwind", Rating: 5},
			Variants: map[locale.Locale]catalog.TestimonialCopy{
				locale.English: {Quote: "We shipped three languages in a week.", AuthorRole: "Head of Marketing"},
				locale.Spanish: {Quote: "Lanzamos tres idiomas en una semana.", AuthorRole: "Directora de Marketing"},
			},
			Actor: editor,
		},
	}
	if err := module.Commands().Testimonials.Create.Execute(ctx, cmd); err != nil {
		log.Fatalf("create testimonial (status %d): %v", sitecms.HTTPStatus(err), err)
	}

	query, err := module.AdminQuery(1, "")
	if err != nil {
		log.Fatalf("admin query: %v", err)
	}
	page, err := module.Catalog().Testimonials.GetAdminPage(ctx, query)
	if err != nil {
		log.Fatalf("admin testimonials: %v", err)
	}
	payload, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		log.Fatalf("encode admin page: %v", err)
	}
	fmt.Printf("\nAdmin testimonials:\n%s\n", payload)
}

func formatPrice(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func intPtr(v int) *int { return &v }
