package translation_test

import (
	"testing"

	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/internal/translation"
)

type copyFields struct {
	Title       string
	Description string
}

func variant(l locale.Locale, title string) translation.Variant[copyFields] {
	return translation.Variant[copyFields]{Locale: l, Fields: copyFields{Title: title, Description: title + " body"}}
}

func TestResolveEmptyReturnsZero(t *testing.T) {
	fields, ok := translation.Resolve[copyFields](nil, locale.Spanish)
	if ok {
		t.Fatalf("expected no resolution for empty variants")
	}
	if fields != (copyFields{}) {
		t.Fatalf("expected zero fields, got %+v", fields)
	}
}

func TestResolvePrefersExactLocale(t *testing.T) {
	variants := []translation.Variant[copyFields]{
		variant(locale.English, "Hello"),
		variant(locale.Spanish, "Hola"),
	}
	fields, resolved, ok := translation.ResolveWithLocale(variants, locale.Spanish)
	if !ok || fields.Title != "Hola" || resolved != locale.Spanish {
		t.Fatalf("expected spanish variant, got %+v (%s, %v)", fields, resolved, ok)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	variants := []translation.Variant[copyFields]{
		variant(locale.Spanish, "Hola"),
		variant(locale.English, "Hello"),
	}
	fields, resolved, ok := translation.ResolveWithLocale(variants, locale.Portuguese)
	if !ok || fields.Title != "Hello" || resolved != locale.English {
		t.Fatalf("expected default locale fallback, got %+v (%s)", fields, resolved)
	}
}

func TestResolveFallsBackToFirstVariant(t *testing.T) {
	variants := []translation.Variant[copyFields]{
		variant(locale.Portuguese, "Olá"),
		variant(locale.Spanish, "Hola"),
	}
	fields, resolved, ok := translation.ResolveWithLocale(variants, locale.English)
	if !ok || fields.Title != "Olá" || resolved != locale.Portuguese {
		t.Fatalf("expected first variant fallback, got %+v (%s)", fields, resolved)
	}
}

func TestResolveNeverSynthesizesFields(t *testing.T) {
	sets := [][]translation.Variant[copyFields]{
		{variant(locale.English, "a")},
		{variant(locale.Spanish, "b"), variant(locale.Portuguese, "c")},
		{variant(locale.Portuguese, "d"), variant(locale.English, "e"), variant(locale.Spanish, "f")},
	}
	for _, set := range sets {
		for _, requested := range locale.All() {
			fields, ok := translation.Resolve(set, requested)
			if !ok {
				t.Fatalf("expected resolution for non-empty set")
			}
			found := false
			for _, v := range set {
				if v.Fields == fields {
					found = true
				}
			}
			if !found {
				t.Fatalf("resolved fields %+v are not a member of %+v", fields, set)
			}
		}
	}
}

func TestResolveMissingLocaleMatchesDefault(t *testing.T) {
	variants := []translation.Variant[copyFields]{
		variant(locale.Spanish, "Hola"),
		variant(locale.English, "Hello"),
	}
	want, _ := translation.Resolve(variants, locale.Default)
	got, _ := translation.Resolve(variants, locale.Portuguese)
	if got != want {
		t.Fatalf("expected missing locale to resolve like default: %+v vs %+v", got, want)
	}
}

func TestProjectAllIsLossless(t *testing.T) {
	variants := []translation.Variant[copyFields]{
		variant(locale.English, "Hello"),
		variant(locale.Portuguese, "Olá"),
	}
	projected := translation.ProjectAll(variants)
	if len(projected) != 2 {
		t.Fatalf("expected 2 locales, got %d", len(projected))
	}
	for _, v := range variants {
		if projected[v.Locale] != v.Fields {
			t.Fatalf("locale %s: expected %+v got %+v", v.Locale, v.Fields, projected[v.Locale])
		}
	}
	if _, ok := projected[locale.Spanish]; ok {
		t.Fatalf("projection invented a spanish entry")
	}
}

func TestProjectAllKeepsFirstDuplicate(t *testing.T) {
	variants := []translation.Variant[copyFields]{
		variant(locale.English, "first"),
		variant(locale.English, "second"),
	}
	projected := translation.ProjectAll(variants)
	if projected[locale.English].Title != "first" {
		t.Fatalf("expected first duplicate to win, got %q", projected[locale.English].Title)
	}
}
