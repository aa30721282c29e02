// Package translation picks and projects per-locale variants of a record.
//
// Functions here are pure: they operate on variants the caller already
// fetched and never fail. A missing translation resolves to the zero value so
// public pages keep rendering with blank text instead of erroring.
package translation

import "github.com/goliatone/go-sitecms/internal/locale"

// Variant is one locale's copy of a record's human readable fields.
type Variant[F any] struct {
	Locale locale.Locale `json:"locale"`
	Fields F             `json:"fields"`
}

// Resolve selects the fields to display for requested using a strict three
// tier fallback: exact locale, then the default locale, then the first
// variant in input order. The boolean is false only when variants is empty.
func Resolve[F any](variants []Variant[F], requested locale.Locale) (F, bool) {
	fields, _, ok := ResolveWithLocale(variants, requested)
	return fields, ok
}

// ResolveWithLocale behaves like Resolve and also reports which locale the
// returned fields came from.
func ResolveWithLocale[F any](variants []Variant[F], requested locale.Locale) (F, locale.Locale, bool) {
	var zero F
	if len(variants) == 0 {
		return zero, 0, false
	}
	if idx := indexOf(variants, requested); idx >= 0 {
		return variants[idx].Fields, variants[idx].Locale, true
	}
	if requested != locale.Default {
		if idx := indexOf(variants, locale.Default); idx >= 0 {
			return variants[idx].Fields, variants[idx].Locale, true
		}
	}
	return variants[0].Fields, variants[0].Locale, true
}

// ProjectAll keys every variant by its own locale. No locale is invented or
// dropped; if a locale repeats the first occurrence wins, matching Resolve.
func ProjectAll[F any](variants []Variant[F]) map[locale.Locale]F {
	out := make(map[locale.Locale]F, len(variants))
	for _, variant := range variants {
		if _, seen := out[variant.Locale]; seen {
			continue
		}
		out[variant.Locale] = variant.Fields
	}
	return out
}

func indexOf[F any](variants []Variant[F], target locale.Locale) int {
	for i, variant := range variants {
		if variant.Locale == target {
			return i
		}
	}
	return -1
}
