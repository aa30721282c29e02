package locale_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-sitecms/internal/locale"
)

func TestLookupAcceptsSupportedCodes(t *testing.T) {
	cases := map[string]locale.Locale{
		"en":    locale.English,
		" ES ":  locale.Spanish,
		"pt":    locale.Portuguese,
		"es-MX": locale.Spanish,
		"pt-BR": locale.Portuguese,
	}
	for input, expected := range cases {
		got, err := locale.Lookup(input)
		if err != nil {
			t.Fatalf("lookup %q: %v", input, err)
		}
		if got != expected {
			t.Fatalf("lookup %q: expected %s got %s", input, expected, got)
		}
	}
}

func TestLookupRejectsUnsupportedCodes(t *testing.T) {
	for _, input := range []string{"", "fr", "de-DE", "not a tag"} {
		if _, err := locale.Lookup(input); !errors.Is(err, locale.ErrUnknownLocale) {
			t.Fatalf("lookup %q: expected ErrUnknownLocale, got %v", input, err)
		}
	}
}

func TestParseFallsBackToDefault(t *testing.T) {
	if got := locale.Parse("fr"); got != locale.Default {
		t.Fatalf("expected default for unsupported locale, got %s", got)
	}
	if got := locale.Parse(""); got != locale.Default {
		t.Fatalf("expected default for empty locale, got %s", got)
	}
	if got := locale.Parse("es"); got != locale.Spanish {
		t.Fatalf("expected es, got %s", got)
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	cases := map[string]locale.Locale{
		"":                        locale.Default,
		"es-MX,es;q=0.9,en;q=0.5": locale.Spanish,
		"pt-BR":                   locale.Portuguese,
		"en-GB,en;q=0.8":          locale.English,
		"de":                      locale.Default,
	}
	for header, expected := range cases {
		if got := locale.FromAcceptLanguage(header); got != expected {
			t.Fatalf("header %q: expected %s got %s", header, expected, got)
		}
	}
}

func TestLocaleKeysRoundTripThroughJSON(t *testing.T) {
	payload := map[locale.Locale]string{
		locale.English: "Hello",
		locale.Spanish: "Hola",
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"en":"Hello","es":"Hola"}` {
		t.Fatalf("unexpected json %s", raw)
	}

	var decoded map[locale.Locale]string
	if err := json.Unmarshal([]byte(`{"pt":"Olá"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[locale.Portuguese] != "Olá" {
		t.Fatalf("expected portuguese entry, got %v", decoded)
	}

	if err := json.Unmarshal([]byte(`{"fr":"Bonjour"}`), &decoded); err == nil {
		t.Fatalf("expected unsupported locale key to fail decoding")
	}
}

func TestAllStartsWithDefault(t *testing.T) {
	all := locale.All()
	if len(all) < 2 {
		t.Fatalf("expected at least two locales, got %d", len(all))
	}
	if all[0] != locale.Default || !all[0].IsDefault() {
		t.Fatalf("expected default first, got %s", all[0])
	}
	for _, l := range all {
		if !l.Valid() {
			t.Fatalf("locale %d reported invalid", l)
		}
	}
	if locale.Locale(0).Valid() {
		t.Fatalf("zero locale must be invalid")
	}
}
