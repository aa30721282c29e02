package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is the closed set of languages the site publishes. The zero value is
// not a valid locale; use Default when no better choice exists.
type Locale uint8

const (
	English Locale = iota + 1
	Spanish
	Portuguese
)

// Default is the mandatory locale every record must carry on creation.
const Default = English

// ErrUnknownLocale reports a locale code outside the supported set.
var ErrUnknownLocale = errors.New("locale: unknown locale")

var (
	all  = []Locale{English, Spanish, Portuguese}
	tags = map[Locale]language.Tag{
		English:    language.English,
		Spanish:    language.Spanish,
		Portuguese: language.Portuguese,
	}
	codes = map[Locale]string{
		English:    "en",
		Spanish:    "es",
		Portuguese: "pt",
	}
	names = map[Locale]string{
		English:    "English",
		Spanish:    "Español",
		Portuguese: "Português",
	}
	// Default must stay first so the matcher falls back to it.
	matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish, language.Portuguese})
)

// All returns every supported locale with the default first.
func All() []Locale {
	out := make([]Locale, len(all))
	copy(out, all)
	return out
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	_, ok := codes[l]
	return ok
}

// IsDefault reports whether l is the default locale.
func (l Locale) IsDefault() bool {
	return l == Default
}

// String renders the short language code ("en", "es", "pt").
func (l Locale) String() string {
	if code, ok := codes[l]; ok {
		return code
	}
	return fmt.Sprintf("locale(%d)", uint8(l))
}

// DisplayName renders the native language name.
func (l Locale) DisplayName() string {
	return names[l]
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	if tag, ok := tags[l]; ok {
		return tag
	}
	return language.Und
}

// MarshalText implements encoding.TextMarshaler so locales can key JSON maps.
func (l Locale) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLocale, uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the strict Lookup.
func (l *Locale) UnmarshalText(text []byte) error {
	parsed, err := Lookup(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Lookup resolves an exact locale code. Region subtags are accepted ("es-MX"
// resolves to Spanish) but unsupported languages fail with ErrUnknownLocale.
// Admin payloads use Lookup so a typo never silently lands on the default.
func Lookup(code string) (Locale, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty code", ErrUnknownLocale)
	}
	for _, candidate := range all {
		if codes[candidate] == trimmed {
			return candidate, nil
		}
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	base, _ := tag.Base()
	for _, candidate := range all {
		if codes[candidate] == base.String() {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
}

// Parse resolves a requested locale for public reads. It never fails: absent,
// malformed or unsupported values resolve to Default.
func Parse(code string) Locale {
	if parsed, err := Lookup(code); err == nil {
		return parsed
	}
	return Default
}

// FromAcceptLanguage picks the best supported locale for an Accept-Language
// header value, falling back to Default.
func FromAcceptLanguage(header string) Locale {
	header = strings.TrimSpace(header)
	if header == "" {
		return Default
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No || index < 0 || index >= len(all) {
		return Default
	}
	return all[index]
}
