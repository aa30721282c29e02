package sitecms

import (
	"github.com/goliatone/go-sitecms/internal/locale"
)

// Locale identifies one of the supported content languages.
type Locale = locale.Locale

const (
	English    = locale.English
	Spanish    = locale.Spanish
	Portuguese = locale.Portuguese

	DefaultLocale = locale.Default
)

// ErrUnknownLocale indicates a locale code outside the supported set.
var ErrUnknownLocale = locale.ErrUnknownLocale

// LocaleInfo is the stable public view of a supported locale.
type LocaleInfo struct {
	Code      string `json:"code"`
	Display   string `json:"display"`
	IsDefault bool   `json:"is_default"`
}

// LookupLocale resolves a code such as "pt-BR" and fails for unsupported
// languages.
func LookupLocale(code string) (Locale, error) {
	return locale.Lookup(code)
}

// ParseLocale resolves a code and falls back to the default locale.
func ParseLocale(code string) Locale {
	return locale.Parse(code)
}

// LocaleFromAcceptLanguage picks the best supported locale for an
// Accept-Language header value.
func LocaleFromAcceptLanguage(header string) Locale {
	return locale.FromAcceptLanguage(header)
}

// SupportedLocales lists the supported locales, default first.
func SupportedLocales() []LocaleInfo {
	all := locale.All()
	out := make([]LocaleInfo, 0, len(all))
	for _, l := range all {
		out = append(out, LocaleInfo{
			Code:      l.String(),
			Display:   l.DisplayName(),
			IsDefault: l.IsDefault(),
		})
	}
	return out
}
