package lifecycle

import (
	"sort"
	"strings"

	"github.com/goliatone/go-sitecms/internal/locale"
)

const likeEscape = '!'

// buildSearchText collects every string value in doc (plus extras) into one
// lowercase haystack. Keys are visited in sorted order so equal documents
// produce equal text.
func buildSearchText(doc map[string]any, extras ...string) string {
	parts := make([]string, 0, len(doc)+len(extras))
	for _, extra := range extras {
		if trimmed := strings.TrimSpace(extra); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	parts = collectStrings(doc, parts)
	return strings.ToLower(strings.Join(parts, " "))
}

func collectStrings(value any, acc []string) []string {
	switch typed := value.(type) {
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			acc = append(acc, trimmed)
		}
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			acc = collectStrings(typed[key], acc)
		}
	case []any:
		for _, item := range typed {
			acc = collectStrings(item, acc)
		}
	}
	return acc
}

// normalizeSearch lowercases and trims a caller supplied search term.
func normalizeSearch(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// likePattern wraps a normalized term for a LIKE ... ESCAPE '!' comparison.
func likePattern(term string) string {
	var b strings.Builder
	b.Grow(len(term) + 2)
	b.WriteByte('%')
	for _, r := range term {
		if r == '%' || r == '_' || r == likeEscape {
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}

// publicLocales lists the locale codes a public read needs first: the
// requested locale and the default.
func publicLocales(requested locale.Locale) []string {
	if !requested.Valid() || requested == locale.Default {
		return []string{locale.Default.String()}
	}
	return []string{requested.String(), locale.Default.String()}
}

// localePosition orders variants of one record deterministically.
func localePosition(l locale.Locale) int {
	for i, candidate := range locale.All() {
		if candidate == l {
			return i
		}
	}
	return len(locale.All())
}
