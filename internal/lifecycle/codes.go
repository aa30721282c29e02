package lifecycle

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

// normalizeCode applies slug rules to a caller supplied code.
func normalizeCode(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrCodeRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" || !slug.IsValid(normalized) {
		return "", ErrCodeInvalid
	}
	return normalized, nil
}

func generateCode(prefix string, sequence string) string {
	return prefix + "-" + sequence
}

func unixMillisSequence(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 36)
}
