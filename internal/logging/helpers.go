package logging

import (
	"maps"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// WithFields attaches structured fields when logger implements
// interfaces.FieldsLogger and returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithError attaches err under the "error" key. A nil error is a no-op.
func WithError(logger interfaces.Logger, err error) interfaces.Logger {
	if err == nil {
		return logger
	}
	return WithFields(logger, map[string]any{"error": err.Error()})
}
