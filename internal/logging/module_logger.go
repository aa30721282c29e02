package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	rootModule      = "sitecms"
	lifecycleModule = "sitecms.lifecycle"
	mediaModule     = "sitecms.media"
	auditModule     = "sitecms.audit"
	commandsModule  = "sitecms.commands"
)

// Structured field keys shared across modules.
const (
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldActor      = "actor"
	FieldLocale     = "locale"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields the
// no-op logger. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LifecycleLogger returns the logger used by the entity lifecycle engine.
func LifecycleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lifecycleModule)
}

// MediaLogger returns the logger used by the media resolver.
func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// AuditLogger returns the logger used by audit sinks.
func AuditLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, auditModule)
}

// CommandsLogger returns the logger used by admin command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithEntityContext annotates logger with the entity being operated on.
// Empty values are skipped.
func WithEntityContext(logger interfaces.Logger, entityType string, id, actor uuid.UUID) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entityType); trimmed != "" {
		fields[FieldEntityType] = trimmed
	}
	if id != uuid.Nil {
		fields[FieldEntityID] = id.String()
	}
	if actor != uuid.Nil {
		fields[FieldActor] = actor.String()
	}
	return WithFields(logger, fields)
}

// WithLocale annotates logger with the locale a read was resolved for.
func WithLocale(logger interfaces.Logger, code string) interfaces.Logger {
	if trimmed := strings.TrimSpace(code); trimmed != "" {
		return WithFields(logger, map[string]any{FieldLocale: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
