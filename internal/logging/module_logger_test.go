package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "sitecms.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = LifecycleLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != lifecycleModule {
		t.Fatalf("expected module %s, got %v", lifecycleModule, provider.requested)
	}
	if got := rec.fields[0]["module"]; got != lifecycleModule {
		t.Fatalf("expected module field %s, got %v", lifecycleModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		mediaModule:    MediaLogger,
		auditModule:    AuditLogger,
		commandsModule: CommandsLogger,
	}
	for module, build := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = build(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithEntityContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	id := uuid.New()

	WithEntityContext(rec, " faq ", id, uuid.Nil)

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[FieldEntityType] != "faq" || fields[FieldEntityID] != id.String() {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields[FieldActor]; ok {
		t.Fatalf("expected actor to be skipped, got %v", fields)
	}
}

func TestWithErrorAndLocale(t *testing.T) {
	rec := &recordingLogger{}
	WithError(rec, nil)
	WithLocale(rec, "")
	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields for empty inputs, got %v", rec.fields)
	}
	WithError(rec, errors.New("boom"))
	WithLocale(rec, "es")
	if rec.fields[0]["error"] != "boom" || rec.fields[1][FieldLocale] != "es" {
		t.Fatalf("unexpected fields %v", rec.fields)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r-1"})
	ctx = ContextWithFields(ctx, map[string]any{"actor": "a-1"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "r-1" || fields["actor"] != "a-1" {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["request_id"] = "mutated"
	if ContextFields(ctx)["request_id"] != "r-1" {
		t.Fatalf("expected ContextFields to return a copy")
	}
}
