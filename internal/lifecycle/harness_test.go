package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-sitecms/pkg/testsupport"
	"github.com/google/uuid"
)

type planFields struct {
	PriceCents int  `json:"price_cents"`
	Featured   bool `json:"featured"`
}

type planCopy struct {
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
}

type categoryFields struct {
	Icon string `json:"icon,omitempty"`
}

type logoFields struct {
	URL string `json:"url,omitempty"`
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingSink struct {
	mu      sync.Mutex
	records []interfaces.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return s.err
}

func (s *recordingSink) verbs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record.ObjectType+":"+record.Verb)
	}
	return out
}

type stubMedia struct {
	assets map[uuid.UUID]*interfaces.MediaSummary
}

func (m *stubMedia) ResolveMedia(_ context.Context, id uuid.UUID) (*interfaces.MediaSummary, error) {
	if asset, ok := m.assets[id]; ok {
		copied := *asset
		return &copied, nil
	}
	return nil, fmt.Errorf("asset %s: %w", id, interfaces.ErrMediaNotFound)
}

type stubActors map[uuid.UUID]interfaces.ActorSummary

func (a stubActors) LookupActors(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]interfaces.ActorSummary, error) {
	out := make(map[uuid.UUID]interfaces.ActorSummary, len(ids))
	for _, id := range ids {
		if summary, ok := a[id]; ok {
			out[id] = summary
		}
	}
	return out, nil
}

type harness struct {
	store      lifecycle.Store
	sink       *recordingSink
	media      *stubMedia
	actor      uuid.UUID
	plans      *lifecycle.Service[planFields, planCopy]
	categories *lifecycle.Service[categoryFields, planCopy]
	faqs       *lifecycle.Service[struct{}, planCopy]
	logos      *lifecycle.Service[logoFields, planCopy]
}

func validatePlanCopy(c planCopy) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
	)
}

func validatePlanFields(f planFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.PriceCents, validation.Min(0)),
	)
}

func newHarness(t *testing.T, store lifecycle.Store, extra ...lifecycle.Option) *harness {
	t.Helper()
	h := &harness{
		store: store,
		sink:  &recordingSink{},
		media: &stubMedia{assets: map[uuid.UUID]*interfaces.MediaSummary{}},
		actor: uuid.MustParse("00000000-0000-0000-0000-00000000a11c"),
	}
	clock := &stepClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	opts := []lifecycle.Option{
		lifecycle.WithClock(clock.Now),
		lifecycle.WithActivitySink(h.sink, "sitecms-test"),
		lifecycle.WithMediaResolver(h.media),
		lifecycle.WithCodeSequence(func(time.Time) string { return "seq" }),
	}
	opts = append(opts, extra...)

	var err error
	h.plans, err = lifecycle.NewService(lifecycle.Definition[planFields, planCopy]{
		EntityType:          "pricing_plan",
		Code:                lifecycle.CodePolicy{Enabled: true, Scope: lifecycle.CodeScopeLive},
		RequireDisplayOrder: true,
		ValidateFields:      validatePlanFields,
		ValidateVariant:     validatePlanCopy,
	}, store, opts...)
	if err != nil {
		t.Fatalf("plan service: %v", err)
	}
	h.categories, err = lifecycle.NewService(lifecycle.Definition[categoryFields, planCopy]{
		EntityType:      "faq_category",
		Code:            lifecycle.CodePolicy{Enabled: true, Generate: true, Prefix: "cat", Scope: lifecycle.CodeScopeAll},
		Children:        []string{"faq"},
		ValidateVariant: validatePlanCopy,
	}, store, opts...)
	if err != nil {
		t.Fatalf("category service: %v", err)
	}
	h.faqs, err = lifecycle.NewService(lifecycle.Definition[struct{}, planCopy]{
		EntityType:      "faq",
		Parent:          "faq_category",
		LineItem:        true,
		ValidateVariant: validatePlanCopy,
	}, store, opts...)
	if err != nil {
		t.Fatalf("faq service: %v", err)
	}
	h.logos, err = lifecycle.NewService(lifecycle.Definition[logoFields, planCopy]{
		EntityType:   "partner_logo",
		RequireMedia: true,
	}, store, opts...)
	if err != nil {
		t.Fatalf("logo service: %v", err)
	}
	return h
}

// eachStore runs fn against the in-memory store and a SQLite backed bun store.
func eachStore(t *testing.T, fn func(t *testing.T, store lifecycle.Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, lifecycle.NewMemoryStore())
	})
	t.Run("bun", func(t *testing.T) {
		name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
		db, err := testsupport.NewBunSQLiteDB(name)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := lifecycle.CreateSchema(context.Background(), db); err != nil {
			t.Fatalf("create schema: %v", err)
		}
		fn(t, lifecycle.NewBunStore(db))
	})
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func (h *harness) createPlan(t *testing.T, code string, order int, variants map[locale.Locale]planCopy) lifecycle.AdminView[planFields, planCopy] {
	t.Helper()
	view, err := h.plans.Create(context.Background(), lifecycle.CreateRequest[planFields, planCopy]{
		Code:         code,
		DisplayOrder: intPtr(order),
		Fields:       planFields{PriceCents: 900, Featured: true},
		Variants:     variants,
		Actor:        h.actor,
	})
	if err != nil {
		t.Fatalf("create plan %q: %v", code, err)
	}
	return view
}

func (h *harness) createCategory(t *testing.T, name string) lifecycle.AdminView[categoryFields, planCopy] {
	t.Helper()
	view, err := h.categories.Create(context.Background(), lifecycle.CreateRequest[categoryFields, planCopy]{
		Variants: map[locale.Locale]planCopy{locale.English: {Name: name}},
		Actor:    h.actor,
	})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return view
}

func expectKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}
