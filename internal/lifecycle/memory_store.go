package lifecycle

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]*RecordRow
	variants map[uuid.UUID]map[string]*VariantRow
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{
		records:  make(map[uuid.UUID]*RecordRow),
		variants: make(map[uuid.UUID]map[string]*VariantRow),
	}
}

func (m *memoryStore) InsertRecord(_ context.Context, record *RecordRow, variants []*VariantRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[record.ID] = cloneRecordRow(record)
	byLocale := make(map[string]*VariantRow, len(variants))
	for _, variant := range variants {
		byLocale[variant.Locale] = cloneVariantRow(variant)
	}
	m.variants[record.ID] = byLocale
	return nil
}

func (m *memoryStore) UpdateRecord(_ context.Context, record *RecordRow, variants []*VariantRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; !ok {
		return ErrRecordMissing
	}
	m.records[record.ID] = cloneRecordRow(record)
	byLocale := m.variants[record.ID]
	if byLocale == nil {
		byLocale = make(map[string]*VariantRow, len(variants))
		m.variants[record.ID] = byLocale
	}
	for _, variant := range variants {
		if existing, ok := byLocale[variant.Locale]; ok {
			updated := cloneVariantRow(existing)
			updated.Fields = cloneDocument(variant.Fields)
			updated.SearchText = variant.SearchText
			updated.UpdatedAt = variant.UpdatedAt
			byLocale[variant.Locale] = updated
			continue
		}
		byLocale[variant.Locale] = cloneVariantRow(variant)
	}
	return nil
}

func (m *memoryStore) GetRecord(_ context.Context, id uuid.UUID) (*RecordRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrRecordMissing
	}
	return cloneRecordRow(record), nil
}

func (m *memoryStore) FindByCode(_ context.Context, entityType, code string, includeDeleted bool) ([]*RecordRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*RecordRow
	for _, record := range m.records {
		if record.EntityType != entityType || record.Code != code {
			continue
		}
		if record.DeletedAt != nil && !includeDeleted {
			continue
		}
		out = append(out, cloneRecordRow(record))
	}
	sortRecordRows(out)
	return out, nil
}

func (m *memoryStore) ListRecords(_ context.Context, query RecordQuery) ([]*RecordRow, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := normalizeSearch(query.Search)
	matched := make([]*RecordRow, 0)
	for _, record := range m.records {
		if record.EntityType != query.EntityType || record.DeletedAt != nil {
			continue
		}
		if query.ParentID != nil && (record.ParentID == nil || *record.ParentID != *query.ParentID) {
			continue
		}
		if query.Active != nil && record.IsActive != *query.Active {
			continue
		}
		if term != "" && !m.matchesSearch(record, term) {
			continue
		}
		matched = append(matched, record)
	}
	sortRecordRows(matched)

	total := len(matched)
	window := matched
	if query.Limit > 0 {
		start := min(max(query.Offset, 0), total)
		end := total
		if query.Limit < total-start {
			end = start + query.Limit
		}
		window = matched[start:end]
	}
	out := make([]*RecordRow, 0, len(window))
	for _, record := range window {
		out = append(out, cloneRecordRow(record))
	}
	return out, total, nil
}

func (m *memoryStore) matchesSearch(record *RecordRow, term string) bool {
	if strings.Contains(record.SearchText, term) {
		return true
	}
	for _, variant := range m.variants[record.ID] {
		if strings.Contains(variant.SearchText, term) {
			return true
		}
	}
	return false
}

func (m *memoryStore) ListVariants(_ context.Context, recordIDs []uuid.UUID, locales []string) ([]*VariantRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*VariantRow
	for _, id := range recordIDs {
		byLocale := m.variants[id]
		rows := make([]*VariantRow, 0, len(byLocale))
		for code, variant := range byLocale {
			if len(locales) > 0 && !slices.Contains(locales, code) {
				continue
			}
			rows = append(rows, cloneVariantRow(variant))
		}
		slices.SortFunc(rows, func(a, b *VariantRow) int {
			if a.Position != b.Position {
				return a.Position - b.Position
			}
			return strings.Compare(a.Locale, b.Locale)
		})
		out = append(out, rows...)
	}
	return out, nil
}

func (m *memoryStore) CountLiveChildren(_ context.Context, entityType string, parentID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, record := range m.records {
		if record.EntityType != entityType || record.DeletedAt != nil || record.ParentID == nil {
			continue
		}
		if *record.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) SoftDeleteRecord(_ context.Context, id, actor uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok || record.DeletedAt != nil {
		return ErrRecordMissing
	}
	deletedAt := at
	record.DeletedAt = &deletedAt
	record.IsActive = false
	record.UpdatedBy = actor
	record.UpdatedAt = at
	return nil
}

func (m *memoryStore) DeleteRecord(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrRecordMissing
	}
	delete(m.records, id)
	delete(m.variants, id)
	return nil
}

func (m *memoryStore) ReorderRecords(_ context.Context, ids []uuid.UUID, actor uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		if record, ok := m.records[id]; !ok || record.DeletedAt != nil {
			return ErrRecordMissing
		}
	}
	for i, id := range ids {
		record := m.records[id]
		record.DisplayOrder = i + 1
		record.UpdatedBy = actor
		record.UpdatedAt = at
	}
	return nil
}

func sortRecordRows(rows []*RecordRow) {
	slices.SortStableFunc(rows, func(a, b *RecordRow) int {
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder - b.DisplayOrder
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
