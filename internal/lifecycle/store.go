package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordRow is the persisted base record shared by every entity type.
type RecordRow struct {
	bun.BaseModel `bun:"table:localized_records,alias:lr"`

	ID           uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	EntityType   string         `bun:"entity_type,notnull" json:"entity_type"`
	Code         string         `bun:"code,notnull" json:"code"`
	ParentID     *uuid.UUID     `bun:"parent_id,type:uuid,nullzero" json:"parent_id,omitempty"`
	MediaID      *uuid.UUID     `bun:"media_id,type:uuid,nullzero" json:"media_id,omitempty"`
	DisplayOrder int            `bun:"display_order,notnull" json:"display_order"`
	IsActive     bool           `bun:"is_active,notnull" json:"is_active"`
	Fields       map[string]any `bun:"fields,type:jsonb" json:"fields"`
	SearchText   string         `bun:"search_text,notnull" json:"-"`
	DeletedAt    *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedBy    uuid.UUID      `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy    uuid.UUID      `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// VariantRow is one locale's translation of a record. (RecordID, Locale) is
// unique.
type VariantRow struct {
	bun.BaseModel `bun:"table:localized_record_translations,alias:lrt"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	RecordID   uuid.UUID      `bun:"record_id,notnull,type:uuid" json:"record_id"`
	Locale     string         `bun:"locale,notnull" json:"locale"`
	Position   int            `bun:"position,notnull" json:"position"`
	Fields     map[string]any `bun:"fields,type:jsonb" json:"fields"`
	SearchText string         `bun:"search_text,notnull" json:"-"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RecordQuery filters live records of one entity type. Limit <= 0 disables
// pagination.
type RecordQuery struct {
	EntityType string
	ParentID   *uuid.UUID
	Active     *bool
	Search     string
	Limit      int
	Offset     int
}

// Store persists records and their variants. Implementations report absent
// rows with ErrRecordMissing and apply multi-row writes atomically.
type Store interface {
	InsertRecord(ctx context.Context, record *RecordRow, variants []*VariantRow) error
	// UpdateRecord rewrites the base row and upserts the given variants on
	// (record_id, locale). Variants not named are left untouched.
	UpdateRecord(ctx context.Context, record *RecordRow, variants []*VariantRow) error
	// GetRecord returns the row whether or not it is soft-deleted.
	GetRecord(ctx context.Context, id uuid.UUID) (*RecordRow, error)
	// FindByCode lists rows of entityType carrying code, soft-deleted rows
	// included only when includeDeleted is set.
	FindByCode(ctx context.Context, entityType, code string, includeDeleted bool) ([]*RecordRow, error)
	// ListRecords returns the requested window ordered by display_order,
	// created_at, id and the total matching the same filter.
	ListRecords(ctx context.Context, query RecordQuery) ([]*RecordRow, int, error)
	// ListVariants returns variants for recordIDs ordered by record, then
	// position. An empty locales slice loads every locale.
	ListVariants(ctx context.Context, recordIDs []uuid.UUID, locales []string) ([]*VariantRow, error)
	CountLiveChildren(ctx context.Context, entityType string, parentID uuid.UUID) (int, error)
	// SoftDeleteRecord marks a live row deleted. It fails with
	// ErrRecordMissing when the row is absent or already deleted.
	SoftDeleteRecord(ctx context.Context, id, actor uuid.UUID, at time.Time) error
	// DeleteRecord removes the row and its variants.
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	// ReorderRecords assigns display_order 1..n following ids.
	ReorderRecords(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, at time.Time) error
}

func cloneRecordRow(src *RecordRow) *RecordRow {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.ParentID = cloneUUIDPtr(src.ParentID)
	cloned.MediaID = cloneUUIDPtr(src.MediaID)
	cloned.Fields = cloneDocument(src.Fields)
	if src.DeletedAt != nil {
		at := *src.DeletedAt
		cloned.DeletedAt = &at
	}
	return &cloned
}

func cloneVariantRow(src *VariantRow) *VariantRow {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Fields = cloneDocument(src.Fields)
	return &cloned
}

func cloneUUIDPtr(src *uuid.UUID) *uuid.UUID {
	if src == nil {
		return nil
	}
	id := *src
	return &id
}
