package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStore persists records through bun. Lookups go through go-repository-bun;
// multi-row writes run inside a transaction.
type BunStore struct {
	db      *bun.DB
	records repository.Repository[*RecordRow]
}

// NewRecordRepository creates a repository for RecordRow entities.
func NewRecordRepository(db *bun.DB) repository.Repository[*RecordRow] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*RecordRow]{
		NewRecord: func() *RecordRow { return &RecordRow{} },
		GetID: func(r *RecordRow) uuid.UUID {
			return r.ID
		},
		SetID: func(r *RecordRow, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(r *RecordRow) string {
			return r.Code
		},
	})
}

// NewBunStore wires a Store over db.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db, records: NewRecordRepository(db)}
}

var _ Store = (*BunStore)(nil)

func (s *BunStore) InsertRecord(ctx context.Context, record *RecordRow, variants []*VariantRow) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		if len(variants) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&variants).Exec(ctx); err != nil {
			return fmt.Errorf("insert translations: %w", err)
		}
		return nil
	})
}

func (s *BunStore) UpdateRecord(ctx context.Context, record *RecordRow, variants []*VariantRow) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(record).
			Column("code", "parent_id", "media_id", "display_order", "is_active", "fields", "search_text", "updated_by", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrRecordMissing
		}
		if len(variants) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().
			Model(&variants).
			On("CONFLICT (record_id, locale) DO UPDATE").
			Set("fields = EXCLUDED.fields").
			Set("search_text = EXCLUDED.search_text").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("upsert translations: %w", err)
		}
		return nil
	})
}

func (s *BunStore) GetRecord(ctx context.Context, id uuid.UUID) (*RecordRow, error) {
	record, err := s.records.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return record, nil
}

func (s *BunStore) FindByCode(ctx context.Context, entityType, code string, includeDeleted bool) ([]*RecordRow, error) {
	records, _, err := s.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.entity_type = ?", entityType).
				Where("?TableAlias.code = ?", code)
			if !includeDeleted {
				q = q.Where("?TableAlias.deleted_at IS NULL")
			}
			return q.OrderExpr("?TableAlias.display_order ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return records, nil
}

func (s *BunStore) ListRecords(ctx context.Context, query RecordQuery) ([]*RecordRow, int, error) {
	total, err := applyRecordFilters(s.db.NewSelect().Model((*RecordRow)(nil)), query).Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	var rows []*RecordRow
	q := applyRecordFilters(s.db.NewSelect().Model(&rows), query).
		OrderExpr("?TableAlias.display_order ASC").
		OrderExpr("?TableAlias.created_at ASC").
		OrderExpr("?TableAlias.id ASC")
	if query.Limit > 0 {
		q = q.Limit(query.Limit).Offset(max(query.Offset, 0))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	return rows, total, nil
}

func applyRecordFilters(q *bun.SelectQuery, query RecordQuery) *bun.SelectQuery {
	q = q.Where("?TableAlias.entity_type = ?", query.EntityType).
		Where("?TableAlias.deleted_at IS NULL")
	if query.ParentID != nil {
		q = q.Where("?TableAlias.parent_id = ?", *query.ParentID)
	}
	if query.Active != nil {
		q = q.Where("?TableAlias.is_active = ?", *query.Active)
	}
	if term := normalizeSearch(query.Search); term != "" {
		like := likePattern(term)
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.search_text LIKE ? ESCAPE '!'", like).
				WhereOr("EXISTS (SELECT 1 FROM localized_record_translations AS t WHERE t.record_id = ?TableAlias.id AND t.search_text LIKE ? ESCAPE '!')", like)
		})
	}
	return q
}

func (s *BunStore) ListVariants(ctx context.Context, recordIDs []uuid.UUID, locales []string) ([]*VariantRow, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}
	var rows []*VariantRow
	q := s.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.record_id IN (?)", bun.In(recordIDs))
	if len(locales) > 0 {
		q = q.Where("?TableAlias.locale IN (?)", bun.In(locales))
	}
	if err := q.OrderExpr("?TableAlias.record_id ASC, ?TableAlias.position ASC, ?TableAlias.locale ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	return rows, nil
}

func (s *BunStore) CountLiveChildren(ctx context.Context, entityType string, parentID uuid.UUID) (int, error) {
	count, err := s.db.NewSelect().
		Model((*RecordRow)(nil)).
		Where("?TableAlias.entity_type = ?", entityType).
		Where("?TableAlias.parent_id = ?", parentID).
		Where("?TableAlias.deleted_at IS NULL").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return count, nil
}

func (s *BunStore) SoftDeleteRecord(ctx context.Context, id, actor uuid.UUID, at time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*RecordRow)(nil)).
		Set("deleted_at = ?", at).
		Set("is_active = ?", false).
		Set("updated_by = ?", actor).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("soft delete record: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrRecordMissing
	}
	return nil
}

func (s *BunStore) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*VariantRow)(nil)).
			Where("record_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete translations: %w", err)
		}
		res, err := tx.NewDelete().
			Model((*RecordRow)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrRecordMissing
		}
		return nil
	})
}

func (s *BunStore) ReorderRecords(ctx context.Context, ids []uuid.UUID, actor uuid.UUID, at time.Time) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for i, id := range ids {
			res, err := tx.NewUpdate().
				Model((*RecordRow)(nil)).
				Set("display_order = ?", i+1).
				Set("updated_by = ?", actor).
				Set("updated_at = ?", at).
				Where("id = ?", id).
				Where("deleted_at IS NULL").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("reorder record %s: %w", id, err)
			}
			if affected, _ := res.RowsAffected(); affected == 0 {
				return ErrRecordMissing
			}
		}
		return nil
	})
}

// CreateSchema creates the record tables and indexes when missing. Postgres
// deployments apply the embedded migrations instead.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{(*RecordRow)(nil), (*VariantRow)(nil)}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	if _, err := db.NewCreateIndex().
		Model((*VariantRow)(nil)).
		Index("localized_record_translations_record_locale_uidx").
		Unique().
		IfNotExists().
		Column("record_id", "locale").
		Exec(ctx); err != nil {
		return fmt.Errorf("create translation index: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*RecordRow)(nil)).
		Index("localized_records_type_order_idx").
		IfNotExists().
		Column("entity_type", "display_order").
		Exec(ctx); err != nil {
		return fmt.Errorf("create record index: %w", err)
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return ErrRecordMissing
	}
	if errors.Is(err, ErrRecordMissing) || errors.Is(err, sql.ErrNoRows) {
		return ErrRecordMissing
	}
	return fmt.Errorf("record repository error: %w", err)
}
