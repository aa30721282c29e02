package media

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const assetNamespace = "media_asset"

// NewAssetRepository creates a repository for Asset entities keyed by path.
func NewAssetRepository(db *bun.DB) repository.Repository[*Asset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Asset]{
		NewRecord: func() *Asset { return &Asset{} },
		GetID: func(a *Asset) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Asset, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(a *Asset) string {
			return a.Path
		},
	})
}

// BunAssetRepository implements AssetRepository with optional caching.
type BunAssetRepository struct {
	repo         repository.Repository[*Asset]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunAssetRepository creates an asset repository without caching.
func NewBunAssetRepository(db *bun.DB) *BunAssetRepository {
	return NewBunAssetRepositoryWithCache(db, nil, nil)
}

// NewBunAssetRepositoryWithCache creates an asset repository whose reads go
// through the cache service when one is supplied.
func NewBunAssetRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunAssetRepository {
	base := NewAssetRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = assetNamespace + cache.KeySeparator
	}
	return &BunAssetRepository{repo: base, cacheService: svc, cachePrefix: prefix}
}

var _ AssetRepository = (*BunAssetRepository)(nil)

func (r *BunAssetRepository) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	record, err := r.repo.Create(ctx, asset)
	if err != nil {
		return nil, err
	}
	return record, r.InvalidateCache(ctx)
}

func (r *BunAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunAssetRepository) GetByPath(ctx context.Context, path string) (*Asset, error) {
	record, err := r.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, path)
	}
	return record, nil
}

func (r *BunAssetRepository) List(ctx context.Context) ([]*Asset, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.path ASC")
		}),
	)
	return records, err
}

func (r *BunAssetRepository) Update(ctx context.Context, asset *Asset) (*Asset, error) {
	record, err := r.repo.Update(ctx, asset)
	if err != nil {
		return nil, mapRepositoryError(err, asset.ID.String())
	}
	return record, r.InvalidateCache(ctx)
}

// InvalidateCache drops cached asset lookups.
func (r *BunAssetRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

// CreateSchema creates the media_assets table when missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*Asset)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create media table: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	return fmt.Errorf("media repository error: %w", err)
}
