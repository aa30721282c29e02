package media

import (
	internalmedia "github.com/goliatone/go-sitecms/internal/media"
	"github.com/uptrace/bun"
)

// Re-exported errors from the internal media package.
var (
	ErrAssetNotFound     = internalmedia.ErrAssetNotFound
	ErrAssetPathConflict = internalmedia.ErrAssetPathConflict
)

// Re-exported types from the internal media package.
type (
	Asset           = internalmedia.Asset
	AssetRepository = internalmedia.AssetRepository
	RegisterInput   = internalmedia.RegisterInput
	Service         = internalmedia.Service
	ServiceOption   = internalmedia.ServiceOption
)

// NewMemoryService builds a media library backed by process memory.
func NewMemoryService(opts ...ServiceOption) (*Service, error) {
	return internalmedia.NewService(internalmedia.NewMemoryAssetRepository(), opts...)
}

// NewBunService builds a media library stored in db without caching.
func NewBunService(db *bun.DB, opts ...ServiceOption) (*Service, error) {
	return internalmedia.NewService(internalmedia.NewBunAssetRepository(db), opts...)
}
