package media

import (
	"context"
	"time"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Asset is a library entry that localized records reference by id.
type Asset struct {
	bun.BaseModel `bun:"table:media_assets,alias:ma"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Path      string     `bun:"path,notnull" json:"path"`
	AltText   string     `bun:"alt_text,notnull" json:"alt_text"`
	MimeType  string     `bun:"mime_type" json:"mime_type,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Summary projects the asset onto the slim view embedded in records.
func (a *Asset) Summary() *interfaces.MediaSummary {
	if a == nil {
		return nil
	}
	return &interfaces.MediaSummary{ID: a.ID, Path: a.Path, AltText: a.AltText}
}

// AssetRepository persists media assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *Asset) (*Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	GetByPath(ctx context.Context, path string) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Update(ctx context.Context, asset *Asset) (*Asset, error)
}

func cloneAsset(src *Asset) *Asset {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.DeletedAt != nil {
		at := *src.DeletedAt
		cloned.DeletedAt = &at
	}
	return &cloned
}
