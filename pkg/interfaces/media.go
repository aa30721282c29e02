package interfaces

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// MediaSummary is the slim media view attached to localized records.
type MediaSummary struct {
	ID      uuid.UUID `json:"id"`
	Path    string    `json:"path"`
	AltText string    `json:"alt_text"`
}

// ErrMediaNotFound reports a media identity with no live asset.
var ErrMediaNotFound = errors.New("media: asset not found")

// MediaResolver resolves media asset identities owned by the external media
// library. Implementations return an error that unwraps to ErrMediaNotFound
// when the asset is missing or deleted.
type MediaResolver interface {
	ResolveMedia(ctx context.Context, id uuid.UUID) (*MediaSummary, error)
}
