package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	// ErrAssetNotFound indicates that the requested media asset could not be located.
	ErrAssetNotFound = interfaces.ErrMediaNotFound
	// ErrAssetPathConflict reports a registration whose id collides with an asset at another path.
	ErrAssetPathConflict = errors.New("media: asset id already registered for another path")
	// ErrRepositoryRequired reports a service constructed without storage.
	ErrRepositoryRequired = errors.New("media: repository is required")
)

// RegisterInput describes an asset entering the library.
type RegisterInput struct {
	// ID is optional; assets without one receive a deterministic id derived
	// from their path.
	ID       uuid.UUID
	Path     string
	AltText  string
	MimeType string
}

// Validate checks the registration payload.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Path, validation.Required, validation.Length(1, 512), validation.By(func(value any) error {
			path, _ := value.(string)
			if strings.TrimSpace(path) != path {
				return errors.New("must not have surrounding whitespace")
			}
			return nil
		})),
		validation.Field(&in.AltText, validation.Length(0, 512)),
		validation.Field(&in.MimeType, validation.Length(0, 128)),
	)
}

// ServiceOption customises the media service behaviour.
type ServiceOption func(*Service)

// WithLogger sets the logger used for library mutations.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service owns the media library and resolves asset references for records.
type Service struct {
	repo   AssetRepository
	logger interfaces.Logger
	now    func() time.Time
}

var _ interfaces.MediaResolver = (*Service)(nil)

// NewService constructs a media library service.
func NewService(repo AssetRepository, opts ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ResolveMedia returns the summary of a live asset.
func (s *Service) ResolveMedia(ctx context.Context, id uuid.UUID) (*interfaces.MediaSummary, error) {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.DeletedAt != nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	return asset.Summary(), nil
}

// Register adds an asset to the library. Registering an existing path
// refreshes its metadata and revives it when retired.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Asset, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()

	existing, err := s.repo.GetByPath(ctx, in.Path)
	switch {
	case err == nil:
		if in.ID != uuid.Nil && in.ID != existing.ID {
			return nil, fmt.Errorf("%w: %s", ErrAssetPathConflict, in.Path)
		}
		existing.AltText = in.AltText
		existing.MimeType = in.MimeType
		existing.DeletedAt = nil
		existing.UpdatedAt = now
		updated, err := s.repo.Update(ctx, existing)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("media.asset.refreshed", "asset_id", updated.ID, "path", updated.Path)
		return updated, nil
	case !errors.Is(err, ErrAssetNotFound):
		return nil, err
	}

	id := in.ID
	if id == uuid.Nil {
		id = identity.MediaAssetUUID(in.Path)
	}
	if other, err := s.repo.GetByID(ctx, id); err == nil && other.Path != in.Path {
		return nil, fmt.Errorf("%w: %s", ErrAssetPathConflict, other.Path)
	}

	created, err := s.repo.Create(ctx, &Asset{
		ID:        id,
		Path:      in.Path,
		AltText:   in.AltText,
		MimeType:  in.MimeType,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("media.asset.registered", "asset_id", created.ID, "path", created.Path)
	return created, nil
}

// Retire soft-deletes an asset. Records still referencing it keep the id but
// stop resolving a summary.
func (s *Service) Retire(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset.DeletedAt != nil {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	now := s.now()
	asset.DeletedAt = &now
	asset.UpdatedAt = now
	if _, err := s.repo.Update(ctx, asset); err != nil {
		return err
	}
	s.logger.Info("media.asset.retired", "asset_id", id)
	return nil
}

// List returns every asset ordered by path. Retired assets are skipped unless
// includeRetired is set.
func (s *Service) List(ctx context.Context, includeRetired bool) ([]*Asset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if includeRetired {
		return assets, nil
	}
	out := assets[:0]
	for _, asset := range assets {
		if asset.DeletedAt == nil {
			out = append(out, asset)
		}
	}
	return out, nil
}
