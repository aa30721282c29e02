package sitecms

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitecms/internal/catalog"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/media"
)

// Catalog exports the per-entity lifecycle services.
type Catalog = catalog.Catalog

// CatalogHandlers exports the command handlers for every catalog entity.
type CatalogHandlers = commands.CatalogHandlers

// MediaService exports the media library contract.
type MediaService = media.Service

// Record views and requests, parameterised by an entity's base fields (B)
// and translatable copy (V).
type (
	PublicView[B any, V any]    = lifecycle.PublicView[B, V]
	AdminView[B any, V any]     = lifecycle.AdminView[B, V]
	AdminPage[B any, V any]     = lifecycle.AdminPage[B, V]
	CreateRequest[B any, V any] = lifecycle.CreateRequest[B, V]
	UpdateRequest[V any]        = lifecycle.UpdateRequest[V]
	AdminPageQuery              = lifecycle.AdminPageQuery
	Pagination                  = lifecycle.Pagination
	PublicFilter                = lifecycle.PublicFilter
)

// Error kinds returned by record operations.
var (
	ErrValidation        = lifecycle.ErrValidation
	ErrNotFound          = lifecycle.ErrNotFound
	ErrReferenceNotFound = lifecycle.ErrReferenceNotFound
	ErrConflict          = lifecycle.ErrConflict
)

var errNilModule = errors.New("sitecms: module not initialised")

// Module represents the top level site CMS runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and bootstraps it: tables are created when
// Storage.AutoMigrate is set and demo content is loaded when Seed is set.
func New(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := container.Bootstrap(ctx); err != nil {
		_ = container.Close()
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}

// Catalog returns the lifecycle services for every marketing entity.
func (m *Module) Catalog() *Catalog {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Catalog()
}

// Commands returns the command handlers wrapping the catalog services.
func (m *Module) Commands() *CatalogHandlers {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands()
}

// Media returns the media library.
func (m *Module) Media() *MediaService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Media()
}

// AdminQuery builds a first-page admin query using the configured default
// page size.
func (m *Module) AdminQuery(page int, search string) (AdminPageQuery, error) {
	if m == nil || m.container == nil {
		return AdminPageQuery{}, errNilModule
	}
	if page <= 0 {
		page = 1
	}
	return AdminPageQuery{
		Page:     page,
		PageSize: m.container.Config.Admin.DefaultPageSize,
		Search:   search,
	}, nil
}

// Close releases the database handle when the module opened it.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// HTTPStatus maps an error returned by a record operation to a status code.
func HTTPStatus(err error) int {
	return lifecycle.HTTPStatus(err)
}
