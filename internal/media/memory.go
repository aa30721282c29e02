package media

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type memoryAssetRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Asset
	byPath map[string]uuid.UUID
}

// NewMemoryAssetRepository constructs an in-memory repository for assets.
func NewMemoryAssetRepository() AssetRepository {
	return &memoryAssetRepository{
		byID:   make(map[uuid.UUID]*Asset),
		byPath: make(map[string]uuid.UUID),
	}
}

func (m *memoryAssetRepository) Create(_ context.Context, asset *Asset) (*Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[asset.ID]; exists {
		return nil, fmt.Errorf("media: asset %s already exists", asset.ID)
	}
	cloned := cloneAsset(asset)
	m.byID[cloned.ID] = cloned
	m.byPath[cloned.Path] = cloned.ID
	return cloneAsset(cloned), nil
}

func (m *memoryAssetRepository) GetByID(_ context.Context, id uuid.UUID) (*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	asset, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	return cloneAsset(asset), nil
}

func (m *memoryAssetRepository) GetByPath(_ context.Context, path string) (*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	return cloneAsset(m.byID[id]), nil
}

func (m *memoryAssetRepository) List(_ context.Context) ([]*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Asset, 0, len(m.byID))
	for _, asset := range m.byID {
		out = append(out, cloneAsset(asset))
	}
	slices.SortFunc(out, func(a, b *Asset) int {
		if a.Path < b.Path {
			return -1
		}
		if a.Path > b.Path {
			return 1
		}
		return 0
	})
	return out, nil
}

func (m *memoryAssetRepository) Update(_ context.Context, asset *Asset) (*Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[asset.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, asset.ID)
	}
	if existing.Path != asset.Path {
		delete(m.byPath, existing.Path)
	}
	cloned := cloneAsset(asset)
	m.byID[cloned.ID] = cloned
	m.byPath[cloned.Path] = cloned.ID
	return cloneAsset(cloned), nil
}
