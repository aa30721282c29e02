package lifecycle

import (
	"time"

	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// PublicView is the shape anonymous site visitors receive: one resolved
// translation and no audit metadata.
type PublicView[B any, V any] struct {
	ID             uuid.UUID                `json:"id"`
	Code           string                   `json:"code,omitempty"`
	ParentID       *uuid.UUID               `json:"parent_id,omitempty"`
	DisplayOrder   int                      `json:"display_order"`
	Fields         B                        `json:"fields"`
	Content        V                        `json:"content"`
	ResolvedLocale locale.Locale            `json:"resolved_locale,omitempty"`
	Media          *interfaces.MediaSummary `json:"media,omitempty"`
}

// AdminView carries every stored translation plus the audit trail columns.
type AdminView[B any, V any] struct {
	ID           uuid.UUID                `json:"id"`
	Code         string                   `json:"code,omitempty"`
	ParentID     *uuid.UUID               `json:"parent_id,omitempty"`
	DisplayOrder int                      `json:"display_order"`
	IsActive     bool                     `json:"is_active"`
	Fields       B                        `json:"fields"`
	Translations map[locale.Locale]V      `json:"translations"`
	MediaID      *uuid.UUID               `json:"media_id,omitempty"`
	Media        *interfaces.MediaSummary `json:"media,omitempty"`
	DeletedAt    *time.Time               `json:"deleted_at,omitempty"`
	CreatedBy    interfaces.ActorSummary  `json:"created_by"`
	UpdatedBy    interfaces.ActorSummary  `json:"updated_by"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// Pagination describes one admin page. TotalPages is zero exactly when Total
// is zero.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// AdminPage is a page of admin views and its pagination envelope.
type AdminPage[B any, V any] struct {
	Items      []AdminView[B, V] `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// PublicFilter narrows a public listing.
type PublicFilter struct {
	ParentID *uuid.UUID
}

// AdminPageQuery selects an admin page. Search matches case-insensitively
// against codes, base text fields and every translation.
type AdminPageQuery struct {
	Page     int
	PageSize int
	Search   string
	ParentID *uuid.UUID
	Active   *bool
}

// CreateRequest creates a record. Variants must include locale.Default.
type CreateRequest[B any, V any] struct {
	Code         string
	ParentID     *uuid.UUID
	DisplayOrder *int
	IsActive     *bool
	MediaID      *uuid.UUID
	Fields       B
	Variants     map[locale.Locale]V
	Actor        uuid.UUID
}

// UpdateRequest modifies a record. Nil pointers leave the stored value
// untouched. Fields is a partial patch keyed by the JSON field names of the
// base document. Variants replace only the locales they name.
type UpdateRequest[V any] struct {
	Code         *string
	ParentID     *uuid.UUID
	DisplayOrder *int
	IsActive     *bool
	MediaID      *uuid.UUID
	ClearMedia   bool
	Fields       map[string]any
	Variants     map[locale.Locale]V
	Actor        uuid.UUID
}
