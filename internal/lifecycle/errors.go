package lifecycle

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Recoverable error kinds. Every failure returned by Service unwraps to
// exactly one of these.
var (
	ErrValidation        = errors.New("lifecycle: validation failed")
	ErrNotFound          = errors.New("lifecycle: record not found")
	ErrReferenceNotFound = errors.New("lifecycle: referenced record not found")
	ErrConflict          = errors.New("lifecycle: conflict")
)

// Validation causes carried by ValidationError.
var (
	ErrDefaultLocaleRequired   = errors.New("default locale translation is required")
	ErrInvalidLocale           = errors.New("translation locale is not supported")
	ErrDisplayOrderRequired    = errors.New("display order is required")
	ErrCodeRequired            = errors.New("code is required")
	ErrCodeInvalid             = errors.New("code contains invalid characters")
	ErrCodeUnsupported         = errors.New("code is not supported for this entity")
	ErrMediaRequired           = errors.New("media is required")
	ErrParentRequired          = errors.New("parent is required")
	ErrHasChildren             = errors.New("cannot delete while children exist")
	ErrHardDeleteUnsupported   = errors.New("hard delete is not supported for this entity")
	ErrPageInvalid             = errors.New("page must be greater than zero")
	ErrPageSizeInvalid         = errors.New("page size must be greater than zero")
	ErrPageSizeTooLarge        = errors.New("page size exceeds the configured maximum")
	ErrUnknownField            = errors.New("unknown field")
	ErrDuplicateID             = errors.New("duplicate identifier")
	ErrMediaResolverMissing    = errors.New("media resolver not configured")
	ErrRecordMissing           = errors.New("lifecycle: storage row not found")
	errDefinitionTypeRequired  = errors.New("lifecycle: definition entity type is required")
	errDefinitionStoreRequired = errors.New("lifecycle: store is required")
)

// ValidationError reports invalid caller input. Field names the offending
// payload path (for example "translations.en" or "fields").
type ValidationError struct {
	EntityType string
	Field      string
	Err        error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrValidation.Error()
	}
	parts := []string{ErrValidation.Error()}
	if field := strings.TrimSpace(e.Field); field != "" {
		parts = append(parts, field)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ValidationError) Unwrap() []error {
	if e == nil || e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// NotFoundError reports an identity that does not resolve to a live record.
// Deleted distinguishes a soft-deleted record from one that never existed.
type NotFoundError struct {
	EntityType string
	ID         uuid.UUID
	Key        string
	Deleted    bool
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	key := e.Key
	if key == "" && e.ID != uuid.Nil {
		key = e.ID.String()
	}
	state := "not found"
	if e.Deleted {
		state = "deleted"
	}
	if key == "" {
		return fmt.Sprintf("%s %s", e.EntityType, state)
	}
	return fmt.Sprintf("%s %q %s", e.EntityType, key, state)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ReferenceNotFoundError reports a foreign identity (media asset, parent
// record) that does not resolve to a live row.
type ReferenceNotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *ReferenceNotFoundError) Error() string {
	if e == nil {
		return ErrReferenceNotFound.Error()
	}
	return fmt.Sprintf("%s: %s %s", ErrReferenceNotFound.Error(), e.Resource, e.ID)
}

func (e *ReferenceNotFoundError) Unwrap() error {
	return ErrReferenceNotFound
}

// ConflictError reports a uniqueness violation on a human chosen key.
type ConflictError struct {
	EntityType string
	Field      string
	Value      string
	ExistingID uuid.UUID
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s: %s %s=%q already used by %s", ErrConflict.Error(), e.EntityType, e.Field, e.Value, e.ExistingID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// HTTPStatus maps err onto the status code the HTTP boundary should use.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrReferenceNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
