package commands

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

const messagePrefix = "sitecms"

func messageType(entityType, action string) string {
	return messagePrefix + "." + strings.TrimSpace(entityType) + "." + action
}

func requiredID(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	})
}

func validateEnvelope(errs validation.Errors, entityType string, actor uuid.UUID) {
	if strings.TrimSpace(entityType) == "" {
		errs["entity_type"] = validation.NewError("sitecms.record.entity_type_required", "entity type is required")
	}
	if err := validation.Validate(actor, requiredID("sitecms.record.actor_required", "actor is required")); err != nil {
		errs["actor"] = err
	}
}

func validateLocales[V any](variants map[locale.Locale]V) error {
	for loc := range variants {
		if !loc.Valid() {
			return validation.NewError("sitecms.record.locale_invalid", fmt.Sprintf("locale %d is not supported", uint8(loc)))
		}
	}
	return nil
}

func errorsOrNil(errs validation.Errors) error {
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateRecordCommand creates a localized record. Result, when set, receives
// the stored record.
type CreateRecordCommand[B any, V any] struct {
	EntityType string                        `json:"entity_type"`
	Request    lifecycle.CreateRequest[B, V] `json:"request"`
	Result     *lifecycle.AdminView[B, V]    `json:"-"`
}

// Type implements command.Message.
func (m CreateRecordCommand[B, V]) Type() string { return messageType(m.EntityType, "create") }

// Validate checks the envelope; field rules run in the service.
func (m CreateRecordCommand[B, V]) Validate() error {
	errs := validation.Errors{}
	validateEnvelope(errs, m.EntityType, m.Request.Actor)
	if len(m.Request.Variants) == 0 {
		errs["variants"] = validation.NewError("sitecms.record.variants_required", "at least one translation is required")
	} else if err := validateLocales(m.Request.Variants); err != nil {
		errs["variants"] = err
	}
	return errorsOrNil(errs)
}

// UpdateRecordCommand patches an existing record.
type UpdateRecordCommand[B any, V any] struct {
	EntityType string                     `json:"entity_type"`
	ID         uuid.UUID                  `json:"id"`
	Request    lifecycle.UpdateRequest[V] `json:"request"`
	Result     *lifecycle.AdminView[B, V] `json:"-"`
}

// Type implements command.Message.
func (m UpdateRecordCommand[B, V]) Type() string { return messageType(m.EntityType, "update") }

// Validate checks the envelope and the target id.
func (m UpdateRecordCommand[B, V]) Validate() error {
	errs := validation.Errors{}
	validateEnvelope(errs, m.EntityType, m.Request.Actor)
	if err := validation.Validate(m.ID, requiredID("sitecms.record.id_required", "record id is required")); err != nil {
		errs["id"] = err
	}
	if err := validateLocales(m.Request.Variants); err != nil {
		errs["variants"] = err
	}
	if m.Request.ClearMedia && m.Request.MediaID != nil {
		errs["media_id"] = validation.NewError("sitecms.record.media_ambiguous", "media_id cannot be set while clearing media")
	}
	return errorsOrNil(errs)
}

// DeleteRecordCommand removes a record. Hard deletes are accepted only for
// line item entities.
type DeleteRecordCommand struct {
	EntityType string    `json:"entity_type"`
	ID         uuid.UUID `json:"id"`
	Actor      uuid.UUID `json:"actor"`
	Hard       bool      `json:"hard,omitempty"`
}

// Type implements command.Message.
func (m DeleteRecordCommand) Type() string { return messageType(m.EntityType, "delete") }

// Validate checks the target and actor.
func (m DeleteRecordCommand) Validate() error {
	errs := validation.Errors{}
	validateEnvelope(errs, m.EntityType, m.Actor)
	if err := validation.Validate(m.ID, requiredID("sitecms.record.id_required", "record id is required")); err != nil {
		errs["id"] = err
	}
	return errorsOrNil(errs)
}

// ReorderRecordsCommand assigns display order following IDs.
type ReorderRecordsCommand struct {
	EntityType string      `json:"entity_type"`
	IDs        []uuid.UUID `json:"ids"`
	Actor      uuid.UUID   `json:"actor"`
}

// Type implements command.Message.
func (m ReorderRecordsCommand) Type() string { return messageType(m.EntityType, "reorder") }

// Validate requires a non-empty id list.
func (m ReorderRecordsCommand) Validate() error {
	errs := validation.Errors{}
	validateEnvelope(errs, m.EntityType, m.Actor)
	if err := validation.Validate(m.IDs,
		validation.Required,
		validation.Each(requiredID("sitecms.record.id_required", "record id is required")),
	); err != nil {
		errs["ids"] = err
	}
	return errorsOrNil(errs)
}

// RecordHandlers groups the admin write handlers of one entity service.
type RecordHandlers[B any, V any] struct {
	Create  *Handler[CreateRecordCommand[B, V]]
	Update  *Handler[UpdateRecordCommand[B, V]]
	Delete  *Handler[DeleteRecordCommand]
	Reorder *Handler[ReorderRecordsCommand]
}

// NewRecordHandlers wires the write handlers for service. Messages addressed to
// another entity type fail validation. observer may be nil.
func NewRecordHandlers[B any, V any](service *lifecycle.Service[B, V], logger interfaces.Logger, observer Observer) *RecordHandlers[B, V] {
	if service == nil {
		panic("commands: record service cannot be nil")
	}
	entityType := service.EntityType()

	create := func(ctx context.Context, msg CreateRecordCommand[B, V]) error {
		if err := checkEntityType(entityType, msg.EntityType); err != nil {
			return err
		}
		view, err := service.Create(ctx, msg.Request)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = view
		}
		return nil
	}
	update := func(ctx context.Context, msg UpdateRecordCommand[B, V]) error {
		if err := checkEntityType(entityType, msg.EntityType); err != nil {
			return err
		}
		view, err := service.Update(ctx, msg.ID, msg.Request)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = view
		}
		return nil
	}
	remove := func(ctx context.Context, msg DeleteRecordCommand) error {
		if err := checkEntityType(entityType, msg.EntityType); err != nil {
			return err
		}
		if msg.Hard {
			return service.HardDelete(ctx, msg.ID, msg.Actor)
		}
		return service.SoftDelete(ctx, msg.ID, msg.Actor)
	}
	reorder := func(ctx context.Context, msg ReorderRecordsCommand) error {
		if err := checkEntityType(entityType, msg.EntityType); err != nil {
			return err
		}
		return service.Reorder(ctx, msg.IDs, msg.Actor)
	}

	return &RecordHandlers[B, V]{
		Create: NewHandler(create,
			WithLogger[CreateRecordCommand[B, V]](logger),
			WithObserver[CreateRecordCommand[B, V]](observer),
			WithOperation[CreateRecordCommand[B, V]](entityType+".create"),
		),
		Update: NewHandler(update,
			WithLogger[UpdateRecordCommand[B, V]](logger),
			WithObserver[UpdateRecordCommand[B, V]](observer),
			WithOperation[UpdateRecordCommand[B, V]](entityType+".update"),
		),
		Delete: NewHandler(remove,
			WithLogger[DeleteRecordCommand](logger),
			WithObserver[DeleteRecordCommand](observer),
			WithOperation[DeleteRecordCommand](entityType+".delete"),
		),
		Reorder: NewHandler(reorder,
			WithLogger[ReorderRecordsCommand](logger),
			WithObserver[ReorderRecordsCommand](observer),
			WithOperation[ReorderRecordsCommand](entityType+".reorder"),
		),
	}
}

func checkEntityType(want, got string) error {
	if strings.TrimSpace(got) == want {
		return nil
	}
	return &lifecycle.ValidationError{
		EntityType: want,
		Field:      "entity_type",
		Err:        fmt.Errorf("message addressed to %q", got),
	}
}
