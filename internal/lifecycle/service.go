package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/goliatone/go-sitecms/internal/locale"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/translation"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// Activity verbs emitted for mutations.
const (
	VerbCreate = "create"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

const maxGeneratedCodeAttempts = 5

// Service runs the localized record lifecycle for one entity type. B is the
// locale-neutral base document, V the per-locale translation document.
type Service[B any, V any] struct {
	def   Definition[B, V]
	store Store
	opts  options
}

// NewService builds a Service for def over store.
func NewService[B any, V any](def Definition[B, V], store Store, opts ...Option) (*Service[B, V], error) {
	def = def.normalized()
	if def.EntityType == "" {
		return nil, errDefinitionTypeRequired
	}
	if store == nil {
		return nil, errDefinitionStoreRequired
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Service[B, V]{def: def, store: store, opts: o}, nil
}

// EntityType reports the entity type the service manages.
func (s *Service[B, V]) EntityType() string {
	return s.def.EntityType
}

// GetPublic lists active, non-deleted records with one translation resolved
// for requested. Missing translations never fail the read.
func (s *Service[B, V]) GetPublic(ctx context.Context, requested locale.Locale, filter PublicFilter) ([]PublicView[B, V], error) {
	active := true
	rows, _, err := s.store.ListRecords(ctx, RecordQuery{
		EntityType: s.def.EntityType,
		ParentID:   filter.ParentID,
		Active:     &active,
	})
	if err != nil {
		return nil, err
	}
	return s.publicViews(ctx, rows, requested)
}

// GetByCode returns the active record carrying code, resolved for requested.
func (s *Service[B, V]) GetByCode(ctx context.Context, code string, requested locale.Locale) (PublicView[B, V], error) {
	var zero PublicView[B, V]
	normalized, err := normalizeCode(code)
	if err != nil {
		return zero, &NotFoundError{EntityType: s.def.EntityType, Key: code}
	}
	rows, err := s.store.FindByCode(ctx, s.def.EntityType, normalized, false)
	if err != nil {
		return zero, err
	}
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		views, err := s.publicViews(ctx, []*RecordRow{row}, requested)
		if err != nil {
			return zero, err
		}
		return views[0], nil
	}
	return zero, &NotFoundError{EntityType: s.def.EntityType, Key: normalized}
}

// GetAdminPage returns one page of non-deleted records, active or not, with
// every translation projected.
func (s *Service[B, V]) GetAdminPage(ctx context.Context, query AdminPageQuery) (AdminPage[B, V], error) {
	var zero AdminPage[B, V]
	if query.Page < 1 {
		return zero, s.validation("page", ErrPageInvalid)
	}
	if query.PageSize < 1 {
		return zero, s.validation("page_size", ErrPageSizeInvalid)
	}
	if s.opts.maxPageSize > 0 && query.PageSize > s.opts.maxPageSize {
		return zero, s.validation("page_size", fmt.Errorf("%w (%d)", ErrPageSizeTooLarge, s.opts.maxPageSize))
	}

	rows, total, err := s.store.ListRecords(ctx, RecordQuery{
		EntityType: s.def.EntityType,
		ParentID:   query.ParentID,
		Active:     query.Active,
		Search:     query.Search,
		Limit:      query.PageSize,
		Offset:     pageOffset(query.Page, query.PageSize),
	})
	if err != nil {
		return zero, err
	}
	items, err := s.adminViews(ctx, rows)
	if err != nil {
		return zero, err
	}
	return AdminPage[B, V]{
		Items: items,
		Pagination: Pagination{
			Page:       query.Page,
			PageSize:   query.PageSize,
			Total:      total,
			TotalPages: totalPages(total, query.PageSize),
		},
	}, nil
}

// GetAdmin returns the non-deleted record identified by id.
func (s *Service[B, V]) GetAdmin(ctx context.Context, id uuid.UUID) (AdminView[B, V], error) {
	row, err := s.liveRow(ctx, id)
	if err != nil {
		return AdminView[B, V]{}, err
	}
	return s.adminView(ctx, row)
}

// Create validates and stores a record and its translations atomically.
func (s *Service[B, V]) Create(ctx context.Context, req CreateRequest[B, V]) (AdminView[B, V], error) {
	var zero AdminView[B, V]
	logger := logging.WithEntityContext(s.opts.logger, s.def.EntityType, uuid.Nil, req.Actor)

	if err := s.validateVariants(req.Variants, true); err != nil {
		return zero, err
	}
	if s.def.RequireDisplayOrder && req.DisplayOrder == nil {
		return zero, s.validation("display_order", ErrDisplayOrderRequired)
	}
	if err := s.validateFields(req.Fields); err != nil {
		return zero, err
	}
	parentID, err := s.checkParent(ctx, req.ParentID)
	if err != nil {
		return zero, err
	}
	if s.def.RequireMedia && req.MediaID == nil {
		return zero, s.validation("media_id", ErrMediaRequired)
	}
	mediaID, err := s.checkMedia(ctx, req.MediaID)
	if err != nil {
		return zero, err
	}

	now := s.opts.now()
	id := s.opts.id()
	code, err := s.createCode(ctx, req.Code, id)
	if err != nil {
		return zero, err
	}
	doc, err := encodeDocument(req.Fields)
	if err != nil {
		return zero, err
	}

	row := &RecordRow{
		ID:         id,
		EntityType: s.def.EntityType,
		Code:       code,
		ParentID:   parentID,
		MediaID:    mediaID,
		IsActive:   true,
		Fields:     doc,
		SearchText: buildSearchText(doc, code),
		CreatedBy:  req.Actor,
		UpdatedBy:  req.Actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.DisplayOrder != nil {
		row.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	variants, err := s.variantRows(id, req.Variants)
	if err != nil {
		return zero, err
	}

	if err := s.store.InsertRecord(ctx, row, variants); err != nil {
		logging.WithError(logger, err).Error("record create failed")
		return zero, err
	}

	created, err := s.GetAdmin(ctx, id)
	if err != nil {
		return zero, err
	}
	s.emit(ctx, VerbCreate, id, req.Actor, map[string]any{"after": created})
	logging.WithEntityContext(s.opts.logger, s.def.EntityType, id, req.Actor).Info("record created", "code", code, "locales", len(variants))
	return created, nil
}

// Update applies a partial change. Named translations are replaced whole and
// the others are left untouched.
func (s *Service[B, V]) Update(ctx context.Context, id uuid.UUID, req UpdateRequest[V]) (AdminView[B, V], error) {
	var zero AdminView[B, V]
	logger := logging.WithEntityContext(s.opts.logger, s.def.EntityType, id, req.Actor)

	current, err := s.liveRow(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := s.validateVariants(req.Variants, false); err != nil {
		return zero, err
	}
	before, err := s.adminView(ctx, current)
	if err != nil {
		return zero, err
	}

	next := cloneRecordRow(current)
	if req.Code != nil {
		if !s.def.Code.Enabled {
			return zero, s.validation("code", ErrCodeUnsupported)
		}
		code, err := normalizeCode(*req.Code)
		if err != nil {
			return zero, s.validation("code", err)
		}
		if code != current.Code {
			if err := s.ensureCodeAvailable(ctx, code, id); err != nil {
				return zero, err
			}
		}
		next.Code = code
	}
	if req.ParentID != nil {
		parentID, err := s.checkParent(ctx, req.ParentID)
		if err != nil {
			return zero, err
		}
		next.ParentID = parentID
	}
	if req.DisplayOrder != nil {
		next.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		next.IsActive = *req.IsActive
	}
	switch {
	case req.ClearMedia:
		if s.def.RequireMedia {
			return zero, s.validation("media_id", ErrMediaRequired)
		}
		next.MediaID = nil
	case req.MediaID != nil:
		mediaID, err := s.checkMedia(ctx, req.MediaID)
		if err != nil {
			return zero, err
		}
		next.MediaID = mediaID
	}
	if len(req.Fields) > 0 {
		patched, err := decodePatched[B](mergeDocument(current.Fields, req.Fields))
		if err != nil {
			return zero, s.validation("fields", err)
		}
		if err := s.validateFields(patched); err != nil {
			return zero, err
		}
		doc, err := encodeDocument(patched)
		if err != nil {
			return zero, err
		}
		next.Fields = doc
	}
	next.SearchText = buildSearchText(next.Fields, next.Code)
	next.UpdatedBy = req.Actor
	next.UpdatedAt = s.opts.now()

	variants, err := s.variantRows(id, req.Variants)
	if err != nil {
		return zero, err
	}
	if err := s.store.UpdateRecord(ctx, next, variants); err != nil {
		if errors.Is(err, ErrRecordMissing) {
			return zero, &NotFoundError{EntityType: s.def.EntityType, ID: id}
		}
		logging.WithError(logger, err).Error("record update failed")
		return zero, err
	}

	updated, err := s.GetAdmin(ctx, id)
	if err != nil {
		return zero, err
	}
	s.emit(ctx, VerbUpdate, id, req.Actor, map[string]any{"before": before, "after": updated})
	logger.Info("record updated", "locales", len(variants))
	return updated, nil
}

// SoftDelete marks a record deleted. Deleting an already deleted record
// fails with a NotFoundError whose Deleted flag is set.
func (s *Service[B, V]) SoftDelete(ctx context.Context, id, actor uuid.UUID) error {
	logger := logging.WithEntityContext(s.opts.logger, s.def.EntityType, id, actor)

	current, err := s.liveRow(ctx, id)
	if err != nil {
		return err
	}
	for _, child := range s.def.Children {
		count, err := s.store.CountLiveChildren(ctx, child, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return s.validation("children", fmt.Errorf("%w: %d %s", ErrHasChildren, count, child))
		}
	}
	before, err := s.adminView(ctx, current)
	if err != nil {
		return err
	}
	if err := s.store.SoftDeleteRecord(ctx, id, actor, s.opts.now()); err != nil {
		if errors.Is(err, ErrRecordMissing) {
			return &NotFoundError{EntityType: s.def.EntityType, ID: id, Deleted: true}
		}
		logging.WithError(logger, err).Error("record delete failed")
		return err
	}
	s.emit(ctx, VerbDelete, id, actor, map[string]any{"before": before})
	logger.Info("record deleted")
	return nil
}

// HardDelete removes a line item record and its translations.
func (s *Service[B, V]) HardDelete(ctx context.Context, id, actor uuid.UUID) error {
	logger := logging.WithEntityContext(s.opts.logger, s.def.EntityType, id, actor)
	if !s.def.LineItem {
		return s.validation("id", ErrHardDeleteUnsupported)
	}
	current, err := s.liveRow(ctx, id)
	if err != nil {
		return err
	}
	before, err := s.adminView(ctx, current)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, ErrRecordMissing) {
			return &NotFoundError{EntityType: s.def.EntityType, ID: id}
		}
		logging.WithError(logger, err).Error("record purge failed")
		return err
	}
	s.emit(ctx, VerbDelete, id, actor, map[string]any{"before": before, "hard": true})
	logger.Info("record purged")
	return nil
}

// Reorder assigns display_order 1..n following ids. Every id must name a
// live record of this entity type.
func (s *Service[B, V]) Reorder(ctx context.Context, ids []uuid.UUID, actor uuid.UUID) error {
	if len(ids) == 0 {
		return s.validation("ids", ErrDisplayOrderRequired)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return s.validation("ids", fmt.Errorf("%w: %s", ErrDuplicateID, id))
		}
		seen[id] = struct{}{}
		if _, err := s.liveRow(ctx, id); err != nil {
			return err
		}
	}
	if err := s.store.ReorderRecords(ctx, ids, actor, s.opts.now()); err != nil {
		if errors.Is(err, ErrRecordMissing) {
			return &NotFoundError{EntityType: s.def.EntityType}
		}
		return err
	}
	for i, id := range ids {
		s.emit(ctx, VerbUpdate, id, actor, map[string]any{"after": map[string]any{"display_order": i + 1}})
	}
	logging.WithEntityContext(s.opts.logger, s.def.EntityType, uuid.Nil, actor).Info("records reordered", "count", len(ids))
	return nil
}

func (s *Service[B, V]) liveRow(ctx context.Context, id uuid.UUID) (*RecordRow, error) {
	row, err := s.store.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordMissing) {
			return nil, &NotFoundError{EntityType: s.def.EntityType, ID: id}
		}
		return nil, err
	}
	if row.EntityType != s.def.EntityType {
		return nil, &NotFoundError{EntityType: s.def.EntityType, ID: id}
	}
	if row.DeletedAt != nil {
		return nil, &NotFoundError{EntityType: s.def.EntityType, ID: id, Deleted: true}
	}
	return row, nil
}

func (s *Service[B, V]) validation(field string, err error) error {
	return &ValidationError{EntityType: s.def.EntityType, Field: field, Err: err}
}

func (s *Service[B, V]) validateVariants(variants map[locale.Locale]V, requireDefault bool) error {
	for l := range variants {
		if !l.Valid() {
			return s.validation("translations", fmt.Errorf("%w: %s", ErrInvalidLocale, l))
		}
	}
	if requireDefault {
		if _, ok := variants[locale.Default]; !ok {
			return s.validation("translations."+locale.Default.String(), ErrDefaultLocaleRequired)
		}
	}
	if s.def.ValidateVariant == nil {
		return nil
	}
	for _, l := range locale.All() {
		variant, ok := variants[l]
		if !ok {
			continue
		}
		if err := s.def.ValidateVariant(variant); err != nil {
			return s.validation("translations."+l.String(), err)
		}
	}
	return nil
}

func (s *Service[B, V]) validateFields(fields B) error {
	if s.def.ValidateFields == nil {
		return nil
	}
	if err := s.def.ValidateFields(fields); err != nil {
		return s.validation("fields", err)
	}
	return nil
}

func (s *Service[B, V]) checkParent(ctx context.Context, parentID *uuid.UUID) (*uuid.UUID, error) {
	if s.def.Parent == "" {
		return nil, nil
	}
	if parentID == nil || *parentID == uuid.Nil {
		return nil, s.validation("parent_id", ErrParentRequired)
	}
	parent, err := s.store.GetRecord(ctx, *parentID)
	if err != nil {
		if errors.Is(err, ErrRecordMissing) {
			return nil, &ReferenceNotFoundError{Resource: s.def.Parent, ID: *parentID}
		}
		return nil, err
	}
	if parent.EntityType != s.def.Parent || parent.DeletedAt != nil {
		return nil, &ReferenceNotFoundError{Resource: s.def.Parent, ID: *parentID}
	}
	id := parent.ID
	return &id, nil
}

func (s *Service[B, V]) checkMedia(ctx context.Context, mediaID *uuid.UUID) (*uuid.UUID, error) {
	if mediaID == nil {
		return nil, nil
	}
	if s.opts.media == nil {
		return nil, s.validation("media_id", ErrMediaResolverMissing)
	}
	summary, err := s.opts.media.ResolveMedia(ctx, *mediaID)
	if err != nil && !errors.Is(err, interfaces.ErrMediaNotFound) {
		return nil, err
	}
	if err != nil || summary == nil {
		return nil, &ReferenceNotFoundError{Resource: "media", ID: *mediaID}
	}
	id := *mediaID
	return &id, nil
}

func (s *Service[B, V]) createCode(ctx context.Context, raw string, id uuid.UUID) (string, error) {
	policy := s.def.Code
	if !policy.Enabled {
		if strings.TrimSpace(raw) != "" {
			return "", s.validation("code", ErrCodeUnsupported)
		}
		return "", nil
	}
	if raw != "" {
		code, err := normalizeCode(raw)
		if err != nil {
			return "", s.validation("code", err)
		}
		if err := s.ensureCodeAvailable(ctx, code, id); err != nil {
			return "", err
		}
		return code, nil
	}
	if !policy.Generate {
		return "", s.validation("code", ErrCodeRequired)
	}
	base := generateCode(policy.Prefix, s.opts.codeSequence(s.opts.now()))
	candidate := base
	for attempt := 1; attempt <= maxGeneratedCodeAttempts; attempt++ {
		err := s.ensureCodeAvailable(ctx, candidate, id)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ErrConflict) {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt+1)
	}
	return "", &ConflictError{EntityType: s.def.EntityType, Field: "code", Value: base}
}

func (s *Service[B, V]) ensureCodeAvailable(ctx context.Context, code string, self uuid.UUID) error {
	rows, err := s.store.FindByCode(ctx, s.def.EntityType, code, s.def.Code.Scope == CodeScopeAll)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.ID != self {
			return &ConflictError{EntityType: s.def.EntityType, Field: "code", Value: code, ExistingID: row.ID}
		}
	}
	return nil
}

func (s *Service[B, V]) variantRows(recordID uuid.UUID, variants map[locale.Locale]V) ([]*VariantRow, error) {
	now := s.opts.now()
	rows := make([]*VariantRow, 0, len(variants))
	for _, l := range locale.All() {
		variant, ok := variants[l]
		if !ok {
			continue
		}
		doc, err := encodeDocument(variant)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &VariantRow{
			ID:         s.opts.id(),
			RecordID:   recordID,
			Locale:     l.String(),
			Position:   localePosition(l),
			Fields:     doc,
			SearchText: buildSearchText(doc),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return rows, nil
}

func (s *Service[B, V]) publicViews(ctx context.Context, rows []*RecordRow, requested locale.Locale) ([]PublicView[B, V], error) {
	views := make([]PublicView[B, V], 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}
	if !requested.Valid() {
		requested = locale.Default
	}

	ids := recordIDs(rows)
	fetched, err := s.store.ListVariants(ctx, ids, publicLocales(requested))
	if err != nil {
		return nil, err
	}
	grouped, err := s.groupVariants(fetched)
	if err != nil {
		return nil, err
	}
	missing := make([]uuid.UUID, 0)
	for _, id := range ids {
		if len(grouped[id]) == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		rest, err := s.store.ListVariants(ctx, missing, nil)
		if err != nil {
			return nil, err
		}
		extra, err := s.groupVariants(rest)
		if err != nil {
			return nil, err
		}
		for id, variants := range extra {
			grouped[id] = variants
		}
	}

	media := s.resolveMedia(ctx, rows)
	for _, row := range rows {
		fields, err := decodeDocument[B](row.Fields)
		if err != nil {
			return nil, err
		}
		content, resolved, ok := translation.ResolveWithLocale(grouped[row.ID], requested)
		logger := logging.WithLocale(logging.WithEntityContext(s.opts.logger, s.def.EntityType, row.ID, uuid.Nil), requested.String())
		switch {
		case !ok:
			logger.Warn("record has no translations")
		case resolved != requested:
			logger.Debug("translation fallback", "resolved_locale", resolved.String())
		}
		view := PublicView[B, V]{
			ID:             row.ID,
			Code:           row.Code,
			ParentID:       cloneUUIDPtr(row.ParentID),
			DisplayOrder:   row.DisplayOrder,
			Fields:         fields,
			Content:        content,
			ResolvedLocale: resolved,
		}
		if row.MediaID != nil {
			view.Media = media[*row.MediaID]
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service[B, V]) adminView(ctx context.Context, row *RecordRow) (AdminView[B, V], error) {
	views, err := s.adminViews(ctx, []*RecordRow{row})
	if err != nil {
		return AdminView[B, V]{}, err
	}
	return views[0], nil
}

func (s *Service[B, V]) adminViews(ctx context.Context, rows []*RecordRow) ([]AdminView[B, V], error) {
	views := make([]AdminView[B, V], 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}
	fetched, err := s.store.ListVariants(ctx, recordIDs(rows), nil)
	if err != nil {
		return nil, err
	}
	grouped, err := s.groupVariants(fetched)
	if err != nil {
		return nil, err
	}
	media := s.resolveMedia(ctx, rows)
	actors := s.lookupActors(ctx, rows)

	for _, row := range rows {
		fields, err := decodeDocument[B](row.Fields)
		if err != nil {
			return nil, err
		}
		view := AdminView[B, V]{
			ID:           row.ID,
			Code:         row.Code,
			ParentID:     cloneUUIDPtr(row.ParentID),
			DisplayOrder: row.DisplayOrder,
			IsActive:     row.IsActive,
			Fields:       fields,
			Translations: translation.ProjectAll(grouped[row.ID]),
			MediaID:      cloneUUIDPtr(row.MediaID),
			CreatedBy:    actorSummary(actors, row.CreatedBy),
			UpdatedBy:    actorSummary(actors, row.UpdatedBy),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		}
		if row.DeletedAt != nil {
			at := *row.DeletedAt
			view.DeletedAt = &at
		}
		if row.MediaID != nil {
			view.Media = media[*row.MediaID]
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service[B, V]) groupVariants(rows []*VariantRow) (map[uuid.UUID][]translation.Variant[V], error) {
	grouped := make(map[uuid.UUID][]translation.Variant[V])
	for _, row := range rows {
		l, err := locale.Lookup(row.Locale)
		if err != nil {
			s.opts.logger.Warn("skipping translation with unsupported locale", logging.FieldEntityID, row.RecordID.String(), logging.FieldLocale, row.Locale)
			continue
		}
		fields, err := decodeDocument[V](row.Fields)
		if err != nil {
			return nil, err
		}
		grouped[row.RecordID] = append(grouped[row.RecordID], translation.Variant[V]{Locale: l, Fields: fields})
	}
	return grouped, nil
}

func (s *Service[B, V]) resolveMedia(ctx context.Context, rows []*RecordRow) map[uuid.UUID]*interfaces.MediaSummary {
	out := make(map[uuid.UUID]*interfaces.MediaSummary)
	if s.opts.media == nil {
		return out
	}
	for _, row := range rows {
		if row.MediaID == nil {
			continue
		}
		if _, done := out[*row.MediaID]; done {
			continue
		}
		summary, err := s.opts.media.ResolveMedia(ctx, *row.MediaID)
		if err != nil {
			logging.WithError(s.opts.logger, err).Warn("media reference unresolved", logging.FieldEntityID, row.ID.String(), "media_id", row.MediaID.String())
		}
		out[*row.MediaID] = summary
	}
	return out
}

func (s *Service[B, V]) lookupActors(ctx context.Context, rows []*RecordRow) map[uuid.UUID]interfaces.ActorSummary {
	if s.opts.actors == nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(rows)*2)
	for _, row := range rows {
		for _, id := range []uuid.UUID{row.CreatedBy, row.UpdatedBy} {
			if id != uuid.Nil && !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	actors, err := s.opts.actors.LookupActors(ctx, ids)
	if err != nil {
		logging.WithError(s.opts.logger, err).Warn("actor lookup failed")
		return nil
	}
	return actors
}

func (s *Service[B, V]) emit(ctx context.Context, verb string, id, actor uuid.UUID, data map[string]any) {
	if s.opts.activity == nil {
		return
	}
	record := interfaces.ActivityRecord{
		ActorID:    actor,
		Verb:       verb,
		ObjectType: s.def.EntityType,
		ObjectID:   id.String(),
		Channel:    s.opts.channel,
		Data:       data,
		OccurredAt: s.opts.now(),
	}
	if err := s.opts.activity.Log(ctx, record); err != nil {
		logging.WithError(logging.WithEntityContext(s.opts.logger, s.def.EntityType, id, actor), err).Warn("activity emit failed", "verb", verb)
	}
}

func actorSummary(actors map[uuid.UUID]interfaces.ActorSummary, id uuid.UUID) interfaces.ActorSummary {
	if summary, ok := actors[id]; ok {
		if summary.ID == uuid.Nil {
			summary.ID = id
		}
		return summary
	}
	return interfaces.ActorSummary{ID: id}
}

func recordIDs(rows []*RecordRow) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func totalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// pageOffset returns the first row of page. Pages whose offset does not fit
// in an int saturate to math.MaxInt, which is past any stored row.
func pageOffset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}
