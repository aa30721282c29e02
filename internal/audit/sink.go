package audit

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// LoggerSink writes each activity record as a structured log entry.
type LoggerSink struct {
	logger interfaces.Logger
}

// NewLoggerSink builds a sink that reports activity through logger.
func NewLoggerSink(logger interfaces.Logger) *LoggerSink {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &LoggerSink{logger: logger}
}

func (s *LoggerSink) Log(ctx context.Context, record interfaces.ActivityRecord) error {
	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		logging.FieldEntityType: record.ObjectType,
		logging.FieldEntityID:   record.ObjectID,
		logging.FieldActor:      record.ActorID.String(),
		"channel":               record.Channel,
	})
	logger.Info("activity."+record.Verb, "data", record.Data, "occurred_at", record.OccurredAt)
	return nil
}

// MemorySink keeps activity records in process memory.
type MemorySink struct {
	mu      sync.RWMutex
	records []interfaces.ActivityRecord
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything logged so far, oldest first.
func (s *MemorySink) Records() []interfaces.ActivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// ForObject returns the records logged for a single record id.
func (s *MemorySink) ForObject(objectType string, id uuid.UUID) []interfaces.ActivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []interfaces.ActivityRecord
	target := id.String()
	for _, record := range s.records {
		if record.ObjectType == objectType && record.ObjectID == target {
			out = append(out, record)
		}
	}
	return out
}

// Reset drops all stored records.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Fanout delivers each record to every sink and joins their errors.
type Fanout []interfaces.ActivitySink

func (f Fanout) Log(ctx context.Context, record interfaces.ActivityRecord) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Log(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
