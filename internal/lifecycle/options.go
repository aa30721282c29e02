package lifecycle

import (
	"time"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// IDGenerator produces new identifiers.
type IDGenerator func() uuid.UUID

type options struct {
	now          func() time.Time
	id           IDGenerator
	media        interfaces.MediaResolver
	actors       interfaces.ActorDirectory
	activity     interfaces.ActivitySink
	channel      string
	logger       interfaces.Logger
	maxPageSize  int
	codeSequence func(time.Time) string
}

// Option configures a Service.
type Option func(*options)

// WithClock overrides the clock used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) Option {
	return func(o *options) {
		if generator != nil {
			o.id = generator
		}
	}
}

// WithMediaResolver validates and expands media references.
func WithMediaResolver(resolver interfaces.MediaResolver) Option {
	return func(o *options) {
		o.media = resolver
	}
}

// WithActorDirectory expands created_by/updated_by into display summaries.
func WithActorDirectory(directory interfaces.ActorDirectory) Option {
	return func(o *options) {
		o.actors = directory
	}
}

// WithActivitySink emits an activity record for every mutation.
func WithActivitySink(sink interfaces.ActivitySink, channel string) Option {
	return func(o *options) {
		o.activity = sink
		o.channel = channel
	}
}

// WithLogger sets the logger used for mutation and fallback events.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxPageSize caps admin page sizes. Zero disables the cap.
func WithMaxPageSize(limit int) Option {
	return func(o *options) {
		if limit >= 0 {
			o.maxPageSize = limit
		}
	}
}

// WithCodeSequence overrides the suffix used for generated codes.
func WithCodeSequence(sequence func(time.Time) string) Option {
	return func(o *options) {
		if sequence != nil {
			o.codeSequence = sequence
		}
	}
}

func defaultOptions() options {
	return options{
		now:          func() time.Time { return time.Now().UTC() },
		id:           uuid.New,
		channel:      "sitecms",
		logger:       logging.NoOp(),
		codeSequence: unixMillisSequence,
	}
}
