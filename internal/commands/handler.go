package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// DefaultCommandTimeout bounds a single command execution.
const DefaultCommandTimeout = 30 * time.Second

// OutcomeStatus classifies how a command execution ended.
type OutcomeStatus string

const (
	OutcomeSucceeded   OutcomeStatus = "succeeded"
	OutcomeFailed      OutcomeStatus = "failed"
	OutcomeInterrupted OutcomeStatus = "interrupted"
)

// Outcome describes one finished command execution. Err is the unwrapped
// failure, nil on success.
type Outcome struct {
	Command   string
	Operation string
	Duration  time.Duration
	Status    OutcomeStatus
	Err       error
}

// Observer receives every Outcome of the handlers it is attached to. It is
// not generic so one observer can watch handlers of every entity.
type Observer func(ctx context.Context, outcome Outcome)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with shared concerns (context, logging, error tagging).
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	observer  Observer
}

// NewHandler creates a handler that satisfies go-command's Commander interface while applying
// validation, logging and timeout enforcement.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute and applies validation, context management,
// logging, and error categorisation before delegating to the wrapped function.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	ctx = ensureContext(ctx)
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	messageType := command.GetMessageType(msg)
	fields := map[string]any{
		"command": messageType,
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")
	started := time.Now()

	if err := h.exec(ctx, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			h.report(ctx, msg, logger, started, ctxErr, OutcomeInterrupted)
			return wrapContextError(ctxErr)
		}
		h.report(ctx, msg, logger, started, err, OutcomeFailed)
		return wrapExecuteError(err)
	}

	if err := ctx.Err(); err != nil {
		h.report(ctx, msg, logger, started, err, OutcomeInterrupted)
		return wrapContextError(err)
	}

	h.report(ctx, msg, logger, started, nil, OutcomeSucceeded)
	return nil
}

func (h *Handler[T]) report(ctx context.Context, msg T, logger interfaces.Logger, started time.Time, err error, status OutcomeStatus) {
	elapsed := time.Since(started)
	switch status {
	case OutcomeSucceeded:
		logger.Info("command.execute.success", "duration_ms", elapsed.Milliseconds())
	case OutcomeInterrupted:
		logger.Error("command.execute.interrupted", "duration_ms", elapsed.Milliseconds(), "error", err)
	default:
		logger.Warn("command.execute.failed", "duration_ms", elapsed.Milliseconds(), "error", err)
	}
	if h.observer != nil {
		h.observer(ctx, Outcome{
			Command:   command.GetMessageType(msg),
			Operation: h.operation,
			Duration:  elapsed,
			Status:    status,
			Err:       err,
		})
	}
}

// WithTimeout overrides the default execution timeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets a human-friendly operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithObserver attaches observer to the handler. A nil observer is ignored.
func WithObserver[T command.Message](observer Observer) HandlerOption[T] {
	return func(h *Handler[T]) {
		if observer != nil {
			h.observer = observer
		}
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
