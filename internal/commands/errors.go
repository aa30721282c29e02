package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sitecms/internal/lifecycle"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"

	recordValidationCode = "RECORD_VALIDATION_FAILED"
	recordNotFoundCode   = "RECORD_NOT_FOUND"
	recordReferenceCode  = "RECORD_REFERENCE_NOT_FOUND"
	recordConflictCode   = "RECORD_CONFLICT"
)

// wrapValidationError tags message validation failures, including the ones
// go-command already wrapped, with the command text code and a 400.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	var coded *goerrors.Error
	if errors.As(err, &coded) {
		return coded.WithTextCode(commandValidationCode).
			WithCode(lifecycle.HTTPStatus(lifecycle.ErrValidation))
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode).
		WithCode(lifecycle.HTTPStatus(lifecycle.ErrValidation))
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError categorises lifecycle failures so transports can map them
// without importing the lifecycle package.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	status := lifecycle.HTTPStatus(err)
	switch {
	case errors.Is(err, lifecycle.ErrReferenceNotFound):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "referenced resource not found").
			WithTextCode(recordReferenceCode).
			WithCode(status)
	case errors.Is(err, lifecycle.ErrValidation):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "record validation failed").
			WithTextCode(recordValidationCode).
			WithCode(status)
	case errors.Is(err, lifecycle.ErrNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "record not found").
			WithTextCode(recordNotFoundCode).
			WithCode(status)
	case errors.Is(err, lifecycle.ErrConflict):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "record conflict").
			WithTextCode(recordConflictCode).
			WithCode(status)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode(commandExecuteFailed).
			WithCode(status)
	}
}
