// errors.go - Error types and exit codes for painel commands.
//
// Command handlers always return errors; main decides how to show them
// and which exit code to use.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/offline"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates a missing session or a denied request
	ExitAuthError = 4
	// ExitNetworkError indicates the backend could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a record was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrNotLoggedIn is returned by commands that need a verified session.
	ErrNotLoggedIn = errors.New("not logged in; run 'painel login' first")

	// ErrLoginFailed is returned when the credentials were refused.
	ErrLoginFailed = errors.New("login failed")

	// ErrCommandFailed is returned when the backend call behind a command
	// failed. The user already saw the reason as a notification.
	ErrCommandFailed = errors.New("command failed")

	// ErrUnknownCommand is returned for an unrecognized command name.
	ErrUnknownCommand = errors.New("unknown command")
)

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "clients"
	Action  string // e.g. "delete"
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string // optional
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a record the backend did not return.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NewValidationErrorWithExample creates a validation error with an example
// of a valid value.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Example: example}
}

// ErrMissingArgument reports a required positional argument.
func ErrMissingArgument(argName, usage string) error {
	return &ValidationError{
		Field:   argName,
		Reason:  "is required",
		Example: usage,
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError prints err. In JSON mode an error envelope goes to stdout so
// scripts always get a parseable document.
func DisplayError(command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		_ = NewJSONErrorResponse(command, err).Print()
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", RenderConditional(ErrorStyle, "[ERRO]"), err.Error())
}

// GetExitCode maps err to an exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var configErrs config.ValidateErrors
	switch {
	case errors.Is(err, ErrUnknownCommand), errors.As(err, &validationErr):
		return ExitUsageError
	case errors.As(err, &notFoundErr):
		return ExitNotFoundError
	case errors.As(err, &configErrs),
		errors.Is(err, offline.ErrNonLocalhost),
		errors.Is(err, offline.ErrInvalidURL),
		errors.Is(err, offline.ErrInvalidURLScheme),
		errors.Is(err, backend.ErrInvalidBaseURL):
		return ExitConfigError
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, ErrLoginFailed), errors.Is(err, backend.ErrDenied):
		return ExitAuthError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, backend.ErrTransport),
		errors.Is(err, offline.ErrNoInternet),
		errors.Is(err, offline.ErrNoDatabase):
		return ExitNetworkError
	}
	return ExitGeneralError
}
