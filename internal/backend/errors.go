// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures, timeouts, and non-2xx statuses.
	ErrTransport = errors.New("backend transport failure")

	// ErrMalformed is returned when a response is not the expected JSON shape.
	ErrMalformed = errors.New("malformed backend response")

	// ErrDenied is returned when the backend explicitly answers success:false.
	ErrDenied = errors.New("backend denied request")

	// ErrInvalidBaseURL is returned by New for an unusable base URL.
	ErrInvalidBaseURL = errors.New("invalid backend base URL")
)

// Error describes a failed backend call.
type Error struct {
	Kind     error // ErrTransport, ErrMalformed, or ErrDenied
	Endpoint string
	Status   int
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Endpoint, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func transportErr(endpoint string, status int, err error) error {
	return &Error{Kind: ErrTransport, Endpoint: endpoint, Status: status, Err: err}
}

func malformedErr(endpoint string, err error) error {
	return &Error{Kind: ErrMalformed, Endpoint: endpoint, Err: err}
}

func deniedErr(endpoint, message string) error {
	return &Error{Kind: ErrDenied, Endpoint: endpoint, Message: message}
}

// Denied builds an ErrDenied error for callers that interpret success
// themselves.
func Denied(endpoint, message string) error {
	return deniedErr(endpoint, message)
}
