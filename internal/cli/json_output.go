// json_output.go - Machine-readable output for painel commands.
//
// Every command accepts --json and then prints a single envelope on stdout.
// Human-readable notes go to stderr in that mode.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeranaias/painel-tui/internal/offline"
)

// JSONResponse is the envelope printed by every command in JSON mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Command is the command that was executed
	Command string `json:"command"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is when the response was generated, RFC 3339 in UTC
	Timestamp string `json:"timestamp"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Command:   command,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Command:   command,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Print writes the response, indented, to stdout.
func (r *JSONResponse) Print() error {
	return r.Fprint(os.Stdout)
}

// Fprint writes the response, indented, to w.
func (r *JSONResponse) Fprint(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"command":%q,"error":"failed to marshal response: %s"}`,
			r.Command, err.Error())
	}
	return string(data)
}

// Output is where a command prints and in which mode.
type Output struct {
	Out  io.Writer
	Err  io.Writer
	JSON bool
}

// StdOutput prints to the process stdout and stderr.
func StdOutput(jsonMode bool) Output {
	return Output{Out: os.Stdout, Err: os.Stderr, JSON: jsonMode}
}

// Emit prints data as an envelope in JSON mode, otherwise calls human.
func (o Output) Emit(command string, data interface{}, human func(w io.Writer)) error {
	if o.JSON {
		return NewJSONResponse(command, data).Fprint(o.Out)
	}
	human(o.Out)
	return nil
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData is returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// SessionData is returned by login, verify and status.
type SessionData struct {
	LoggedIn  bool   `json:"logged_in"`
	Remaining int    `json:"remaining_seconds"`
	Countdown string `json:"countdown"`
	Expired   bool   `json:"expired,omitempty"`
	Token     string `json:"token,omitempty"` // shortened
}

// StatusData is returned by the status command.
type StatusData struct {
	BackendURL    string         `json:"backend_url"`
	OfflineMode   bool           `json:"offline_mode"`
	StorageDriver string         `json:"storage_driver"`
	ConfigPath    string         `json:"config_path"`
	Connectivity  offline.Status `json:"connectivity"`
	Session       SessionData    `json:"session"`
}

// ListData wraps a catalog listing.
type ListData struct {
	Kind        string      `json:"kind"`
	Count       int         `json:"count"`
	WasFiltered bool        `json:"was_filtered"`
	Items       interface{} `json:"items"`
}

// MaskData is returned by the mask command.
type MaskData struct {
	Kind   string `json:"kind"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Valid  *bool  `json:"valid,omitempty"`
	Reason string `json:"reason,omitempty"`
}
