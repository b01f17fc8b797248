// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"strings"
)

// =============================================================================
// WARNING POLICY
// =============================================================================

// Warning thresholds in seconds.
const (
	FiveMinutes = 300
	TenMinutes  = 600
)

// WarningState records which expiration warnings were already shown for the
// current authoritative remaining time.
type WarningState struct {
	TenShown  bool
	FiveShown bool
}

// Input is everything EvaluateWarnings looks at.
type Input struct {
	// Remaining is the locally decremented remaining time.
	Remaining int
	// Authoritative is the last value reported by the backend.
	Authoritative int
	// Loading is true while a page-level blocking load is in progress.
	Loading bool
}

// Action is a side effect requested by EvaluateWarnings.
type Action int

const (
	// ActionExpire marks the session expired and zeroes the remaining time.
	ActionExpire Action = iota + 1
	// ActionDismissTenMinute removes the ten-minute warning.
	ActionDismissTenMinute
	// ActionShowFiveMinute shows the persistent five-minute warning.
	ActionShowFiveMinute
	// ActionShowTenMinute shows the persistent ten-minute warning.
	ActionShowTenMinute
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionExpire:
		return "expire"
	case ActionDismissTenMinute:
		return "dismiss-ten-minute"
	case ActionShowFiveMinute:
		return "show-five-minute"
	case ActionShowTenMinute:
		return "show-ten-minute"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// EvaluateWarnings decides which warnings to show for the given remaining
// time. It is pure: the caller applies the returned state and actions.
//
// Nothing happens while a blocking load is in progress or when the session
// never had a positive authoritative remaining time.
func EvaluateWarnings(in Input, ws WarningState) (WarningState, []Action) {
	if in.Loading || in.Authoritative <= 0 {
		return ws, nil
	}

	if in.Remaining <= 0 {
		return ws, []Action{ActionExpire}
	}

	if in.Remaining < FiveMinutes {
		if ws.FiveShown {
			return ws, nil
		}
		ws.FiveShown = true
		return ws, []Action{ActionDismissTenMinute, ActionShowFiveMinute}
	}

	if in.Remaining < TenMinutes && !ws.TenShown {
		ws.TenShown = true
		return ws, []Action{ActionShowTenMinute}
	}

	return ws, nil
}

// =============================================================================
// COUNTDOWN DISPLAY
// =============================================================================

// FormatRemaining renders seconds as "1 d 2 h 3 m 4 s", omitting every
// zero-valued unit. It returns "" when seconds <= 0.
func FormatRemaining(seconds int) string {
	if seconds <= 0 {
		return ""
	}

	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d d", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d h", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d m", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%d s", secs))
	}
	return strings.Join(parts, " ")
}
