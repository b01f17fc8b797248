// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "..."

// Truncate cuts s to at most maxWidth display columns, appending an
// ellipsis when something was removed. Accented and wide characters are
// measured by their terminal width, not their byte length.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces up to width display columns.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ShortToken returns a redacted form of a session token suitable for logs.
// Tokens of 8 characters or fewer are fully masked.
func ShortToken(token string) string {
	if token == "" {
		return "<none>"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:6] + "..."
}
