// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// KeyHint is one shortcut shown on the right of the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusBar is the bottom line of the dashboard: session state and
// countdown on the left, shortcuts on the right.
type StatusBar struct {
	LoggedIn      bool
	Countdown     string // session.FormatRemaining output
	Remaining     int    // seconds, picks the countdown color
	ShowCountdown bool
	Offline       bool
	Busy          string // non-empty while a request is in flight
	Hints         []KeyHint
	Width         int
	theme         *styles.Theme
}

// NewStatusBar creates a status bar rendered with theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		ShowCountdown: true,
		Width:         80,
		theme:         theme,
	}
}

// SetTheme swaps the theme after a config reload.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := s.theme
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	var left []string
	if s.Offline {
		left = append(left, t.OfflineBadge.Render("OFFLINE"))
	}
	if s.LoggedIn {
		left = append(left, t.SessionActive.Render(styles.StatusIndicators.Active+" SESSÃO ATIVA"))
		if s.ShowCountdown && s.Countdown != "" {
			left = append(left, t.CountdownStyle(s.Remaining).Render(s.Countdown))
		}
	} else {
		left = append(left, t.SessionInactive.Render(styles.StatusIndicators.Pending+" SESSÃO INATIVA"))
	}
	if s.Busy != "" {
		left = append(left, t.LoadingText.Render(s.Busy))
	}
	leftText := strings.Join(left, sep)

	var right string
	if s.Width >= 60 {
		hints := make([]string, 0, len(s.Hints))
		for _, h := range s.Hints {
			hints = append(hints, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
		}
		right = strings.Join(hints, "  ")
	}

	inner := s.Width - 2
	gap := inner - lipgloss.Width(leftText) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = inner - lipgloss.Width(leftText)
		if gap < 0 {
			gap = 0
		}
	}

	return t.StatusBar.
		Width(s.Width).
		MaxWidth(s.Width).
		Render(leftText + strings.Repeat(" ", gap) + right)
}
