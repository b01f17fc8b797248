// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// SESSION OVERLAY
// =============================================================================

// SessionOverlay is the modal box shown when the session is about to expire
// or has expired. The dashboard decides when to show it; the overlay only
// renders and turns the next key press into an acknowledgement message.
type SessionOverlay struct {
	visible   bool
	expired   bool
	countdown string

	width  int
	height int
}

// NewSessionOverlay creates a hidden overlay.
func NewSessionOverlay() SessionOverlay {
	return SessionOverlay{}
}

// SessionWarningAckMsg is sent when the user dismisses the warning.
type SessionWarningAckMsg struct{}

// SessionExpiredAckMsg is sent when the user dismisses the expired box.
type SessionExpiredAckMsg struct{}

// SetSize sets the overlay dimensions.
func (o *SessionOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// ShowWarning shows the warning box with the rendered countdown.
func (o *SessionOverlay) ShowWarning(countdown string) {
	o.visible = true
	o.expired = false
	o.countdown = countdown
}

// SetCountdown refreshes the countdown without changing visibility.
func (o *SessionOverlay) SetCountdown(countdown string) {
	o.countdown = countdown
}

// ShowExpired shows the expired box.
func (o *SessionOverlay) ShowExpired() {
	o.visible = true
	o.expired = true
}

// Hide hides the overlay.
func (o *SessionOverlay) Hide() {
	o.visible = false
	o.expired = false
}

// IsVisible reports whether the overlay is showing.
func (o SessionOverlay) IsVisible() bool { return o.visible }

// IsExpired reports whether the expired box is showing.
func (o SessionOverlay) IsExpired() bool { return o.visible && o.expired }

// Update consumes key presses while visible.
func (o SessionOverlay) Update(msg tea.Msg) (SessionOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !o.visible {
			return o, nil
		}
		expired := o.expired
		o.Hide()
		if expired {
			return o, func() tea.Msg { return SessionExpiredAckMsg{} }
		}
		return o, func() tea.Msg { return SessionWarningAckMsg{} }
	}
	return o, nil
}

// View renders the overlay centered in its area, or "" when hidden.
func (o SessionOverlay) View() string {
	if !o.visible {
		return ""
	}

	width := o.width
	if width == 0 {
		width = 60
	}
	height := o.height
	if height == 0 {
		height = 24
	}
	boxWidth := clamp(width-8, 40, 60)

	accent := styles.Amber
	title := styles.StatusIndicators.Warning + " Sessão expirando"
	message := notify.MsgFiveMinute
	hint := "Pressione qualquer tecla para continuar"
	if o.expired {
		accent = styles.Rose
		title = styles.StatusIndicators.Error + " Sessão expirada"
		message = notify.MsgSessionExpired
		hint = "Pressione qualquer tecla para entrar novamente"
	}

	parts := []string{
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(title),
		"",
		lipgloss.NewStyle().
			Foreground(styles.TextPrimary).
			Width(boxWidth - 8).
			Align(lipgloss.Center).
			Render(message),
	}
	if !o.expired && o.countdown != "" {
		parts = append(parts, "",
			lipgloss.NewStyle().Foreground(accent).Bold(true).Render(o.countdown))
	}
	parts = append(parts, "",
		lipgloss.NewStyle().Foreground(styles.TextSecondary).Italic(true).Render(hint))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Padding(1, 3).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
