// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// TOASTS
// =============================================================================

// Toasts are rendered from the notify.Center snapshot. They appear in the
// bottom-right corner and auto-dismiss, so the dashboard stays usable while
// they are shown.

const (
	toastMaxWidth = 50
	toastMinWidth = 30
)

// RenderToast renders a single notification. Persistent notifications (the
// session warnings) show no countdown.
func RenderToast(n notify.Notification, now time.Time, width int) string {
	maxWidth := toastMaxWidth
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < toastMinWidth {
		maxWidth = toastMinWidth
	}

	kind := n.Kind.String()
	accent := styles.KindColor(kind)

	iconStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	content := iconStyle.Render(styles.KindIndicator(kind)+" ") +
		messageStyle.Render(wrapText(n.Message, maxWidth-10))

	hints := []string{"[x] Fechar"}
	if !n.Persistent() {
		left := n.CreatedAt.Add(n.Duration).Sub(now)
		if secs := int(left.Seconds()); secs > 0 {
			hints = append(hints, strconv.Itoa(secs)+"s")
		}
	}
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	content += "\n" + hintStyle.Render(strings.Join(hints, "  "))

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders ns (newest first, as notify.Center returns them)
// stacked with the newest at the bottom, placed in the bottom-right corner
// of a width x height area.
func RenderToastStack(ns []notify.Notification, now time.Time, width, height int) string {
	if len(ns) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(ns))
	for i := len(ns) - 1; i >= 0; i-- {
		rendered = append(rendered, RenderToast(ns[i], now, width))
	}

	stack := lipgloss.NewStyle().
		MarginRight(2).
		Render(lipgloss.JoinVertical(lipgloss.Right, rendered...))

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
	}
	return stack
}
