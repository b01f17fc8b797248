// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Brand is the product name shown on the left of the header.
const Brand = "painel"

// RenderHeader renders the title bar: brand, page title and an optional
// subtitle (the backend host) aligned right.
func RenderHeader(theme *styles.Theme, title, subtitle string, width int) string {
	if width < 20 {
		width = 20
	}
	inner := width - 2

	left := theme.HeaderBrand.Render(Brand)
	if title != "" {
		left += theme.HeaderSubtitle.Render(" / ") + theme.HeaderTitle.Render(title)
	}

	right := ""
	if subtitle != "" && width >= 60 {
		room := inner - lipgloss.Width(left) - 2
		right = theme.HeaderSubtitle.Render(truncate(subtitle, room))
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = 0
	}

	return theme.Header.
		Width(width).
		MaxWidth(width).
		Render(left + strings.Repeat(" ", gap) + right)
}
