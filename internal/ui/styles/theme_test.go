// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme_Names(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
	}{
		{"dark", ThemeDark},
		{" Light ", ThemeLight},
		{"auto", ThemeAuto},
		{"neon", ThemeAuto},
		{"", ThemeAuto},
	}
	for _, tt := range tests {
		theme := NewTheme(tt.in)
		require.NotNil(t, theme)
		assert.Equal(t, tt.wantName, theme.Name, "input %q", tt.in)
	}

	assert.True(t, NewTheme("dark").IsDark)
	assert.False(t, NewTheme("light").IsDark)
}

func TestNewTheme_StylesRender(t *testing.T) {
	theme := NewTheme("dark")
	for name, style := range map[string]interface{ Render(...string) string }{
		"Header":        theme.Header,
		"FormBox":       theme.FormBox,
		"TableSelected": theme.TableSelected,
		"StatusBar":     theme.StatusBar,
		"OfflineBadge":  theme.OfflineBadge,
	} {
		assert.Contains(t, style.Render("painel"), "painel", name)
	}
}

// =============================================================================
// COUNTDOWN TESTS
// =============================================================================

func TestCountdownStyle_Thresholds(t *testing.T) {
	theme := NewTheme("dark")
	tests := []struct {
		remaining int
		want      interface{}
	}{
		{3600, Emerald},
		{601, Emerald},
		{600, Amber},
		{301, Amber},
		{300, Rose},
		{0, Rose},
	}
	for _, tt := range tests {
		got := theme.CountdownStyle(tt.remaining).GetForeground()
		assert.Equal(t, tt.want, got, "remaining=%d", tt.remaining)
	}
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestThemeLayoutMode(t *testing.T) {
	theme := NewTheme("auto")
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		assert.Equal(t, tt.want, theme.GetLayoutMode(), "width=%d", tt.width)
	}
	assert.Equal(t, 30, theme.Height)
}
