// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Countdown thresholds in seconds.
const (
	countdownWarn     = 10 * 60
	countdownCritical = 5 * 60
)

// Theme holds all the styled components for the dashboard.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// MENU AND FORM STYLES
	// ==========================================================================

	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	FormBox          lipgloss.Style
	FormLabel        lipgloss.Style
	FormLabelFocused lipgloss.Style
	FormError        lipgloss.Style

	// ==========================================================================
	// TABLE STYLES
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style
	TableEmpty    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar       lipgloss.Style
	SessionActive   lipgloss.Style
	SessionInactive lipgloss.Style
	OfflineBadge    lipgloss.Style
	ShortcutKey     lipgloss.Style
	ShortcutDesc    lipgloss.Style

	// ==========================================================================
	// COUNTDOWN STYLES
	// ==========================================================================

	CountdownOK       lipgloss.Style
	CountdownWarn     lipgloss.Style
	CountdownCritical lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	Spinner     lipgloss.Style
	LoadingText lipgloss.Style
	HelpBox     lipgloss.Style
	Muted       lipgloss.Style
}

// NewTheme creates a theme for name ("auto", "dark" or "light"). Unknown
// names behave like "auto".
func NewTheme(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	profile := termenv.ColorProfile()

	t := &Theme{
		Name:         ThemeAuto,
		ColorProfile: profile,
		HasTrueColor: profile == termenv.TrueColor,
		Width:        80,
		Height:       24,
	}

	switch name {
	case ThemeDark:
		t.Name = ThemeDark
		t.IsDark = true
		lipgloss.SetHasDarkBackground(true)
	case ThemeLight:
		t.Name = ThemeLight
		t.IsDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		t.IsDark = termenv.HasDarkBackground()
	}

	t.initStyles()
	return t
}

// initStyles initializes all style definitions.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.HeaderBrand = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Menu
	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.MenuItemSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	// Login form
	t.FormBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormLabelFocused = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)

	// Tables
	t.TableHeader = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		BorderBottom(true)

	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.TableEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.SessionActive = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.SessionInactive = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.OfflineBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Countdown
	t.CountdownOK = lipgloss.NewStyle().
		Foreground(Emerald)

	t.CountdownWarn = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.CountdownCritical = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Overlays
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HelpBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// CountdownStyle picks the countdown style for remaining seconds.
func (t *Theme) CountdownStyle(remaining int) lipgloss.Style {
	switch {
	case remaining <= countdownCritical:
		return t.CountdownCritical
	case remaining <= countdownWarn:
		return t.CountdownWarn
	default:
		return t.CountdownOK
	}
}

// SetSize updates the theme dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutNarrow
	case t.Width < 100:
		return LayoutMedium
	default:
		return LayoutWide
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-99 columns
	LayoutWide                     // >= 100 columns
)
