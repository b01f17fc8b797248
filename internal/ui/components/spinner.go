// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is the loading indicator shown while access is being checked or a
// catalog is being fetched.
type Spinner struct {
	spinner spinner.Model
	message string
	active  bool
}

// NewSpinner creates an inactive spinner with ASCII frames.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{spinner: s, message: "Carregando..."}
}

// Start activates the spinner with message and returns its first tick.
func (s *Spinner) Start(message string) tea.Cmd {
	if message != "" {
		s.message = message
	}
	if s.active {
		return nil
	}
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner. Pending ticks are dropped by Update.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is running.
func (s Spinner) IsActive() bool {
	return s.active
}

// Message returns the text next to the spinner.
func (s Spinner) Message() string {
	return s.message
}

// Update advances the animation on spinner ticks.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the frame and message, or "" when inactive.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	frame := lipgloss.NewStyle().Foreground(styles.Purple).Render(s.spinner.View())
	text := lipgloss.NewStyle().Foreground(styles.TextSecondary).Italic(true).Render(s.message)
	return frame + " " + text
}
