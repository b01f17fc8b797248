// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN FORM
// =============================================================================

const (
	fieldUser = iota
	fieldPassword
)

// loginForm is the user/password form of the login page.
type loginForm struct {
	user       textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	problem    string
}

func newLoginForm() loginForm {
	user := textinput.New()
	user.Placeholder = "usuário"
	user.CharLimit = 64
	user.Prompt = ""
	user.Focus()

	password := textinput.New()
	password.Placeholder = "senha"
	password.CharLimit = 128
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginForm{user: user, password: password}
}

// focusField moves the cursor to field.
func (f *loginForm) focusField(field int) tea.Cmd {
	f.focus = field
	if field == fieldUser {
		f.password.Blur()
		return f.user.Focus()
	}
	f.user.Blur()
	return f.password.Focus()
}

// reset clears the password and puts the cursor back on the first empty
// field.
func (f *loginForm) reset() tea.Cmd {
	f.password.SetValue("")
	f.submitting = false
	if strings.TrimSpace(f.user.Value()) == "" {
		return f.focusField(fieldUser)
	}
	return f.focusField(fieldPassword)
}

// credentials returns the trimmed user and the raw password.
func (f loginForm) credentials() (string, string) {
	return strings.TrimSpace(f.user.Value()), f.password.Value()
}

// update handles a key on the login page. submit is true when the form
// should be sent.
func (f loginForm) update(msg tea.KeyMsg, keys KeyMap) (loginForm, tea.Cmd, bool) {
	if f.submitting {
		return f, nil, false
	}

	switch {
	case key.Matches(msg, keys.Enter):
		user, pass := f.credentials()
		if f.focus == fieldUser && user != "" && pass == "" {
			return f, f.focusField(fieldPassword), false
		}
		if user == "" || pass == "" {
			f.problem = "Informe usuário e senha."
			return f, nil, false
		}
		f.problem = ""
		f.submitting = true
		return f, nil, true

	case key.Matches(msg, keys.NextField):
		return f, f.focusField((f.focus + 1) % 2), false

	case key.Matches(msg, keys.PrevField):
		return f, f.focusField((f.focus + 1) % 2), false
	}

	var cmd tea.Cmd
	if f.focus == fieldUser {
		f.user, cmd = f.user.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd, false
}

// view renders the form box.
func (f loginForm) view(theme *styles.Theme) string {
	label := func(field int, text string) string {
		if f.focus == field {
			return theme.FormLabelFocused.Render(text)
		}
		return theme.FormLabel.Render(text)
	}

	lines := []string{
		theme.HeaderTitle.Render("Entrar no painel"),
		"",
		label(fieldUser, "Usuário"),
		f.user.View(),
		"",
		label(fieldPassword, "Senha"),
		f.password.View(),
	}
	if f.problem != "" {
		lines = append(lines, "", theme.FormError.Render(f.problem))
	}

	return theme.FormBox.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
