// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/ui/components"
	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders header, page, toasts and status bar. The session overlay
// replaces everything while it is shown.
func (m Model) View() string {
	if m.overlay.IsVisible() {
		return m.overlay.View()
	}

	route, _ := router.Match(m.path)

	header := components.RenderHeader(m.theme, route.Title, backendHost(m.app.Config.Backend.URL), m.width)

	m.statusBar.Hints = m.pageHints(route)
	m.statusBar.Busy = ""
	if m.spinner.IsActive() {
		m.statusBar.Busy = m.spinner.Message()
	}
	footer := m.statusBar.View()

	toasts := components.RenderToastStack(m.app.Notes.Active(), time.Now(), m.width, 0)
	if toasts != "" {
		toasts = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts)
	}

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if toasts != "" {
		bodyHeight -= lipgloss.Height(toasts)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Padding(0, 1).
		Render(m.pageView(route))

	parts := []string{header, body}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// pageView renders the body for route.
func (m Model) pageView(route router.Route) string {
	if m.showHelp {
		return m.theme.HelpBox.Render(m.help.View())
	}

	if route.Protected && m.decision != router.DecisionGranted {
		return "\n" + m.spinnerLine()
	}

	switch {
	case route.Name == "login":
		form := m.login.view(m.theme)
		if m.login.submitting {
			form += "\n\n" + m.spinnerLine()
		}
		return "\n" + form
	case route.Name == "home":
		return m.homeView()
	case route.PortID != "":
		return m.tableView()
	case route.Name == "access-denied":
		return "\n" + styles.RenderError("Acesso negado.") + "\n\n" +
			m.theme.Muted.Render("Você não tem permissão para abrir esta página. Pressione enter para voltar ao início.")
	case route.Name == "not-found":
		return "\n" + styles.RenderWarning("Página não encontrada.") + "\n\n" +
			m.theme.Muted.Render("Pressione enter para voltar ao início.")
	}
	return ""
}

func (m Model) spinnerLine() string {
	if v := m.spinner.View(); v != "" {
		return v
	}
	return m.theme.LoadingText.Render("Carregando...")
}

func (m Model) homeView() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.theme.HeaderTitle.Render("Bem-vindo ao painel"))
	b.WriteString("\n")
	if m.state.LoggedIn {
		b.WriteString(m.theme.Muted.Render("Sua sessão expira em "))
		b.WriteString(m.theme.CountdownStyle(m.state.Remaining).Render(m.state.Countdown()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.menu {
		label := fmt.Sprintf("%d. %s", i+1, item.Title)
		if i == m.cursor {
			b.WriteString(m.theme.MenuItemSelected.Render("> " + label))
		} else {
			b.WriteString(m.theme.MenuItem.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) tableView() string {
	switch {
	case m.loading && !m.hasTable:
		return "\n" + m.spinnerLine()
	case m.tableErr != "":
		return "\n" + styles.RenderError(m.tableErr) + "\n\n" +
			m.theme.Muted.Render("Pressione r para tentar novamente.")
	case !m.hasTable:
		return ""
	case len(m.table.Rows()) == 0:
		return "\n" + m.theme.TableEmpty.Render("Nenhum registro encontrado.")
	}
	count := m.theme.Muted.Render(fmt.Sprintf("%d registro(s)", len(m.table.Rows())))
	return m.table.View() + "\n" + count
}

// pageHints returns the shortcuts shown for route.
func (m Model) pageHints(route router.Route) []components.KeyHint {
	k := m.keys
	switch {
	case m.showHelp:
		return hints(k.Up, k.Down, k.Back)
	case route.Name == "login":
		return hints(k.NextField, k.Enter, k.ForceQuit)
	case route.Name == "home":
		return hints(k.Up, k.Down, k.Enter, k.Help, k.Quit)
	case route.PortID != "":
		return hints(k.Reload, k.Back, k.Dismiss, k.Quit)
	default:
		return hints(k.Enter, k.Quit)
	}
}

// backendHost is the host shown in the header.
func backendHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
