// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/painel-tui/internal/cli"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/mockapi"
	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/ui/components"
)

// =============================================================================
// HELPERS
// =============================================================================

// newTestModel wires a dashboard against a fresh mock backend. The
// fingerprint is resolved before returning so the guard never waits on it.
func newTestModel(t *testing.T) Model {
	t.Helper()
	t.Setenv("PAINEL_HOME", t.TempDir())

	fix, err := mockapi.DefaultFixtures()
	require.NoError(t, err)
	hs := httptest.NewServer(mockapi.NewServer(fix, mockapi.WithSecret([]byte("ui-test"))).Handler())
	t.Cleanup(hs.Close)

	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Backend.RateLimit = 0
	cfg.UI.Theme = "dark"

	ctx := context.Background()
	app, err := cli.Assemble(ctx, cfg,
		cli.Args{Backend: hs.URL + mockapi.DefaultPrefix + "/"},
		cli.Output{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	app.Fingerprint.Wait(ctx)

	m := New(ctx, app)
	return step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// step feeds msg to m and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// enter runs the gate for the current path and applies the result.
func enter(t *testing.T, m Model) Model {
	t.Helper()
	return step(t, m, m.enterCmd()())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loggedIn logs user in through the form result and lands on the home page.
func loggedIn(t *testing.T, user, pass string) Model {
	t.Helper()
	m := enter(t, newTestModel(t))
	require.Equal(t, router.PathLogin, m.path)

	m = step(t, m, m.loginCmd(user, pass)())
	require.Equal(t, router.PathHome, m.path)
	return enter(t, m)
}

// =============================================================================
// LOGIN
// =============================================================================

func TestModel_StartsOnLogin(t *testing.T) {
	m := enter(t, newTestModel(t))

	assert.Equal(t, router.PathLogin, m.path)
	assert.False(t, m.entering)
	assert.Equal(t, router.DecisionGranted, m.decision)
	view := m.View()
	assert.Contains(t, view, "Entrar no painel")
	assert.Contains(t, view, "SESSÃO INATIVA")
}

func TestModel_LoginFormValidation(t *testing.T) {
	m := enter(t, newTestModel(t))

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Informe usuário e senha.", m.login.problem)
	assert.False(t, m.login.submitting)

	// "q" is text on the login page, not quit.
	next, _ := m.Update(keyRunes("q"))
	m = next.(Model)
	assert.Equal(t, "q", m.login.user.Value())

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, fieldPassword, m.login.focus)
}

func TestModel_LoginSuccess(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	assert.Equal(t, router.DecisionGranted, m.decision)
	assert.Equal(t, "", m.login.password.Value())
	view := m.View()
	assert.Contains(t, view, "Bem-vindo ao painel")
	assert.Contains(t, view, "Clientes")
	assert.Contains(t, view, "Sair")
}

func TestModel_LoginFailure(t *testing.T) {
	m := enter(t, newTestModel(t))

	m = step(t, m, m.loginCmd("admin", "errada")())
	assert.Equal(t, router.PathLogin, m.path)
	active := m.app.Notes.Active()
	require.NotEmpty(t, active)
	assert.Equal(t, notify.MsgLoginFailed, active[0].Message)
	assert.Contains(t, m.View(), notify.MsgLoginFailed)
}

// =============================================================================
// ROUTING
// =============================================================================

func TestModel_ProtectedPageWithoutSession(t *testing.T) {
	m := enter(t, newTestModel(t))

	m.app.Nav.Navigate(router.PathClients)
	m = step(t, m, uiTickMsg{})
	require.Equal(t, router.PathClients, m.path)
	assert.True(t, m.entering)

	m = enter(t, m)
	assert.Equal(t, router.PathLogin, m.path)
}

func TestModel_CatalogPage(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	// First menu entry is the clients page.
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, router.PathClients, m.path)

	m = enter(t, m)
	require.Equal(t, router.DecisionGranted, m.decision)
	assert.True(t, m.loading)

	m = step(t, m, m.loadTableCmd(m.path)())
	require.True(t, m.hasTable)
	assert.Len(t, m.table.Rows(), 3)
	view := m.View()
	assert.Contains(t, view, "Moda Recife")
	assert.Contains(t, view, "3 registro(s)")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, router.PathHome, m.path)
}

func TestModel_PortDenied(t *testing.T) {
	m := loggedIn(t, "vendas", "vendas123")

	m.app.Nav.Navigate(router.PathProducts)
	m = step(t, m, uiTickMsg{})
	m = enter(t, m)

	assert.Equal(t, router.PathAccessDenied, m.path)
	m = enter(t, m)
	assert.Contains(t, m.View(), "Acesso negado")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, router.PathHome, m.path)
}

func TestModel_StaleTableIgnored(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	m = step(t, m, tableMsg{path: router.PathClients, table: &cli.Table{Headers: []string{"ID"}}})
	assert.False(t, m.hasTable)
}

func TestModel_LogoutFromMenu(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	for i := 0; i < len(m.menu)-1; i++ {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, "Sair", m.menu[m.cursor].Title)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = enter(t, m)
	assert.Equal(t, router.PathLogin, m.path)
	assert.False(t, m.app.Session.Snapshot().LoggedIn)
}

// =============================================================================
// SESSION
// =============================================================================

func TestModel_ExpiredOverlay(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	m.app.Session.LogoutExpired()
	m = step(t, m, stateMsg{state: m.app.Session.Snapshot(), ok: true})

	require.True(t, m.overlay.IsExpired())
	assert.Contains(t, m.View(), "Sessão expirada")
	assert.Equal(t, router.PathLogin, m.path)

	next, cmd := m.Update(keyRunes("a"))
	m = next.(Model)
	require.NotNil(t, cmd)
	m = step(t, m, components.SessionExpiredAckMsg{})

	assert.False(t, m.overlay.IsVisible())
	assert.False(t, m.app.Notes.Visible(notify.KeySessionExpired))
	assert.Equal(t, router.PathLogin, m.path)
}

func TestModel_FiveMinuteWarning(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	m.app.Notes.Show(notify.PersistentWarning(notify.KeyFiveMinute, notify.MsgFiveMinute))
	m = step(t, m, uiTickMsg{})
	require.True(t, m.overlay.IsVisible())
	assert.False(t, m.overlay.IsExpired())

	m = step(t, m, components.SessionWarningAckMsg{})
	m.overlay.Hide()
	m = step(t, m, uiTickMsg{})
	assert.False(t, m.overlay.IsVisible(), "acknowledged warning stays hidden")

	m.app.Notes.Dismiss(notify.KeyFiveMinute)
	m = step(t, m, uiTickMsg{})
	assert.False(t, m.warnAcked)
}

func TestModel_StateUpdatesStatusBar(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	st := m.app.Session.Snapshot()
	m = step(t, m, stateMsg{state: st, ok: true})
	assert.True(t, m.statusBar.LoggedIn)
	assert.Equal(t, st.Countdown(), m.statusBar.Countdown)
	assert.Contains(t, m.View(), "SESSÃO ATIVA")
}

// =============================================================================
// KEYS AND SETTINGS
// =============================================================================

func TestModel_HelpAndDismiss(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	m = step(t, m, keyRunes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "painel")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)

	m.app.Notes.Clear()
	m.app.Notes.Show(notify.Info("Olá"))
	m = step(t, m, keyRunes("x"))
	assert.Empty(t, m.app.Notes.Active())
}

func TestModel_Quit(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Contains(t, collect(cmd), tea.Quit())
}

func TestModel_ConfigReload(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")

	cfg := config.Default()
	cfg.UI.Theme = "light"
	cfg.UI.ShowCountdown = false
	cfg.UI.PageSize = 5
	m = step(t, m, configReloadedMsg{cfg: cfg})

	assert.Equal(t, "light", m.theme.Name)
	assert.False(t, m.statusBar.ShowCountdown)
	assert.Equal(t, 5, m.pageSize)
}

func TestTableRows(t *testing.T) {
	assert.Equal(t, 20, tableRows(40, 20))
	assert.Equal(t, 34, tableRows(40, 0))
	assert.Equal(t, 4, tableRows(10, 50))
}

func TestHomeMenu(t *testing.T) {
	items := homeMenu()
	require.Len(t, items, 6)
	assert.Equal(t, router.PathClients, items[0].Path)
	assert.Equal(t, "/logout/usuario", items[len(items)-1].Path)
}

// collect runs cmd and flattens batches, skipping commands that would
// block.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c == nil {
			continue
		}
		out = append(out, collect(c)...)
	}
	return out
}
