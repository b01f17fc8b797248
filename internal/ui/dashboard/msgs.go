// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/painel-tui/internal/cli"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// stateMsg carries a session snapshot from the subscription. ok is false
// once the subscription is closed.
type stateMsg struct {
	state session.State
	ok    bool
}

// uiTickMsg drives toast expiry and route polling.
type uiTickMsg time.Time

// gateMsg is the outcome of entering path.
type gateMsg struct {
	path     string
	decision router.Decision
	loading  string
}

// loginResultMsg is the outcome of the login form.
type loginResultMsg struct {
	ok bool
}

// restoreMsg is the outcome of the startup token replay.
type restoreMsg struct {
	ok bool
}

// tableMsg carries a fetched catalog listing for path.
type tableMsg struct {
	path  string
	table *cli.Table
	err   error
}

// configReloadedMsg carries a config file change.
type configReloadedMsg struct {
	cfg *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

const uiTickInterval = time.Second

func uiTick() tea.Cmd {
	return tea.Tick(uiTickInterval, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

// waitState blocks on the next session snapshot.
func waitState(ch <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		return stateMsg{state: st, ok: ok}
	}
}

// waitReload blocks on the next config reload.
func waitReload(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		return configReloadedMsg{cfg: <-ch}
	}
}

// gateRecorder collects the guard effects so they can be applied on the
// Bubble Tea goroutine.
type gateRecorder struct {
	loading string
}

func (r *gateRecorder) ShowLoading(message string) {
	if message != "" {
		r.loading = message
	}
}

func (r *gateRecorder) RenderProtected() {}

func (r *gateRecorder) RedirectToLogin() {}

// enterCmd runs the gate for the navigator's current path.
func (m Model) enterCmd() tea.Cmd {
	gate, ctx, nav := m.gate, m.ctx, m.app.Nav
	return func() tea.Msg {
		path := nav.Current()
		rec := &gateRecorder{}
		d := gate.Enter(ctx, rec)
		return gateMsg{path: path, decision: d, loading: rec.loading}
	}
}

// loginCmd exchanges the credentials for a token and verifies it.
func (m Model) loginCmd(username, password string) tea.Cmd {
	sess, ctx := m.app.Session, m.ctx
	return func() tea.Msg {
		if !sess.Login(ctx, username, password) {
			return loginResultMsg{ok: false}
		}
		return loginResultMsg{ok: sess.Verify(ctx, sess.Token())}
	}
}

// restoreCmd replays the persisted token.
func (m Model) restoreCmd() tea.Cmd {
	sess, ctx := m.app.Session, m.ctx
	return func() tea.Msg {
		return restoreMsg{ok: sess.Restore(ctx)}
	}
}

// loadTableCmd fetches the listing for the page at path. The fetch is a
// page-level load, so session warnings wait for it.
func (m Model) loadTableCmd(path string) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		route, _ := router.Match(path)
		app.Session.BeginLoad()
		defer app.Session.EndLoad()
		t, err := app.CatalogTable(ctx, route.Name)
		return tableMsg{path: path, table: t, err: err}
	}
}
