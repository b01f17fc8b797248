// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/painel-tui/internal/cli"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/session"
	"github.com/jeranaias/painel-tui/internal/ui/components"
	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model of the dashboard.
type Model struct {
	ctx  context.Context
	app  *cli.App
	gate *router.Gate
	keys KeyMap

	theme    *styles.Theme
	width    int
	height   int
	pageSize int

	// Routing
	path     string
	entering bool
	decision router.Decision

	// Session
	state       session.State
	states      <-chan session.State
	unsubscribe func()
	warnAcked   bool

	// Pages
	login     loginForm
	menu      []menuItem
	cursor    int
	table     table.Model
	hasTable  bool
	tableErr  string
	loading   bool
	showHelp  bool
	help      viewport.Model
	reloads   chan *config.Config
	statusBar *components.StatusBar
	spinner   components.Spinner
	overlay   components.SessionOverlay
}

// New creates the dashboard over an assembled App. The caller owns app and
// closes it after the program exits.
func New(ctx context.Context, app *cli.App) Model {
	theme := styles.NewTheme(app.Config.UI.Theme)
	states, unsubscribe := app.Session.Subscribe()

	bar := components.NewStatusBar(theme)
	bar.ShowCountdown = app.Config.UI.ShowCountdown
	bar.Offline = app.Config.Backend.Offline

	return Model{
		ctx:         ctx,
		app:         app,
		gate:        router.NewGate(app.Session, app.Nav),
		keys:        DefaultKeyMap(),
		theme:       theme,
		width:       80,
		height:      24,
		pageSize:    app.Config.UI.PageSize,
		decision:    router.DecisionVerifying,
		state:       app.Session.Snapshot(),
		states:      states,
		unsubscribe: unsubscribe,
		path:        app.Nav.Current(),
		entering:    true,
		login:       newLoginForm(),
		menu:        homeMenu(),
		reloads:     make(chan *config.Config, 1),
		statusBar:   bar,
		spinner:     components.NewSpinner(),
		overlay:     components.NewSessionOverlay(),
	}
}

// WatchConfig reloads the theme and page size whenever the config file at
// path changes.
func (m Model) WatchConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	reloads := m.reloads
	return config.Watch(m.ctx, path, func(cfg *config.Config) {
		select {
		case reloads <- cfg:
		default:
		}
	})
}

// Init starts the countdown, the subscriptions and the first route entry.
func (m Model) Init() tea.Cmd {
	m.app.Session.Start(m.ctx)

	cmds := []tea.Cmd{
		waitState(m.states),
		waitReload(m.reloads),
		uiTick(),
		m.enterCmd(),
	}
	if m.app.Config.Session.RestoreOnStart {
		cmds = append(cmds, m.restoreCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m, cmd = m.handleResize(msg)
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	case stateMsg:
		m, cmd = m.handleState(msg)
	case uiTickMsg:
		m.app.Notes.Tick()
		m.refreshOverlay()
		cmd = uiTick()
	case gateMsg:
		m, cmd = m.handleGate(msg)
	case loginResultMsg:
		m, cmd = m.handleLoginResult(msg)
	case restoreMsg:
		log.Printf("SESSION | restore on start: %t", msg.ok)
	case tableMsg:
		m = m.handleTable(msg)
	case configReloadedMsg:
		m, cmd = m.handleReload(msg)
	case components.SessionWarningAckMsg:
		m.warnAcked = true
	case components.SessionExpiredAckMsg:
		m.app.Notes.Dismiss(notify.KeySessionExpired)
		m.app.Nav.Navigate(router.PathLogin)
	default:
		if m.spinner.IsActive() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}

	sync := m.syncRoute()
	return m, tea.Batch(cmd, sync)
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.overlay.SetSize(msg.Width, msg.Height)
	if m.hasTable {
		m.table.SetHeight(tableRows(m.height, m.pageSize))
	}
	if m.showHelp {
		m = m.openHelp()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.overlay.IsVisible() {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	route, _ := router.Match(m.path)

	if route.Name == "login" {
		var cmd tea.Cmd
		var submit bool
		m.login, cmd, submit = m.login.update(msg, m.keys)
		if submit {
			user, pass := m.login.credentials()
			spin := m.spinner.Start("Entrando...")
			return m, tea.Batch(spin, m.loginCmd(user, pass))
		}
		return m, cmd
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		return m.openHelp(), nil
	case key.Matches(msg, m.keys.Dismiss):
		if active := m.app.Notes.Active(); len(active) > 0 {
			m.app.Notes.Remove(active[0].ID)
		}
		return m, nil
	}

	switch {
	case route.Name == "home":
		return m.handleMenuKey(msg)
	case route.PortID != "":
		return m.handleTableKey(msg)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Enter):
		m.app.Nav.Navigate(router.PathHome)
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.app.Nav.Navigate(m.menu[m.cursor].Path)
	}
	return m, nil
}

func (m Model) handleTableKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.app.Nav.Navigate(router.PathHome)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.loading || m.entering {
			return m, nil
		}
		m.loading = true
		spin := m.spinner.Start("Carregando...")
		return m, tea.Batch(spin, m.loadTableCmd(m.path))
	}
	if !m.hasTable {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleState applies a session snapshot and re-runs the guard when its
// answer changed.
func (m Model) handleState(msg stateMsg) (Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	m.state = msg.state
	m.statusBar.LoggedIn = msg.state.LoggedIn
	m.statusBar.Countdown = msg.state.Countdown()
	m.statusBar.Remaining = msg.state.Remaining
	m.refreshOverlay()

	next := waitState(m.states)

	route, _ := router.Match(m.path)
	if !route.Protected || m.entering {
		return m, next
	}

	switch router.Evaluate(router.InputFromState(msg.state)) {
	case router.DecisionVerifying:
	case router.DecisionDenied:
		if m.decision == router.DecisionGranted || m.decision == router.DecisionVerifying {
			m.app.Nav.Navigate(router.PathLogin)
		}
	case router.DecisionGranted:
		if m.decision == router.DecisionVerifying {
			enter := m.enter()
			return m, tea.Batch(next, enter)
		}
	}
	return m, next
}

// refreshOverlay shows the session boxes that match the visible
// notifications.
func (m *Model) refreshOverlay() {
	notes := m.app.Notes

	if notes.Visible(notify.KeySessionExpired) {
		if !m.overlay.IsExpired() {
			m.overlay.ShowExpired()
		}
		return
	}

	if !notes.Visible(notify.KeyFiveMinute) {
		m.warnAcked = false
		if m.overlay.IsVisible() && !m.overlay.IsExpired() {
			m.overlay.Hide()
		}
		return
	}

	if m.overlay.IsVisible() {
		m.overlay.SetCountdown(m.state.Countdown())
	} else if !m.warnAcked {
		m.overlay.ShowWarning(m.state.Countdown())
	}
}

func (m Model) handleGate(msg gateMsg) (Model, tea.Cmd) {
	if msg.path != m.path {
		return m, nil
	}
	m.entering = false
	m.decision = msg.decision

	if msg.decision != router.DecisionVerifying {
		m.spinner.Stop()
	}
	if msg.decision != router.DecisionGranted {
		return m, nil
	}

	route, _ := router.Match(m.path)
	if route.PortID != "" {
		m.loading = true
		spin := m.spinner.Start("Carregando...")
		return m, tea.Batch(spin, m.loadTableCmd(m.path))
	}
	if route.Name == "login" {
		focus := m.login.reset()
		return m, focus
	}
	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (Model, tea.Cmd) {
	m.spinner.Stop()
	cmd := m.login.reset()
	if msg.ok {
		m.app.Nav.Navigate(router.PathHome)
	}
	return m, cmd
}

func (m Model) handleTable(msg tableMsg) Model {
	if msg.path != m.path {
		return m
	}
	m.loading = false
	m.spinner.Stop()
	if msg.err != nil {
		m.hasTable = false
		m.tableErr = notify.MsgFetchError
		return m
	}
	m.tableErr = ""
	m.table = buildTable(msg.table, m.theme, m.width, tableRows(m.height, m.pageSize))
	m.hasTable = true
	return m
}

func (m Model) handleReload(msg configReloadedMsg) (Model, tea.Cmd) {
	if msg.cfg == nil {
		return m, waitReload(m.reloads)
	}
	ui := msg.cfg.UI
	m.theme = styles.NewTheme(ui.Theme)
	m.theme.SetSize(m.width, m.height)
	m.statusBar.SetTheme(m.theme)
	m.statusBar.ShowCountdown = ui.ShowCountdown
	m.pageSize = ui.PageSize
	if m.hasTable {
		m.table.SetHeight(tableRows(m.height, m.pageSize))
	}
	log.Printf("CONFIG | reloaded ui settings (theme=%s page_size=%d)", ui.Theme, ui.PageSize)
	m.app.Notes.Show(notify.Info("Configuração recarregada."))
	return m, waitReload(m.reloads)
}

// =============================================================================
// ROUTING
// =============================================================================

// syncRoute enters the navigator's path when it differs from the page on
// screen.
func (m *Model) syncRoute() tea.Cmd {
	current := m.app.Nav.Current()
	if current == m.path {
		return nil
	}
	m.path = current
	m.cursor = 0
	m.hasTable = false
	m.tableErr = ""
	m.loading = false
	m.showHelp = false
	return m.enter()
}

// enter starts the gate for the current path.
func (m *Model) enter() tea.Cmd {
	m.entering = true
	m.decision = router.DecisionVerifying

	route, _ := router.Match(m.path)
	if !route.Protected {
		m.spinner.Stop()
		return m.enterCmd()
	}

	message := ""
	if route.PortID != "" {
		message = notify.MsgCheckingAccess
	}
	return tea.Batch(m.spinner.Start(message), m.enterCmd())
}

func (m Model) openHelp() Model {
	w := m.width - 4
	h := m.height - chromeLines
	if h < 3 {
		h = 3
	}
	m.help = viewport.New(w, h)
	m.help.SetContent(cli.RenderMarkdown(cli.UsageMarkdown(), w))
	m.showHelp = true
	return m
}

func (m Model) quit() (Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}
