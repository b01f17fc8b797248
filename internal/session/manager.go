// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/storage"
	"github.com/jeranaias/painel-tui/internal/util"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the subset of *backend.Client the session needs.
type Backend interface {
	Login(ctx context.Context, username, password, fingerprint string) (string, error)
	Verify(ctx context.Context, token, fingerprint string) (*backend.VerifyResponse, error)
	HasResourcePermission(ctx context.Context, token, resourceName string) (bool, error)
	CheckPermission(ctx context.Context, token, portID string) (bool, error)
}

// Fingerprinter supplies the device fingerprint.
type Fingerprinter interface {
	Pending() bool
	Wait(ctx context.Context) string
}

// Navigator is the current route, used by Restore.
type Navigator interface {
	Current() string
	Navigate(path string)
}

// Deps are the collaborators of a Manager. Nav may be nil.
type Deps struct {
	Backend     Backend
	Store       storage.Store
	Fingerprint Fingerprinter
	Notifier    notify.Notifier
	Nav         Navigator
}

// Paths used by Restore and Logout.
const (
	PathLogin = "/login"
	PathHome  = "/usuario"
	PathRoot  = "/"
)

// AccountUser is the only account type Logout acts on.
const AccountUser = "usuario"

// DefaultRequestTimeout bounds each backend call.
const DefaultRequestTimeout = 30 * time.Second

const storeTimeout = 5 * time.Second

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager is the process-wide session container. All state updates are
// serialized by mu; a sequence that spans a backend call is not atomic, so
// overlapping verifications resolve last-write-wins unless fencing is on.
type Manager struct {
	deps Deps

	mu            sync.Mutex
	token         string
	remaining     int
	authoritative int
	loggedIn      bool
	inflight      int
	expired       bool
	loadCount     int
	warnings      WarningState

	// Verify fencing
	fencing     bool
	issued      uint64
	lastApplied uint64

	requestTimeout time.Duration
	tickInterval   time.Duration
	startOnce      sync.Once

	subMu       sync.Mutex
	subscribers map[chan State]struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithFencing discards verify responses that resolve after a newer one was
// already applied.
func WithFencing(enabled bool) Option {
	return func(m *Manager) { m.fencing = enabled }
}

// WithRequestTimeout bounds every backend call. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Manager) { m.requestTimeout = d }
}

// WithTickInterval changes the countdown period used by Start.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// New creates an empty session.
func New(deps Deps, opts ...Option) *Manager {
	if deps.Store == nil {
		deps.Store = storage.NewMemoryStore()
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewCenter()
	}
	m := &Manager{
		deps:           deps,
		requestTimeout: DefaultRequestTimeout,
		tickInterval:   time.Second,
		subscribers:    make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// State is a point-in-time copy of the session.
type State struct {
	Token              string
	Remaining          int
	Authoritative      int
	LoggedIn           bool
	Verifying          bool
	Expired            bool
	Loading            bool
	FingerprintPending bool
	Warnings           WarningState
}

// Countdown is Remaining rendered by FormatRemaining.
func (s State) Countdown() string {
	return FormatRemaining(s.Remaining)
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() State {
	pending := false
	if m.deps.Fingerprint != nil {
		pending = m.deps.Fingerprint.Pending()
	}
	return State{
		Token:              m.token,
		Remaining:          m.remaining,
		Authoritative:      m.authoritative,
		LoggedIn:           m.loggedIn,
		Verifying:          m.inflight > 0,
		Expired:            m.expired,
		Loading:            m.loadCount > 0,
		FingerprintPending: pending,
		Warnings:           m.warnings,
	}
}

// Token returns the in-memory token.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe returns a channel that receives the latest state after every
// change, and a function that stops delivery. Slow readers only see the
// most recent state.
func (m *Manager) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subscribers, ch)
			m.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Manager) publish() {
	st := m.Snapshot()
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for ch := range m.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}

// =============================================================================
// LOGIN
// =============================================================================

// Login exchanges credentials for a token. On success the token is stored
// in memory and persisted; the session is not logged in until Verify
// succeeds. Any failure leaves the token untouched and returns false.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	fp := m.waitFingerprint(ctx)
	if fp == "" {
		logSessionEvent("login", "fingerprint unavailable, sending empty value")
	}

	m.beginRequest()
	defer m.endRequest()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	token, err := m.deps.Backend.Login(ctx, username, password, fp)
	if err != nil {
		logSessionEvent("login failed", err.Error())
		if errors.Is(err, backend.ErrDenied) {
			m.deps.Notifier.Show(notify.Error(notify.MsgLoginFailed))
		} else {
			m.deps.Notifier.Show(notify.Error(notify.MsgFetchError))
		}
		return false
	}

	m.mu.Lock()
	m.token = token
	m.expired = false
	m.mu.Unlock()

	sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer scancel()
	if err := storage.SaveToken(sctx, m.deps.Store, token); err != nil {
		logSessionEvent("persist token failed", err.Error())
	}

	logSessionEvent("login", "token "+util.ShortToken(token))
	m.publish()
	return true
}

// =============================================================================
// VERIFY
// =============================================================================

// Verify validates token with the backend and reports whether the session
// is logged in. It never fails: transport and decode errors show a
// notification and return false.
func (m *Manager) Verify(ctx context.Context, token string) bool {
	fp := m.waitFingerprint(ctx)
	if fp == "" {
		logSessionEvent("verify skipped", "fingerprint unavailable")
		return false
	}

	seq := m.beginRequest()
	defer m.endRequest()

	rctx, cancel := m.withTimeout(ctx)
	defer cancel()

	resp, err := m.deps.Backend.Verify(rctx, token, fp)
	if err != nil {
		logSessionEvent("verify failed", err.Error())
		m.deps.Notifier.Show(notify.Error(notify.MsgFetchError))
		return false
	}

	message := strings.ToLower(resp.Message)
	tokenExpired := strings.Contains(message, "token has expired")
	inactive := !tokenExpired && strings.Contains(message, "user is not active")
	loggedIn := resp.LoggedIn()

	m.mu.Lock()
	if m.fencing && seq < m.lastApplied {
		current := m.loggedIn
		m.mu.Unlock()
		logSessionEvent("verify discarded", "stale response")
		return current
	}
	m.lastApplied = seq

	m.setAuthoritativeLocked(int(resp.RemainingTime))
	if tokenExpired {
		m.expired = true
	}
	if loggedIn && m.token == "" {
		// A token cleared while the call was in flight stays cleared.
		loggedIn = false
	}
	m.loggedIn = loggedIn
	if loggedIn {
		m.expired = false
	}
	actions, logout := m.evaluateLocked()
	m.mu.Unlock()

	logSessionEvent("verify", resp.Message)

	if tokenExpired {
		m.LogoutExpired()
		logout = false
	} else if inactive {
		m.deps.Notifier.Show(notify.Error(notify.MsgUserInactive))
		m.removePersistedToken(ctx)
	}

	m.perform(actions, logout)
	m.publish()

	if tokenExpired {
		return false
	}
	return loggedIn
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore replays the persisted token through Verify. With no persisted
// token the session is marked logged out with no remaining time.
func (m *Manager) Restore(ctx context.Context) bool {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	token, ok, err := storage.LoadToken(sctx, m.deps.Store)
	cancel()
	if err != nil {
		logSessionEvent("restore", "load token: "+err.Error())
	}

	fp := ""
	if ok {
		fp = m.waitFingerprint(ctx)
	}

	if !ok || fp == "" {
		m.mu.Lock()
		m.loggedIn = false
		m.setAuthoritativeLocked(0)
		m.mu.Unlock()
		m.publish()
		return false
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	m.BeginLoad()
	loggedIn := m.Verify(ctx, token)
	m.EndLoad()

	if loggedIn && m.deps.Nav != nil && m.deps.Nav.Current() == PathLogin {
		m.deps.Nav.Navigate(PathHome)
	}
	return loggedIn
}

// =============================================================================
// PERMISSIONS
// =============================================================================

// CheckResourcesPermission asks the backend about each resource in order.
// Any error counts as no permission.
func (m *Manager) CheckResourcesPermission(ctx context.Context, names []string) map[string]bool {
	token := m.Token()
	perms := make(map[string]bool, len(names))
	for _, name := range names {
		rctx, cancel := m.withTimeout(ctx)
		ok, err := m.deps.Backend.HasResourcePermission(rctx, token, name)
		cancel()
		if err != nil {
			logSessionEvent("resource permission", name+": "+err.Error())
			ok = false
		}
		perms[name] = ok
	}
	return perms
}

// CheckPortPermission asks whether the session may open the page with
// portID. Any error counts as no permission.
func (m *Manager) CheckPortPermission(ctx context.Context, portID string) bool {
	rctx, cancel := m.withTimeout(ctx)
	defer cancel()
	ok, err := m.deps.Backend.CheckPermission(rctx, m.Token(), portID)
	if err != nil {
		logSessionEvent("port permission", portID+": "+err.Error())
		return false
	}
	return ok
}

// =============================================================================
// LOGOUT
// =============================================================================

// LogoutExpired runs the expired-session procedure. Each step runs even if
// an earlier one failed.
func (m *Manager) LogoutExpired() {
	m.deps.Notifier.Show(notify.PersistentWarning(notify.KeySessionExpired, notify.MsgSessionExpired))
	m.removePersistedToken(context.Background())

	m.mu.Lock()
	m.token = ""
	m.loggedIn = false
	m.mu.Unlock()

	notify.DismissSessionWarnings(m.deps.Notifier)
	logSessionEvent("logout", "session expired")
	m.publish()
}

// Logout ends the session for accountType and returns where to go next.
// Only the user account type clears the session.
func (m *Manager) Logout(ctx context.Context, accountType string) string {
	if accountType != AccountUser {
		return PathRoot
	}

	m.removePersistedToken(ctx)
	notify.DismissSessionWarnings(m.deps.Notifier)

	m.mu.Lock()
	m.token = ""
	m.loggedIn = false
	m.setAuthoritativeLocked(0)
	m.mu.Unlock()

	logSessionEvent("logout", accountType)
	m.publish()
	return PathLogin
}

// =============================================================================
// COUNTDOWN
// =============================================================================

// Start runs the one-second countdown until ctx is done. Only the first
// call starts a ticker.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(m.tickInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					m.Tick()
				}
			}
		}()
	})
}

// Tick decrements the remaining time by one second, never below zero, and
// re-evaluates the warnings.
func (m *Manager) Tick() {
	m.mu.Lock()
	if m.remaining <= 0 {
		m.remaining = 0
		m.mu.Unlock()
		return
	}
	m.remaining--
	actions, logout := m.evaluateLocked()
	m.mu.Unlock()

	m.perform(actions, logout)
	m.publish()
}

// BeginLoad marks a page-level blocking load. Warnings and expiry are held
// until every load has ended.
func (m *Manager) BeginLoad() {
	m.mu.Lock()
	m.loadCount++
	m.mu.Unlock()
	m.publish()
}

// EndLoad ends a load started by BeginLoad.
func (m *Manager) EndLoad() {
	m.mu.Lock()
	if m.loadCount > 0 {
		m.loadCount--
	}
	actions, logout := m.evaluateLocked()
	m.mu.Unlock()

	m.perform(actions, logout)
	m.publish()
}

// =============================================================================
// INTERNALS
// =============================================================================

// setAuthoritativeLocked installs a backend-reported remaining time and
// resets the warning state.
func (m *Manager) setAuthoritativeLocked(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	m.authoritative = seconds
	m.remaining = seconds
	m.warnings = WarningState{}
}

// evaluateLocked applies EvaluateWarnings and reports whether the expired
// logout procedure should run.
func (m *Manager) evaluateLocked() ([]Action, bool) {
	ws, actions := EvaluateWarnings(Input{
		Remaining:     m.remaining,
		Authoritative: m.authoritative,
		Loading:       m.loadCount > 0,
	}, m.warnings)
	m.warnings = ws

	for _, a := range actions {
		if a == ActionExpire {
			m.expired = true
			m.setAuthoritativeLocked(0)
		}
	}

	logout := m.expired && m.loadCount == 0 && (m.token != "" || m.loggedIn)
	return actions, logout
}

// perform runs side effects outside the lock.
func (m *Manager) perform(actions []Action, logout bool) {
	for _, a := range actions {
		switch a {
		case ActionDismissTenMinute:
			m.deps.Notifier.Dismiss(notify.KeyTenMinute)
		case ActionShowFiveMinute:
			m.deps.Notifier.Show(notify.PersistentWarning(notify.KeyFiveMinute, notify.MsgFiveMinute))
		case ActionShowTenMinute:
			m.deps.Notifier.Show(notify.PersistentWarning(notify.KeyTenMinute, notify.MsgTenMinute))
		case ActionExpire:
			logSessionEvent("expired", "countdown reached zero")
		}
	}
	if logout {
		m.LogoutExpired()
	}
}

func (m *Manager) beginRequest() uint64 {
	m.mu.Lock()
	m.inflight++
	m.issued++
	seq := m.issued
	m.mu.Unlock()
	m.publish()
	return seq
}

func (m *Manager) endRequest() {
	m.mu.Lock()
	if m.inflight > 0 {
		m.inflight--
	}
	m.mu.Unlock()
	m.publish()
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.requestTimeout)
}

func (m *Manager) waitFingerprint(ctx context.Context) string {
	if m.deps.Fingerprint == nil {
		return ""
	}
	return m.deps.Fingerprint.Wait(ctx)
}

func (m *Manager) removePersistedToken(ctx context.Context) {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := storage.RemoveToken(sctx, m.deps.Store); err != nil {
		logSessionEvent("remove token failed", err.Error())
	}
}

// logSessionEvent logs a session lifecycle event.
func logSessionEvent(event, detail string) {
	log.Printf("SESSION | %s | %s", event, detail)
}
