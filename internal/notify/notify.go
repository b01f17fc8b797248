// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notify

import (
	"sync"
	"time"
)

// =============================================================================
// NOTIFICATION TYPES
// =============================================================================

// Kind is the severity of a notification.
type Kind int

const (
	KindInfo Kind = iota
	KindError
	KindWarning
	KindSuccess
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindSuccess:
		return "success"
	default:
		return "info"
	}
}

// Auto-dismiss durations.
const (
	InfoDuration    = 4 * time.Second
	WarningDuration = 6 * time.Second
	ErrorDuration   = 8 * time.Second
)

// Fixed keys for deduplicated notifications.
const (
	KeySessionExpired = "login-expired-toast"
	KeyTenMinute      = "10-minute-session-expiration-warning"
	KeyFiveMinute     = "5-minute-session-expiration-warning"
)

// User-facing messages.
const (
	MsgSessionExpired  = "Tempo de sessão expirado!"
	MsgTenMinute       = "Sua sessão vai expirar em menos de 10 minutos!"
	MsgFiveMinute      = "Sua sessão vai expirar em menos de 5 minutos!"
	MsgFetchError      = "Erro ao buscar os dados!"
	MsgUserInactive    = "Este usuário não está ativo!"
	MsgNoDatabase      = "Sem conexão com o banco de dados!"
	MsgNoInternet      = "Sem conexão com a Internet!"
	MsgCheckingAccess  = "Verificando permissão de acesso..."
	MsgLoginFailed     = "Usuário ou senha inválidos!"
	MsgBackendOutdated = "Versão do servidor não suportada!"
)

// Notification is a single message shown to the user.
type Notification struct {
	ID        int
	Key       string
	Kind      Kind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration // 0 = persistent
}

// Persistent reports whether the notification never auto-dismisses.
func (n Notification) Persistent() bool {
	return n.Duration == 0
}

// ExpiredAt reports whether the notification should be gone at now.
func (n Notification) ExpiredAt(now time.Time) bool {
	return !n.Persistent() && now.Sub(n.CreatedAt) >= n.Duration
}

// Error builds an auto-dismissing error notification.
func Error(message string) Notification {
	return Notification{Kind: KindError, Message: message, Duration: ErrorDuration}
}

// Warning builds an auto-dismissing warning notification.
func Warning(message string) Notification {
	return Notification{Kind: KindWarning, Message: message, Duration: WarningDuration}
}

// Info builds an auto-dismissing informational notification.
func Info(message string) Notification {
	return Notification{Kind: KindInfo, Message: message, Duration: InfoDuration}
}

// Success builds an auto-dismissing success notification.
func Success(message string) Notification {
	return Notification{Kind: KindSuccess, Message: message, Duration: InfoDuration}
}

// PersistentWarning builds a keyed warning that stays until dismissed.
func PersistentWarning(key, message string) Notification {
	return Notification{Key: key, Kind: KindWarning, Message: message}
}

// =============================================================================
// NOTIFICATION CENTER
// =============================================================================

// Notifier is the subset of Center used by producers.
type Notifier interface {
	Show(n Notification) int
	Dismiss(key string)
}

// Center holds the visible notifications, newest first.
type Center struct {
	mu        sync.Mutex
	items     []Notification
	nextID    int
	maxItems  int
	now       func() time.Time
	listeners []func(Notification)
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{
		nextID:   1,
		maxItems: 5,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// OnShow registers fn to be called (outside the lock) for every
// notification that is actually added.
func (c *Center) OnShow(fn func(Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Show adds n and returns its ID. If n has a key that is already visible,
// nothing is added and the existing ID is returned.
func (c *Center) Show(n Notification) int {
	c.mu.Lock()
	if n.Key != "" {
		for _, existing := range c.items {
			if existing.Key == n.Key {
				c.mu.Unlock()
				return existing.ID
			}
		}
	}

	n.ID = c.nextID
	c.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.now()
	}
	c.items = append([]Notification{n}, c.items...)
	c.trimLocked()
	listeners := append([]func(Notification){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(n)
	}
	return n.ID
}

// trimLocked drops the oldest auto-dismissing notifications beyond
// maxItems. Persistent ones are never dropped.
func (c *Center) trimLocked() {
	for len(c.items) > c.maxItems {
		dropped := false
		for i := len(c.items) - 1; i >= 0; i-- {
			if !c.items[i].Persistent() {
				c.items = append(c.items[:i], c.items[i+1:]...)
				dropped = true
				break
			}
		}
		if !dropped {
			return
		}
	}
}

// Dismiss removes the notification with key, if visible.
func (c *Center) Dismiss(key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.Key == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Remove removes the notification with id.
func (c *Center) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Tick drops expired notifications and returns what remains.
func (c *Center) Tick() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	active := c.items[:0]
	for _, n := range c.items {
		if !n.ExpiredAt(now) {
			active = append(active, n)
		}
	}
	c.items = active
	return c.snapshotLocked()
}

// Active returns a copy of the visible notifications, newest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Visible reports whether a notification with key is showing.
func (c *Center) Visible(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.items {
		if n.Key == key {
			return true
		}
	}
	return false
}

// Clear removes all notifications.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Center) snapshotLocked() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// DismissSessionWarnings removes both expiration warnings.
func DismissSessionWarnings(n Notifier) {
	n.Dismiss(KeyTenMinute)
	n.Dismiss(KeyFiveMinute)
}
