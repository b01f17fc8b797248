// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/notify"
)

// =============================================================================
// CONNECTIVITY PROBE
// =============================================================================

var (
	// ErrNoInternet is returned when the backend host cannot be reached.
	ErrNoInternet = errors.New("no network connection")

	// ErrNoDatabase is returned when the backend reports its database down.
	ErrNoDatabase = errors.New("backend database unavailable")
)

const (
	// DefaultProbeTTL is how long a successful probe is reused.
	DefaultProbeTTL = 5 * time.Second

	// DefaultDialTimeout bounds the reachability dial.
	DefaultDialTimeout = 3 * time.Second
)

// DatabaseChecker is the backend call the probe relies on.
type DatabaseChecker interface {
	CheckDatabaseConnection(ctx context.Context) (*backend.ConnectionStatus, error)
}

// DialFunc opens a connection; net.Dialer.DialContext satisfies it.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Probe checks network reachability and backend database health before
// backend calls. Failures are reported through the notifier with the
// matching pt-BR message.
type Probe struct {
	checker    DatabaseChecker
	notes      notify.Notifier
	dial       DialFunc
	addr       string
	ttl        time.Duration
	minVersion string
	now        func() time.Time

	mu        sync.Mutex
	lastOK    time.Time
	version   string
	lastError error
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithDialer replaces the reachability dialer.
func WithDialer(d DialFunc) ProbeOption {
	return func(p *Probe) { p.dial = d }
}

// WithTTL sets how long a successful probe is reused. Zero probes every
// time.
func WithTTL(ttl time.Duration) ProbeOption {
	return func(p *Probe) { p.ttl = ttl }
}

// WithMinVersion rejects backends whose reported version does not satisfy
// the constraint.
func WithMinVersion(constraint string) ProbeOption {
	return func(p *Probe) { p.minVersion = constraint }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProbeOption {
	return func(p *Probe) { p.now = now }
}

// NewProbe builds a probe for the backend at baseURL.
func NewProbe(baseURL string, checker DatabaseChecker, notes notify.Notifier, opts ...ProbeOption) (*Probe, error) {
	if err := ValidateBackendURL(baseURL); err != nil {
		return nil, err
	}
	addr, err := hostPort(baseURL)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = notify.NewCenter()
	}
	d := &net.Dialer{Timeout: DefaultDialTimeout}
	p := &Probe{
		checker: checker,
		notes:   notes,
		dial:    d.DialContext,
		addr:    addr,
		ttl:     DefaultProbeTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func hostPort(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return "", ErrInvalidURL
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Check runs the probe. A recent success is reused without touching the
// network.
func (p *Probe) Check(ctx context.Context) error {
	p.mu.Lock()
	if p.ttl > 0 && !p.lastOK.IsZero() && p.now().Sub(p.lastOK) < p.ttl {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	err := p.run(ctx)

	p.mu.Lock()
	p.lastError = err
	if err == nil {
		p.lastOK = p.now()
	} else {
		p.lastOK = time.Time{}
	}
	p.mu.Unlock()
	return err
}

func (p *Probe) run(ctx context.Context) error {
	conn, err := p.dial(ctx, "tcp", p.addr)
	if err != nil {
		log.Printf("OFFLINE | %s unreachable: %v", p.addr, err)
		p.notes.Show(notify.Error(notify.MsgNoInternet))
		return fmt.Errorf("%w: %v", ErrNoInternet, err)
	}
	_ = conn.Close()

	status, err := p.checker.CheckDatabaseConnection(ctx)
	if err != nil {
		log.Printf("OFFLINE | database check failed: %v", err)
		p.notes.Show(notify.Error(notify.MsgNoDatabase))
		return fmt.Errorf("%w: %v", ErrNoDatabase, err)
	}
	if !status.Connection {
		log.Printf("OFFLINE | backend reports database down")
		p.notes.Show(notify.Error(notify.MsgNoDatabase))
		return ErrNoDatabase
	}

	if err := config.CheckBackendVersion(p.minVersion, status.Version); err != nil {
		log.Printf("OFFLINE | %v", err)
		p.notes.Show(notify.Error(notify.MsgBackendOutdated))
		return err
	}

	p.mu.Lock()
	p.version = status.Version
	p.mu.Unlock()
	return nil
}

// Preflight adapts the probe to backend.WithPreflight.
func (p *Probe) Preflight() backend.Preflight {
	return p.Check
}

// Status describes the last probe.
type Status struct {
	Online         bool   `json:"online"`
	DatabaseUp     bool   `json:"database_up"`
	BackendVersion string `json:"backend_version,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Status returns the outcome of the last Check.
func (p *Probe) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := Status{BackendVersion: p.version}
	switch {
	case p.lastError == nil:
		st.Online = !p.lastOK.IsZero()
		st.DatabaseUp = st.Online
	case errors.Is(p.lastError, ErrNoInternet):
		st.Error = p.lastError.Error()
	default:
		st.Online = true
		st.Error = p.lastError.Error()
	}
	return st
}

// Invalidate forces the next Check to probe again.
func (p *Probe) Invalidate() {
	p.mu.Lock()
	p.lastOK = time.Time{}
	p.mu.Unlock()
}
